package bootstrap

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/config"
	"anoa.com/healthmanage/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Exerciser{},
		&entity.Coach{},
		&entity.Tag{},
		&entity.Activity{},
		&entity.WorkoutPlan{},
		&entity.MealPlan{},
		&entity.HealthRecord{},
		&entity.HealthDiary{},
		&entity.ChatMessage{},
		&entity.UserGoal{},
		&entity.ExpertSpecialization{},
		&entity.ExpertProfile{},
		&entity.UserConnection{},
	)
}

// SeedAdmin creates the configured admin account once. It is skipped when
// no seed email or password is configured.
func SeedAdmin(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var existing entity.User
	err := db.Where("username = ? OR email = ?", cfg.SeedAdminUsername, cfg.SeedAdminEmail).First(&existing).Error
	if err == nil {
		log.Info("admin user already exists, skipping seed", zap.String("username", existing.Username))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := entity.User{
		Base:         entity.NewBase(),
		Username:     cfg.SeedAdminUsername,
		Email:        cfg.SeedAdminEmail,
		PasswordHash: string(hash),
		FirstName:    "Administrator",
		Role:         entity.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info("admin user seeded", zap.String("username", admin.Username), zap.String("email", admin.Email))
	return nil
}
