package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/pkg/apperror"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByID returns an active user.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// FindByLogin matches an active user by username or email.
	FindByLogin(ctx context.Context, login string) (*entity.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, q repository.Query) ([]entity.User, int64, error)
	Save(ctx context.Context, user *entity.User) error
	UpdateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	// SetActive flips the flag on any user, active or not, together with
	// the user's exerciser or coach profile.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	store *repository.Store[entity.User]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{store: repository.NewStore[entity.User](db)}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.store.Create(ctx, user)
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.store.FindByID(ctx, id)
}

func (r *userRepository) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	login = strings.TrimSpace(login)
	return r.store.First(ctx, repository.Query{
		Scope: repository.AllRows,
		Scopes: []func(*gorm.DB) *gorm.DB{func(db *gorm.DB) *gorm.DB {
			return db.Where("username = ? OR LOWER(email) = LOWER(?)", login, login)
		}},
	})
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "LOWER(email) = LOWER(?)", email)
}

// exists also counts inactive accounts, which still hold their unique keys.
func (r *userRepository) exists(ctx context.Context, cond string, arg any) (bool, error) {
	var n int64
	err := r.store.DB(ctx).Model(&entity.User{}).Where(cond, arg).Count(&n).Error
	return n > 0, repository.Translate(err)
}

func (r *userRepository) List(ctx context.Context, q repository.Query) ([]entity.User, int64, error) {
	return r.store.List(ctx, q)
}

func (r *userRepository) Save(ctx context.Context, user *entity.User) error {
	return r.store.Save(ctx, user)
}

func (r *userRepository) UpdateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	return r.store.UpdateColumns(ctx, id, columns)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.store.UpdateColumns(ctx, id, map[string]any{"password_hash": hash})
}

// linkedProfiles are the role profiles that share their account's active flag.
var linkedProfiles = []any{&entity.Exerciser{}, &entity.Coach{}}

func (r *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.store.Transaction(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&entity.User{}).Where("id = ?", id).Update("active", active)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.ErrNotFound
		}
		for _, profile := range linkedProfiles {
			if err := tx.Model(profile).Where("user_id = ?", id).Update("active", active).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.store.Deactivate(ctx, id)
}
