package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/repository"
)

type ExpertProfileRepository interface {
	repository.Repository[entity.ExpertProfile]
	// CreateProfile inserts profile and links profile.Specializations in one transaction.
	CreateProfile(ctx context.Context, profile *entity.ExpertProfile) error
	SaveProfile(ctx context.Context, profile *entity.ExpertProfile, replaceSpecializations bool) error
	ActiveSpecializations(ctx context.Context, ids []uuid.UUID) ([]entity.ExpertSpecialization, error)
}

type expertProfileRepository struct {
	*repository.Store[entity.ExpertProfile]
	specializations *repository.Store[entity.ExpertSpecialization]
}

func NewExpertProfileRepository(db *gorm.DB) ExpertProfileRepository {
	return &expertProfileRepository{
		Store:           repository.NewStore[entity.ExpertProfile](db),
		specializations: repository.NewStore[entity.ExpertSpecialization](db),
	}
}

func (r *expertProfileRepository) CreateProfile(ctx context.Context, profile *entity.ExpertProfile) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(profile).Error; err != nil {
			return err
		}
		if len(profile.Specializations) == 0 {
			return nil
		}
		return tx.Model(profile).Association("Specializations").Append(profile.Specializations)
	})
}

func (r *expertProfileRepository) SaveProfile(ctx context.Context, profile *entity.ExpertProfile, replaceSpecializations bool) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(profile).Error; err != nil {
			return err
		}
		if !replaceSpecializations {
			return nil
		}
		assoc := tx.Model(profile).Association("Specializations")
		if len(profile.Specializations) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(profile.Specializations)
	})
}

func (r *expertProfileRepository) ActiveSpecializations(ctx context.Context, ids []uuid.UUID) ([]entity.ExpertSpecialization, error) {
	if len(ids) == 0 {
		return []entity.ExpertSpecialization{}, nil
	}
	items, _, err := r.specializations.List(ctx, repository.Query{
		Scope: repository.AllRows,
		Scopes: []func(*gorm.DB) *gorm.DB{func(db *gorm.DB) *gorm.DB {
			return db.Where("id IN ?", ids)
		}},
	})
	return items, err
}
