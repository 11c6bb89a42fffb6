package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/repository"
)

type WorkoutPlanRepository interface {
	repository.Repository[entity.WorkoutPlan]
	// CreatePlan inserts plan and links plan.Activities in one transaction.
	CreatePlan(ctx context.Context, plan *entity.WorkoutPlan) error
	// SavePlan writes plan. When replaceActivities is set, the activity links
	// are replaced by plan.Activities in the same transaction.
	SavePlan(ctx context.Context, plan *entity.WorkoutPlan, replaceActivities bool) error
	// ActiveActivities returns the active activities among ids.
	ActiveActivities(ctx context.Context, ids []uuid.UUID) ([]entity.Activity, error)
}

type workoutPlanRepository struct {
	*repository.Store[entity.WorkoutPlan]
	activities *repository.Store[entity.Activity]
}

func NewWorkoutPlanRepository(db *gorm.DB) WorkoutPlanRepository {
	return &workoutPlanRepository{
		Store:      repository.NewStore[entity.WorkoutPlan](db),
		activities: repository.NewStore[entity.Activity](db),
	}
}

func (r *workoutPlanRepository) CreatePlan(ctx context.Context, plan *entity.WorkoutPlan) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(plan).Error; err != nil {
			return err
		}
		if len(plan.Activities) == 0 {
			return nil
		}
		return tx.Model(plan).Association("Activities").Append(plan.Activities)
	})
}

func (r *workoutPlanRepository) SavePlan(ctx context.Context, plan *entity.WorkoutPlan, replaceActivities bool) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(plan).Error; err != nil {
			return err
		}
		if !replaceActivities {
			return nil
		}
		assoc := tx.Model(plan).Association("Activities")
		if len(plan.Activities) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(plan.Activities)
	})
}

func (r *workoutPlanRepository) ActiveActivities(ctx context.Context, ids []uuid.UUID) ([]entity.Activity, error) {
	if len(ids) == 0 {
		return []entity.Activity{}, nil
	}
	items, _, err := r.activities.List(ctx, repository.Query{
		Scope: repository.AllRows,
		Scopes: []func(*gorm.DB) *gorm.DB{func(db *gorm.DB) *gorm.DB {
			return db.Where("id IN ?", ids)
		}},
	})
	return items, err
}
