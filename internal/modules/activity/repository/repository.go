package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/repository"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error)
	// FindByIDs returns active activities in the order of ids.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Activity, error)
	List(ctx context.Context, q repository.Query) ([]entity.Activity, int64, error)
	Save(ctx context.Context, activity *entity.Activity) error
	SetImage(ctx context.Context, id uuid.UUID, url string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type activityRepository struct {
	store *repository.Store[entity.Activity]
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{store: repository.NewStore[entity.Activity](db)}
}

func (r *activityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	return r.store.Create(ctx, activity)
}

func (r *activityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	return r.store.FindByID(ctx, id)
}

func (r *activityRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Activity, error) {
	if len(ids) == 0 {
		return []entity.Activity{}, nil
	}

	var found []entity.Activity
	err := r.store.DB(ctx).Where("id IN ? AND active = ?", ids, true).Find(&found).Error
	if err != nil {
		return nil, repository.Translate(err)
	}

	byID := make(map[uuid.UUID]entity.Activity, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}
	ordered := make([]entity.Activity, 0, len(found))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered, nil
}

func (r *activityRepository) List(ctx context.Context, q repository.Query) ([]entity.Activity, int64, error) {
	return r.store.List(ctx, q)
}

func (r *activityRepository) Save(ctx context.Context, activity *entity.Activity) error {
	return r.store.Save(ctx, activity)
}

func (r *activityRepository) SetImage(ctx context.Context, id uuid.UUID, url string) error {
	return r.store.UpdateColumns(ctx, id, map[string]any{"image_url": url})
}

func (r *activityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Deactivate(ctx, id)
}
