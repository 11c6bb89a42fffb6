package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/repository"
)

// CatalogRepository stores admin-managed named entries such as tags.
type CatalogRepository[T any] interface {
	Create(ctx context.Context, entry *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, q repository.Query) ([]T, int64, error)
	Save(ctx context.Context, entry *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogRepository[T any] struct {
	store *repository.Store[T]
}

func NewCatalogRepository[T any](db *gorm.DB) CatalogRepository[T] {
	return &catalogRepository[T]{store: repository.NewStore[T](db)}
}

func (r *catalogRepository[T]) Create(ctx context.Context, entry *T) error {
	return r.store.Create(ctx, entry)
}

func (r *catalogRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return r.store.FindByID(ctx, id)
}

func (r *catalogRepository[T]) FindAll(ctx context.Context, q repository.Query) ([]T, int64, error) {
	return r.store.List(ctx, q)
}

func (r *catalogRepository[T]) Save(ctx context.Context, entry *T) error {
	return r.store.Save(ctx, entry)
}

func (r *catalogRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Deactivate(ctx, id)
}
