package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract of a single entity. *Store satisfies it.
type Repository[T any] interface {
	Create(ctx context.Context, item *T) error
	FindByID(ctx context.Context, id uuid.UUID, preloads ...string) (*T, error)
	First(ctx context.Context, q Query) (*T, error)
	List(ctx context.Context, q Query) ([]T, int64, error)
	Save(ctx context.Context, item *T) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

var _ Repository[struct{}] = (*Store[struct{}])(nil)
