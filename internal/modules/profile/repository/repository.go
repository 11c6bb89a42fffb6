package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/repository"
)

// Profile is satisfied by *entity.Exerciser and *entity.Coach.
type Profile[T any] interface {
	*T
	Profile() *entity.RoleProfile
	TableName() string
}

type ProfileRepository[T any] interface {
	// CreateWithUser stores the account and its profile in one transaction.
	CreateWithUser(ctx context.Context, user *entity.User, profile *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context, q repository.Query) ([]T, int64, error)
	SaveUser(ctx context.Context, user *entity.User) error
	// DeactivateWithUser deactivates the profile and its account together.
	DeactivateWithUser(ctx context.Context, profile *T) error
	Table() string
}

type profileRepository[T any, PT Profile[T]] struct {
	store *repository.Store[T]
}

func NewProfileRepository[T any, PT Profile[T]](db *gorm.DB) ProfileRepository[T] {
	return &profileRepository[T, PT]{store: repository.NewStore[T](db)}
}

func (r *profileRepository[T, PT]) Table() string {
	return PT(new(T)).TableName()
}

func (r *profileRepository[T, PT]) CreateWithUser(ctx context.Context, user *entity.User, profile *T) error {
	return r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		p := PT(profile).Profile()
		p.UserID = user.ID
		p.User = *user
		return tx.Omit("User").Create(profile).Error
	})
}

func (r *profileRepository[T, PT]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return r.store.FindByID(ctx, id, "User")
}

func (r *profileRepository[T, PT]) List(ctx context.Context, q repository.Query) ([]T, int64, error) {
	return r.store.List(ctx, q)
}

func (r *profileRepository[T, PT]) SaveUser(ctx context.Context, user *entity.User) error {
	return repository.NewStore[entity.User](r.store.DB(ctx)).Save(ctx, user)
}

func (r *profileRepository[T, PT]) DeactivateWithUser(ctx context.Context, profile *T) error {
	p := PT(profile).Profile()
	return r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := r.store.WithTx(tx).Deactivate(ctx, p.ID); err != nil {
			return err
		}
		return repository.NewStore[entity.User](tx).Deactivate(ctx, p.UserID)
	})
}
