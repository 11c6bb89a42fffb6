package repotest

import (
	"context"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/pkg/apperror"
)

// Users is an account lookup over a fixed set of users. Inactive users are
// reported as missing.
type Users map[uuid.UUID]*entity.User

// ActiveUsers builds Users with one active account per id.
func ActiveUsers(ids ...uuid.UUID) Users {
	u := Users{}
	for _, id := range ids {
		u[id] = &entity.User{Base: entity.Base{ID: id, Active: true}, Role: entity.RoleExerciser}
	}
	return u
}

func (u Users) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := u[id]; ok && user.Active {
		cp := *user
		return &cp, nil
	}
	return nil, apperror.ErrNotFound
}
