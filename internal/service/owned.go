// Package service holds behaviour shared by the resource services.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

// Accounts resolves active users.
type Accounts interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// Owned implements the read and delete side of a resource whose rows belong
// to owner parties listed in the authz owner table.
type Owned[T any] struct {
	Repo     repository.Repository[T]
	Authz    *authz.Engine
	Resource authz.Resource
	PageSize int
	// Preloads are applied to Load and List.
	Preloads []string
	// Users checks owners assigned by an admin. Required by Owner.
	Users Accounts
}

// Load runs the role gate, loads the row and runs the ownership gate.
func (o Owned[T]) Load(ctx context.Context, actor *authz.Actor, action authz.Action, id uuid.UUID) (*T, error) {
	if err := o.Authz.Allow(actor, action, o.Resource); err != nil {
		return nil, err
	}
	item, err := o.Repo.FindByID(ctx, id, o.Preloads...)
	if err != nil {
		return nil, err
	}
	if err := o.Authz.Authorize(actor, action, o.Resource, item); err != nil {
		return nil, err
	}
	return item, nil
}

// List returns one page restricted to the rows the actor may see. q carries
// filters and ordering; its window and scope are overwritten.
func (o Owned[T]) List(ctx context.Context, actor *authz.Actor, page commonDto.PageQuery, q repository.Query) (*commonDto.PageResult[T], error) {
	if err := o.Authz.Allow(actor, authz.ActionList, o.Resource); err != nil {
		return nil, err
	}

	n, offset, limit := page.Window(o.PageSize)
	q.Scope = o.Authz.ListScope(actor, o.Resource)
	q.Offset, q.Limit = offset, limit
	if q.Preloads == nil {
		q.Preloads = o.Preloads
	}
	if q.Order == "" {
		q.Order = "created_at DESC"
	}

	items, total, err := o.Repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return commonDto.NewPage(items, total, n, limit), nil
}

func (o Owned[T]) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	if _, err := o.Load(ctx, actor, authz.ActionDelete, id); err != nil {
		return err
	}
	return o.Repo.Deactivate(ctx, id)
}

// OwnerFor resolves the owner of a new row. Admins may act for another
// user; everyone else always owns what they create.
func OwnerFor(actor *authz.Actor, requested *uuid.UUID) uuid.UUID {
	if actor.IsAdmin() && requested != nil && *requested != uuid.Nil {
		return *requested
	}
	return actor.ID
}

// Owner is OwnerFor for a new row, checking that an owner other than the
// actor is an active account. An unknown owner is a field error on "user".
func (o Owned[T]) Owner(ctx context.Context, actor *authz.Actor, requested *uuid.UUID) (uuid.UUID, error) {
	if actor == nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}
	owner := OwnerFor(actor, requested)
	if owner == actor.ID {
		return owner, nil
	}
	if _, err := o.Users.FindByID(ctx, owner); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return uuid.Nil, apperror.Field("user", "user does not exist or is inactive")
		}
		return uuid.Nil, err
	}
	return owner, nil
}
