package profile

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/profile/dto"
	"anoa.com/healthmanage/internal/modules/profile/repository"
	userService "anoa.com/healthmanage/internal/modules/user/service"
	baseRepo "anoa.com/healthmanage/internal/repository"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

// ProfileService manages exerciser and coach profiles together with their accounts.
type ProfileService[T any] interface {
	Register(ctx context.Context, actor *authz.Actor, req dto.RegisterProfileRequest) (*T, error)
	List(ctx context.Context, actor *authz.Actor, query commonDto.PageQuery) (*commonDto.PageResult[T], error)
	Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*T, error)
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateProfileRequest) (*T, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

type Config struct {
	Resource authz.Resource
	Role     entity.Role
	// RequiresApproval starts self-registered accounts inactive until an admin activates them.
	RequiresApproval bool
	PageSize         int
}

type profileService[T any, PT repository.Profile[T]] struct {
	repo  repository.ProfileRepository[T]
	users userService.UserService
	authz *authz.Engine
	cfg   Config
}

func NewProfileService[T any, PT repository.Profile[T]](repo repository.ProfileRepository[T], users userService.UserService, engine *authz.Engine, cfg Config) ProfileService[T] {
	return &profileService[T, PT]{repo: repo, users: users, authz: engine, cfg: cfg}
}

func (s *profileService[T, PT]) Register(ctx context.Context, actor *authz.Actor, req dto.RegisterProfileRequest) (*T, error) {
	if err := s.authz.Allow(actor, authz.ActionCreate, s.cfg.Resource); err != nil {
		return nil, err
	}

	active := !s.cfg.RequiresApproval || actor.IsAdmin()
	user, err := s.users.BuildAccount(ctx, req.Account(), s.cfg.Role, active)
	if err != nil {
		return nil, err
	}

	profile := new(T)
	PT(profile).Profile().Base = entity.Base{Active: active}
	if err := s.repo.CreateWithUser(ctx, user, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService[T, PT]) List(ctx context.Context, actor *authz.Actor, query commonDto.PageQuery) (*commonDto.PageResult[T], error) {
	if err := s.authz.Allow(actor, authz.ActionList, s.cfg.Resource); err != nil {
		return nil, err
	}

	page, offset, limit := query.Window(s.cfg.PageSize)
	items, total, err := s.repo.List(ctx, baseRepo.Query{
		Scope:         s.authz.ListScope(actor, s.cfg.Resource),
		Joins:         []string{"User"},
		Search:        strings.TrimSpace(query.Search),
		SearchColumns: []string{`"User"."first_name"`, `"User"."last_name"`},
		Order:         s.repo.Table() + ".created_at ASC",
		Offset:        offset,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}
	return commonDto.NewPage(items, total, page, limit), nil
}

func (s *profileService[T, PT]) load(ctx context.Context, actor *authz.Actor, action authz.Action, id uuid.UUID) (*T, error) {
	if err := s.authz.Allow(actor, action, s.cfg.Resource); err != nil {
		return nil, err
	}
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(actor, action, s.cfg.Resource, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService[T, PT]) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*T, error) {
	return s.load(ctx, actor, authz.ActionRetrieve, id)
}

func (s *profileService[T, PT]) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateProfileRequest) (*T, error) {
	profile, err := s.load(ctx, actor, authz.ActionUpdate, id)
	if err != nil {
		return nil, err
	}

	user := &PT(profile).Profile().User
	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Birthday != nil {
		user.Birthday = req.Birthday.TimePtr()
	}

	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService[T, PT]) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	profile, err := s.load(ctx, actor, authz.ActionDelete, id)
	if err != nil {
		return err
	}
	return s.repo.DeactivateWithUser(ctx, profile)
}
