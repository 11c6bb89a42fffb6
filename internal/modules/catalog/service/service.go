package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/catalog/dto"
	"anoa.com/healthmanage/internal/modules/catalog/repository"
	baseRepo "anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

type CatalogService[T any] interface {
	Create(ctx context.Context, actor *authz.Actor, req dto.EntryRequest) (*T, error)
	List(ctx context.Context, actor *authz.Actor, query commonDto.PageQuery) (*commonDto.PageResult[T], error)
	Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*T, error)
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateEntryRequest) (*T, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

// Entry adapts a catalog entity to the shared service.
type Entry[T any] struct {
	Resource authz.Resource
	New      func(name, description string) *T
	Apply    func(entry *T, name, description *string)
}

var TagEntry = Entry[entity.Tag]{
	Resource: authz.ResourceTag,
	New: func(name, _ string) *entity.Tag {
		return &entity.Tag{Base: entity.NewBase(), Name: name}
	},
	Apply: func(t *entity.Tag, name, _ *string) {
		if name != nil {
			t.Name = *name
		}
	},
}

var SpecializationEntry = Entry[entity.ExpertSpecialization]{
	Resource: authz.ResourceExpertSpecialization,
	New: func(name, description string) *entity.ExpertSpecialization {
		return &entity.ExpertSpecialization{Base: entity.NewBase(), Name: name, Description: description}
	},
	Apply: func(s *entity.ExpertSpecialization, name, description *string) {
		if name != nil {
			s.Name = *name
		}
		if description != nil {
			s.Description = *description
		}
	},
}

type catalogService[T any] struct {
	repo     repository.CatalogRepository[T]
	authz    *authz.Engine
	entry    Entry[T]
	pageSize int
}

func NewCatalogService[T any](repo repository.CatalogRepository[T], engine *authz.Engine, entry Entry[T], pageSize int) CatalogService[T] {
	return &catalogService[T]{repo: repo, authz: engine, entry: entry, pageSize: pageSize}
}

func (s *catalogService[T]) Create(ctx context.Context, actor *authz.Actor, req dto.EntryRequest) (*T, error) {
	if err := s.authz.Allow(actor, authz.ActionCreate, s.entry.Resource); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Field("name", "this field may not be blank")
	}
	var description string
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
	}

	entry := s.entry.New(name, description)
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *catalogService[T]) List(ctx context.Context, actor *authz.Actor, query commonDto.PageQuery) (*commonDto.PageResult[T], error) {
	if err := s.authz.Allow(actor, authz.ActionList, s.entry.Resource); err != nil {
		return nil, err
	}

	page, offset, limit := query.Window(s.pageSize)
	items, total, err := s.repo.FindAll(ctx, baseRepo.Query{
		Scope:         s.authz.ListScope(actor, s.entry.Resource),
		Search:        strings.TrimSpace(query.Search),
		SearchColumns: []string{"name"},
		Order:         "name ASC",
		Offset:        offset,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}
	return commonDto.NewPage(items, total, page, limit), nil
}

func (s *catalogService[T]) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*T, error) {
	if err := s.authz.Allow(actor, authz.ActionRetrieve, s.entry.Resource); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *catalogService[T]) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateEntryRequest) (*T, error) {
	if err := s.authz.Allow(actor, authz.ActionUpdate, s.entry.Resource); err != nil {
		return nil, err
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.Field("name", "this field may not be blank")
		}
		req.Name = &name
	}
	s.entry.Apply(entry, req.Name, req.Description)

	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *catalogService[T]) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	if err := s.authz.Allow(actor, authz.ActionDelete, s.entry.Resource); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
