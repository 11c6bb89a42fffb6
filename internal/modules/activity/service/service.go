package activity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/activity/dto"
	"anoa.com/healthmanage/internal/modules/activity/repository"
	baseRepo "anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
	"anoa.com/healthmanage/pkg/sanitize"
	"anoa.com/healthmanage/pkg/search"
	"anoa.com/healthmanage/pkg/storage"
)

type ActivityService interface {
	Create(ctx context.Context, actor *authz.Actor, req dto.CreateActivityRequest) (*entity.Activity, error)
	List(ctx context.Context, actor *authz.Actor, query commonDto.PageQuery) (*commonDto.PageResult[entity.Activity], error)
	Search(ctx context.Context, actor *authz.Actor, query string) ([]entity.Activity, error)
	Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.Activity, error)
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateActivityRequest) (*entity.Activity, error)
	UploadImage(ctx context.Context, actor *authz.Actor, id uuid.UUID, file commonDto.UploadFile) (*entity.Activity, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

type activityService struct {
	repo         repository.ActivityRepository
	authz        *authz.Engine
	index        search.ActivityIndex
	imageStorage storage.ImageStorage
	pageSize     int
	log          *zap.Logger
}

func NewActivityService(repo repository.ActivityRepository, engine *authz.Engine, index search.ActivityIndex, imageStorage storage.ImageStorage, pageSize int, log *zap.Logger) ActivityService {
	return &activityService{
		repo:         repo,
		authz:        engine,
		index:        index,
		imageStorage: imageStorage,
		pageSize:     pageSize,
		log:          log,
	}
}

func (s *activityService) Create(ctx context.Context, actor *authz.Actor, req dto.CreateActivityRequest) (*entity.Activity, error) {
	if err := s.authz.Allow(actor, authz.ActionCreate, authz.ResourceActivity); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Field("name", "this field may not be blank")
	}

	a := &entity.Activity{
		Base:           entity.NewBase(),
		Name:           name,
		Description:    sanitize.RichText(req.Description),
		CaloriesBurned: req.CaloriesBurned,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.reindex(ctx, a)
	return a, nil
}

func (s *activityService) List(ctx context.Context, actor *authz.Actor, query commonDto.PageQuery) (*commonDto.PageResult[entity.Activity], error) {
	if err := s.authz.Allow(actor, authz.ActionList, authz.ResourceActivity); err != nil {
		return nil, err
	}

	page, offset, limit := query.Window(s.pageSize)
	items, total, err := s.repo.List(ctx, baseRepo.Query{
		Scope:         s.authz.ListScope(actor, authz.ResourceActivity),
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

// Search ranks activities through the search index and falls back to a
// name match when no index is configured or the index is unreachable.
func (s *activityService) Search(ctx context.Context, actor *authz.Actor, query string) ([]entity.Activity, error) {
	if err := s.authz.Allow(actor, authz.ActionList, authz.ResourceActivity); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	ids, ok, err := s.index.Search(ctx, query, s.pageSize)
	if err != nil {
		s.log.Warn("activity index search failed, using database", zap.Error(err))
		ok = false
	}
	if ok {
		return s.repo.FindByIDs(ctx, ids)
	}

	items, _, err := s.repo.List(ctx, baseRepo.Query{
		Scope:         baseRepo.AllRows,
		Search:        query,
		SearchColumns: []string{"name", "description"},
		Order:         "name ASC",
		Limit:         s.pageSize,
	})
	return items, err
}

func (s *activityService) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.Activity, error) {
	if err := s.authz.Allow(actor, authz.ActionRetrieve, authz.ResourceActivity); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *activityService) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateActivityRequest) (*entity.Activity, error) {
	if err := s.authz.Allow(actor, authz.ActionUpdate, authz.ResourceActivity); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.Field("name", "this field may not be blank")
		}
		a.Name = name
	}
	if req.Description != nil {
		a.Description = sanitize.RichText(*req.Description)
	}
	if req.CaloriesBurned != nil {
		a.CaloriesBurned = req.CaloriesBurned
	}

	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	s.reindex(ctx, a)
	return a, nil
}

func (s *activityService) UploadImage(ctx context.Context, actor *authz.Actor, id uuid.UUID, file commonDto.UploadFile) (*entity.Activity, error) {
	if err := s.authz.Allow(actor, authz.ActionUpdate, authz.ResourceActivity); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.imageStorage.UploadImage(ctx, file.Reader, "activities", file.FileName)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetImage(ctx, a.ID, url); err != nil {
		return nil, err
	}

	if a.ImageURL != nil && *a.ImageURL != "" {
		if err := s.imageStorage.DeleteImage(ctx, *a.ImageURL); err != nil {
			s.log.Warn("failed to delete previous activity image", zap.String("activity_id", a.ID.String()), zap.Error(err))
		}
	}
	a.ImageURL = &url
	return a, nil
}

func (s *activityService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	if err := s.authz.Allow(actor, authz.ActionDelete, authz.ResourceActivity); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.index.Remove(ctx, id); err != nil {
		s.log.Warn("failed to remove activity from index", zap.String("activity_id", id.String()), zap.Error(err))
	}
	return nil
}

// reindex is best effort; the database stays authoritative.
func (s *activityService) reindex(ctx context.Context, a *entity.Activity) {
	err := s.index.Index(ctx, search.ActivityDoc{
		ID:             a.ID.String(),
		Name:           a.Name,
		Description:    a.Description,
		CaloriesBurned: a.CaloriesBurned,
	})
	if err != nil {
		s.log.Warn("failed to index activity", zap.String("activity_id", a.ID.String()), zap.Error(err))
	}
}
