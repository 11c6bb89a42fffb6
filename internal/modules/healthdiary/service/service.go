package diary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/healthdiary/dto"
	"anoa.com/healthmanage/internal/modules/healthdiary/repository"
	baseRepo "anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/internal/service"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
	"anoa.com/healthmanage/pkg/sanitize"
)

// HealthDiaryService writes diaries only on behalf of their author. Admins
// can read every diary but cannot edit or remove one.
type HealthDiaryService interface {
	Create(ctx context.Context, actor *authz.Actor, req dto.CreateDiaryRequest) (*entity.HealthDiary, error)
	List(ctx context.Context, actor *authz.Actor, query dto.DiaryQuery) (*commonDto.PageResult[entity.HealthDiary], error)
	Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.HealthDiary, error)
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateDiaryRequest) (*entity.HealthDiary, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

type healthDiaryService struct {
	repo  repository.HealthDiaryRepository
	authz *authz.Engine
	owned service.Owned[entity.HealthDiary]
	now   func() time.Time
}

func NewHealthDiaryService(repo repository.HealthDiaryRepository, engine *authz.Engine, pageSize int, now func() time.Time) HealthDiaryService {
	if now == nil {
		now = time.Now
	}
	return &healthDiaryService{
		repo:  repo,
		authz: engine,
		owned: service.Owned[entity.HealthDiary]{
			Repo:     repo,
			Authz:    engine,
			Resource: authz.ResourceHealthDiary,
			PageSize: pageSize,
		},
		now: now,
	}
}

func (s *healthDiaryService) Create(ctx context.Context, actor *authz.Actor, req dto.CreateDiaryRequest) (*entity.HealthDiary, error) {
	if err := s.authz.Allow(actor, authz.ActionCreate, authz.ResourceHealthDiary); err != nil {
		return nil, err
	}

	content, err := cleanContent(req.Content)
	if err != nil {
		return nil, err
	}

	d := &entity.HealthDiary{
		Base:    entity.NewBase(),
		UserID:  actor.ID,
		Date:    entity.Day(s.now()),
		Content: content,
		Feeling: req.Feeling,
	}
	if req.Date != nil {
		d.Date = req.Date.Time
	}

	if err := s.repo.Create(ctx, d); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, fmt.Errorf("a diary entry for %s already exists: %w", d.Date.Format(commonDto.DateLayout), err)
		}
		return nil, err
	}
	return d, nil
}

func (s *healthDiaryService) List(ctx context.Context, actor *authz.Actor, query dto.DiaryQuery) (*commonDto.PageResult[entity.HealthDiary], error) {
	return s.owned.List(ctx, actor, query.PageQuery, baseRepo.Query{
		Search:        strings.TrimSpace(query.Search),
		SearchColumns: []string{"content"},
		Order:         "date DESC, created_at DESC",
		Scopes:        []func(*gorm.DB) *gorm.DB{baseRepo.DateRange("date", query.From.TimePtr(), query.To.TimePtr())},
	})
}

func (s *healthDiaryService) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.HealthDiary, error) {
	return s.owned.Load(ctx, actor, authz.ActionRetrieve, id)
}

func (s *healthDiaryService) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateDiaryRequest) (*entity.HealthDiary, error) {
	d, err := s.owned.Load(ctx, actor, authz.ActionUpdate, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		if d.Content, err = cleanContent(*req.Content); err != nil {
			return nil, err
		}
	}
	if req.Date != nil {
		d.Date = req.Date.Time
	}
	if req.Feeling != nil {
		d.Feeling = req.Feeling
	}

	if err := s.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *healthDiaryService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	return s.owned.Delete(ctx, actor, id)
}

func cleanContent(raw string) (string, error) {
	content := strings.TrimSpace(sanitize.RichText(raw))
	if content == "" {
		return "", apperror.Field("content", "this field may not be blank")
	}
	return content, nil
}
