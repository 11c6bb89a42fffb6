package meal

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/mealplan/dto"
	"anoa.com/healthmanage/internal/modules/mealplan/repository"
	baseRepo "anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/internal/service"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

type MealPlanService interface {
	Create(ctx context.Context, actor *authz.Actor, req dto.CreateMealPlanRequest) (*entity.MealPlan, error)
	CreatePlan(ctx context.Context, actor *authz.Actor, req dto.CreateMealPlanRequest) (*entity.MealPlan, error)
	List(ctx context.Context, actor *authz.Actor, query dto.MealPlanQuery) (*commonDto.PageResult[entity.MealPlan], error)
	Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.MealPlan, error)
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateMealPlanRequest) (*entity.MealPlan, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

type mealPlanService struct {
	repo  repository.MealPlanRepository
	authz *authz.Engine
	owned service.Owned[entity.MealPlan]
}

func NewMealPlanService(repo repository.MealPlanRepository, users service.Accounts, engine *authz.Engine, pageSize int) MealPlanService {
	return &mealPlanService{
		repo:  repo,
		authz: engine,
		owned: service.Owned[entity.MealPlan]{
			Repo:     repo,
			Users:    users,
			Authz:    engine,
			Resource: authz.ResourceMealPlan,
			PageSize: pageSize,
		},
	}
}

func (s *mealPlanService) Create(ctx context.Context, actor *authz.Actor, req dto.CreateMealPlanRequest) (*entity.MealPlan, error) {
	owner, err := s.owned.Owner(ctx, actor, req.User)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, actor, owner, req)
}

func (s *mealPlanService) CreatePlan(ctx context.Context, actor *authz.Actor, req dto.CreateMealPlanRequest) (*entity.MealPlan, error) {
	if actor == nil {
		return nil, apperror.ErrUnauthorized
	}
	return s.create(ctx, actor, actor.ID, req)
}

func (s *mealPlanService) create(ctx context.Context, actor *authz.Actor, owner uuid.UUID, req dto.CreateMealPlanRequest) (*entity.MealPlan, error) {
	if err := s.authz.Allow(actor, authz.ActionCreate, authz.ResourceMealPlan); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Field("name", "this field may not be blank")
	}

	plan := &entity.MealPlan{
		Base:           entity.NewBase(),
		UserID:         owner,
		Name:           name,
		Date:           req.Date.Time,
		Description:    req.Description,
		CaloriesIntake: req.CaloriesIntake,
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *mealPlanService) List(ctx context.Context, actor *authz.Actor, query dto.MealPlanQuery) (*commonDto.PageResult[entity.MealPlan], error) {
	q := baseRepo.Query{
		Search:        strings.TrimSpace(query.Search),
		SearchColumns: []string{"name"},
		Order:         "date DESC, created_at DESC",
	}
	if query.Date != nil {
		q.Where = map[string]any{"date": query.Date.Time}
	}
	return s.owned.List(ctx, actor, query.PageQuery, q)
}

func (s *mealPlanService) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.MealPlan, error) {
	return s.owned.Load(ctx, actor, authz.ActionRetrieve, id)
}

func (s *mealPlanService) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateMealPlanRequest) (*entity.MealPlan, error) {
	plan, err := s.owned.Load(ctx, actor, authz.ActionUpdate, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.Field("name", "this field may not be blank")
		}
		plan.Name = name
	}
	if req.Date != nil {
		plan.Date = req.Date.Time
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.CaloriesIntake != nil {
		plan.CaloriesIntake = req.CaloriesIntake
	}

	if err := s.repo.Save(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *mealPlanService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	return s.owned.Delete(ctx, actor, id)
}
