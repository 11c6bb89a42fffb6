package goal

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/goal/dto"
	"anoa.com/healthmanage/internal/modules/goal/repository"
	baseRepo "anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/internal/service"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

type GoalService interface {
	Create(ctx context.Context, actor *authz.Actor, req dto.CreateGoalRequest) (*entity.UserGoal, error)
	List(ctx context.Context, actor *authz.Actor, query dto.GoalQuery) (*commonDto.PageResult[entity.UserGoal], error)
	Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.UserGoal, error)
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateGoalRequest) (*entity.UserGoal, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

type goalService struct {
	repo  repository.GoalRepository
	authz *authz.Engine
	owned service.Owned[entity.UserGoal]
}

func NewGoalService(repo repository.GoalRepository, users service.Accounts, engine *authz.Engine, pageSize int) GoalService {
	return &goalService{
		repo:  repo,
		authz: engine,
		owned: service.Owned[entity.UserGoal]{
			Repo:     repo,
			Users:    users,
			Authz:    engine,
			Resource: authz.ResourceUserGoal,
			PageSize: pageSize,
		},
	}
}

func (s *goalService) Create(ctx context.Context, actor *authz.Actor, req dto.CreateGoalRequest) (*entity.UserGoal, error) {
	if err := s.authz.Allow(actor, authz.ActionCreate, authz.ResourceUserGoal); err != nil {
		return nil, err
	}
	if !req.GoalType.Valid() {
		return nil, invalidGoalType()
	}
	owner, err := s.owned.Owner(ctx, actor, req.User)
	if err != nil {
		return nil, err
	}

	g := &entity.UserGoal{
		Base:         entity.NewBase(),
		UserID:       owner,
		GoalType:     req.GoalType,
		TargetWeight: req.TargetWeight,
		TargetDate:   req.TargetDate.TimePtr(),
		Description:  strings.TrimSpace(req.Description),
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *goalService) List(ctx context.Context, actor *authz.Actor, query dto.GoalQuery) (*commonDto.PageResult[entity.UserGoal], error) {
	q := baseRepo.Query{
		Search:        strings.TrimSpace(query.Search),
		SearchColumns: []string{"description"},
	}
	if query.GoalType != "" {
		q.Where = map[string]any{"goal_type": query.GoalType}
	}
	return s.owned.List(ctx, actor, query.PageQuery, q)
}

func (s *goalService) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.UserGoal, error) {
	return s.owned.Load(ctx, actor, authz.ActionRetrieve, id)
}

func (s *goalService) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateGoalRequest) (*entity.UserGoal, error) {
	g, err := s.owned.Load(ctx, actor, authz.ActionUpdate, id)
	if err != nil {
		return nil, err
	}

	if req.GoalType != nil {
		if !req.GoalType.Valid() {
			return nil, invalidGoalType()
		}
		g.GoalType = *req.GoalType
	}
	if req.TargetWeight != nil {
		g.TargetWeight = req.TargetWeight
	}
	if req.TargetDate != nil {
		g.TargetDate = req.TargetDate.TimePtr()
	}
	if req.Description != nil {
		g.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.repo.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *goalService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	return s.owned.Delete(ctx, actor, id)
}

func invalidGoalType() error {
	return apperror.Field("goal_type", "must be one of weight_loss, weight_gain, maintain, muscle_gain, other")
}
