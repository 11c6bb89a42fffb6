package workout

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/workoutplan/dto"
	"anoa.com/healthmanage/internal/modules/workoutplan/repository"
	baseRepo "anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/internal/service"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

type WorkoutPlanService interface {
	Create(ctx context.Context, actor *authz.Actor, req dto.CreateWorkoutPlanRequest) (*entity.WorkoutPlan, error)
	// CreatePlan always assigns the plan to the actor.
	CreatePlan(ctx context.Context, actor *authz.Actor, req dto.CreateWorkoutPlanRequest) (*entity.WorkoutPlan, error)
	List(ctx context.Context, actor *authz.Actor, query dto.PlanQuery) (*commonDto.PageResult[entity.WorkoutPlan], error)
	Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.WorkoutPlan, error)
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateWorkoutPlanRequest) (*entity.WorkoutPlan, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

type workoutPlanService struct {
	repo  repository.WorkoutPlanRepository
	authz *authz.Engine
	owned service.Owned[entity.WorkoutPlan]
}

func NewWorkoutPlanService(repo repository.WorkoutPlanRepository, users service.Accounts, engine *authz.Engine, pageSize int) WorkoutPlanService {
	return &workoutPlanService{
		repo:  repo,
		authz: engine,
		owned: service.Owned[entity.WorkoutPlan]{
			Repo:     repo,
			Users:    users,
			Authz:    engine,
			Resource: authz.ResourceWorkoutPlan,
			PageSize: pageSize,
			Preloads: []string{"Activities"},
		},
	}
}

func (s *workoutPlanService) Create(ctx context.Context, actor *authz.Actor, req dto.CreateWorkoutPlanRequest) (*entity.WorkoutPlan, error) {
	owner, err := s.owned.Owner(ctx, actor, req.User)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, actor, owner, req)
}

func (s *workoutPlanService) CreatePlan(ctx context.Context, actor *authz.Actor, req dto.CreateWorkoutPlanRequest) (*entity.WorkoutPlan, error) {
	if actor == nil {
		return nil, apperror.ErrUnauthorized
	}
	return s.create(ctx, actor, actor.ID, req)
}

func (s *workoutPlanService) create(ctx context.Context, actor *authz.Actor, owner uuid.UUID, req dto.CreateWorkoutPlanRequest) (*entity.WorkoutPlan, error) {
	if err := s.authz.Allow(actor, authz.ActionCreate, authz.ResourceWorkoutPlan); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Field("name", "this field may not be blank")
	}
	activities, err := s.activities(ctx, req.ActivityIDs)
	if err != nil {
		return nil, err
	}

	plan := &entity.WorkoutPlan{
		Base:        entity.NewBase(),
		UserID:      owner,
		Name:        name,
		Date:        req.Date.Time,
		Activities:  activities,
		Description: req.Description,
		Sets:        req.Sets,
		Reps:        req.Reps,
	}
	if err := s.repo.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *workoutPlanService) List(ctx context.Context, actor *authz.Actor, query dto.PlanQuery) (*commonDto.PageResult[entity.WorkoutPlan], error) {
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

func (s *workoutPlanService) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.WorkoutPlan, error) {
	return s.owned.Load(ctx, actor, authz.ActionRetrieve, id)
}

func (s *workoutPlanService) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateWorkoutPlanRequest) (*entity.WorkoutPlan, error) {
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
	if req.Sets != nil {
		plan.Sets = req.Sets
	}
	if req.Reps != nil {
		plan.Reps = req.Reps
	}

	replace := req.ActivityIDs != nil
	if replace {
		if plan.Activities, err = s.activities(ctx, *req.ActivityIDs); err != nil {
			return nil, err
		}
	}

	if err := s.repo.SavePlan(ctx, plan, replace); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *workoutPlanService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	return s.owned.Delete(ctx, actor, id)
}

// activities resolves ids to active activities. Any unknown or inactive id
// fails the whole request.
func (s *workoutPlanService) activities(ctx context.Context, ids []uuid.UUID) ([]entity.Activity, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	found, err := s.repo.ActiveActivities(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, apperror.Field("activity_ids", "every activity must exist and be active")
	}
	return found, nil
}
