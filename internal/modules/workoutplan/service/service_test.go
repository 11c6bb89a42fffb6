package workout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/workoutplan/dto"
	"anoa.com/healthmanage/internal/repository/repotest"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

type fakePlanRepo struct {
	*repotest.Memory[entity.WorkoutPlan, *entity.WorkoutPlan]
	activities []entity.Activity
}

func (r *fakePlanRepo) CreatePlan(ctx context.Context, plan *entity.WorkoutPlan) error {
	return r.Create(ctx, plan)
}

func (r *fakePlanRepo) SavePlan(ctx context.Context, plan *entity.WorkoutPlan, _ bool) error {
	return r.Save(ctx, plan)
}

func (r *fakePlanRepo) ActiveActivities(_ context.Context, ids []uuid.UUID) ([]entity.Activity, error) {
	out := []entity.Activity{}
	for _, id := range ids {
		for _, a := range r.activities {
			if a.ID == id && a.Active {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

type fixture struct {
	svc      WorkoutPlanService
	repo     *fakePlanRepo
	running  entity.Activity
	retired  entity.Activity
	owner    *authz.Actor
	stranger *authz.Actor
	admin    *authz.Actor
}

func setup() fixture {
	f := fixture{
		running:  entity.Activity{Base: entity.Base{ID: uuid.New(), Active: true}, Name: "Running"},
		retired:  entity.Activity{Base: entity.Base{ID: uuid.New(), Active: false}, Name: "Rowing"},
		owner:    &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser},
		stranger: &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser},
		admin:    &authz.Actor{ID: uuid.New(), Role: entity.RoleAdmin},
	}
	f.repo = &fakePlanRepo{
		Memory:     repotest.NewMemory[entity.WorkoutPlan](authz.ResourceWorkoutPlan),
		activities: []entity.Activity{f.running, f.retired},
	}
	f.svc = NewWorkoutPlanService(f.repo, repotest.ActiveUsers(f.owner.ID, f.stranger.ID), authz.New(), 10)
	return f
}

func request(name string, activities ...uuid.UUID) dto.CreateWorkoutPlanRequest {
	d := commonDto.NewDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	return dto.CreateWorkoutPlanRequest{Name: name, Date: &d, ActivityIDs: activities}
}

func TestCreatePlan_ForcesOwnerToActor(t *testing.T) {
	f := setup()
	req := request("Leg day", f.running.ID)
	other := f.stranger.ID
	req.User = &other

	plan, err := f.svc.CreatePlan(context.Background(), f.owner, req)
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, plan.UserID)
	assert.True(t, plan.Active)
	require.Len(t, plan.Activities, 1)
	assert.Equal(t, "Running", plan.Activities[0].Name)
}

func TestCreate_AdminMayAssignOwner(t *testing.T) {
	f := setup()
	req := request("Recovery")
	target := f.owner.ID
	req.User = &target

	plan, err := f.svc.Create(context.Background(), f.admin, req)
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, plan.UserID)

	req.User = &f.stranger.ID
	plan, err = f.svc.Create(context.Background(), f.owner, req)
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, plan.UserID)
}

func TestCreate_AdminAssigningUnknownOwner(t *testing.T) {
	f := setup()
	req := request("Ghost")
	unknown := uuid.New()
	req.User = &unknown

	_, err := f.svc.Create(context.Background(), f.admin, req)
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "user")
	assert.Empty(t, f.repo.Rows())
}

func TestCreatePlan_RejectsInactiveActivity(t *testing.T) {
	f := setup()

	_, err := f.svc.CreatePlan(context.Background(), f.owner, request("Row", f.running.ID, f.retired.ID))

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "activity_ids")
	assert.Empty(t, f.repo.Rows())
}

func TestCreatePlan_RequiresAuthentication(t *testing.T) {
	f := setup()
	_, err := f.svc.CreatePlan(context.Background(), nil, request("Anything"))
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestList_OnlyOwnPlansForNonAdmin(t *testing.T) {
	f := setup()
	ctx := context.Background()
	_, err := f.svc.CreatePlan(ctx, f.owner, request("Mine"))
	require.NoError(t, err)
	_, err = f.svc.CreatePlan(ctx, f.stranger, request("Theirs"))
	require.NoError(t, err)

	page, err := f.svc.List(ctx, f.owner, dto.PlanQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Mine", page.Items[0].Name)

	page, err = f.svc.List(ctx, f.admin, dto.PlanQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
}

func TestGet_StrangerForbidden(t *testing.T) {
	f := setup()
	plan, err := f.svc.CreatePlan(context.Background(), f.owner, request("Mine"))
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), f.stranger, plan.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	got, err := f.svc.Get(context.Background(), f.admin, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, got.ID)
}

func TestUpdate_ReplacesActivitiesWhenGiven(t *testing.T) {
	f := setup()
	ctx := context.Background()
	plan, err := f.svc.CreatePlan(ctx, f.owner, request("Mine", f.running.ID))
	require.NoError(t, err)

	name := "Renamed"
	updated, err := f.svc.Update(ctx, f.owner, plan.ID, dto.UpdateWorkoutPlanRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	none := []uuid.UUID{}
	updated, err = f.svc.Update(ctx, f.owner, plan.ID, dto.UpdateWorkoutPlanRequest{ActivityIDs: &none})
	require.NoError(t, err)
	assert.Empty(t, updated.Activities)
}

func TestDelete_DeactivatesPlan(t *testing.T) {
	f := setup()
	ctx := context.Background()
	plan, err := f.svc.CreatePlan(ctx, f.owner, request("Mine"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.stranger, plan.ID), apperror.ErrForbidden)
	require.NoError(t, f.svc.Delete(ctx, f.owner, plan.ID))

	_, err = f.svc.Get(ctx, f.owner, plan.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
