package goal

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/goal/dto"
	"anoa.com/healthmanage/internal/repository/repotest"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

func newService(users ...uuid.UUID) GoalService {
	return NewGoalService(repotest.NewMemory[entity.UserGoal](authz.ResourceUserGoal), repotest.ActiveUsers(users...), authz.New(), 10)
}

func TestCreate_RejectsUnknownGoalType(t *testing.T) {
	svc := newService()
	_, err := svc.Create(context.Background(), &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser},
		dto.CreateGoalRequest{GoalType: "get_rich"})

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "goal_type")
}

func TestCreateAndUpdate(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	actor := &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser}
	target, err := commonDto.ParseDate("2024-12-31")
	require.NoError(t, err)
	weight := 65.0

	g, err := svc.Create(ctx, actor, dto.CreateGoalRequest{
		GoalType:     entity.GoalWeightLoss,
		TargetWeight: &weight,
		TargetDate:   &target,
		Description:  "  lose five kilos ",
	})
	require.NoError(t, err)
	assert.Equal(t, actor.ID, g.UserID)
	assert.Equal(t, "lose five kilos", g.Description)
	require.NotNil(t, g.TargetDate)
	assert.Equal(t, target.Time, *g.TargetDate)

	maintain := entity.GoalMaintain
	updated, err := svc.Update(ctx, actor, g.ID, dto.UpdateGoalRequest{GoalType: &maintain})
	require.NoError(t, err)
	assert.Equal(t, entity.GoalMaintain, updated.GoalType)

	_, err = svc.Update(ctx, &authz.Actor{ID: uuid.New(), Role: entity.RoleExpert}, g.ID, dto.UpdateGoalRequest{GoalType: &maintain})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestList_Anonymous(t *testing.T) {
	_, err := newService().List(context.Background(), nil, dto.GoalQuery{})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestCreate_AdminAssignsExistingOwner(t *testing.T) {
	ctx := context.Background()
	member := uuid.New()
	svc := newService(member)
	admin := &authz.Actor{ID: uuid.New(), Role: entity.RoleAdmin}

	g, err := svc.Create(ctx, admin, dto.CreateGoalRequest{GoalType: entity.GoalMaintain, User: &member})
	require.NoError(t, err)
	assert.Equal(t, member, g.UserID)

	unknown := uuid.New()
	_, err = svc.Create(ctx, admin, dto.CreateGoalRequest{GoalType: entity.GoalMaintain, User: &unknown})
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "user")
	assert.Equal(t, 400, apperror.MapErrorToStatus(err))
}
