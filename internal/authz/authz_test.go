package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/pkg/apperror"
)

func actor(role entity.Role) *Actor {
	return &Actor{ID: uuid.New(), Role: role}
}

func TestAuthorize_InstanceActions(t *testing.T) {
	engine := New()

	owner := actor(entity.RoleExerciser)
	other := actor(entity.RoleExerciser)
	expert := actor(entity.RoleExpert)
	admin := actor(entity.RoleAdmin)

	plan := &entity.WorkoutPlan{UserID: owner.ID}
	diary := &entity.HealthDiary{UserID: owner.ID}
	msg := &entity.ChatMessage{SenderID: owner.ID, ReceiverID: expert.ID}
	conn := &entity.UserConnection{UserID: owner.ID, ExpertID: expert.ID}
	self := &entity.User{Base: entity.Base{ID: owner.ID}}

	tests := []struct {
		name     string
		actor    *Actor
		action   Action
		resource Resource
		target   any
		wantErr  error
	}{
		{"owner retrieves plan", owner, ActionRetrieve, ResourceWorkoutPlan, plan, nil},
		{"stranger retrieves plan", other, ActionRetrieve, ResourceWorkoutPlan, plan, apperror.ErrForbidden},
		{"admin updates plan", admin, ActionUpdate, ResourceWorkoutPlan, plan, nil},
		{"anonymous retrieves plan", nil, ActionRetrieve, ResourceWorkoutPlan, plan, apperror.ErrUnauthorized},
		{"owner updates diary", owner, ActionUpdate, ResourceHealthDiary, diary, nil},
		{"admin updates diary", admin, ActionUpdate, ResourceHealthDiary, diary, apperror.ErrForbidden},
		{"admin deletes diary", admin, ActionDelete, ResourceHealthDiary, diary, apperror.ErrForbidden},
		{"admin retrieves diary", admin, ActionRetrieve, ResourceHealthDiary, diary, nil},
		{"sender retrieves message", owner, ActionRetrieve, ResourceChatMessage, msg, nil},
		{"receiver retrieves message", expert, ActionRetrieve, ResourceChatMessage, msg, nil},
		{"third party retrieves message", other, ActionRetrieve, ResourceChatMessage, msg, apperror.ErrForbidden},
		{"expert updates connection", expert, ActionUpdate, ResourceUserConnection, conn, nil},
		{"stranger updates connection", other, ActionUpdate, ResourceUserConnection, conn, apperror.ErrForbidden},
		{"user changes own password", owner, ActionChangePassword, ResourceUser, self, nil},
		{"user changes other password", other, ActionChangePassword, ResourceUser, self, apperror.ErrForbidden},
		{"exerciser deletes activity", owner, ActionDelete, ResourceActivity, &entity.Activity{}, apperror.ErrForbidden},
		{"admin deletes activity", admin, ActionDelete, ResourceActivity, &entity.Activity{}, nil},
		{"wrong target type", owner, ActionRetrieve, ResourceWorkoutPlan, &entity.MealPlan{UserID: owner.ID}, apperror.ErrForbidden},
		{"nil target", owner, ActionRetrieve, ResourceWorkoutPlan, nil, apperror.ErrForbidden},
		{"unknown action", admin, ActionActivate, ResourceWorkoutPlan, plan, apperror.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.Authorize(tt.actor, tt.action, tt.resource, tt.target)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAllow_RoleGate(t *testing.T) {
	engine := New()

	tests := []struct {
		name     string
		actor    *Actor
		action   Action
		resource Resource
		wantErr  error
	}{
		{"anonymous registers", nil, ActionCreate, ResourceUser, nil},
		{"anonymous registers coach", nil, ActionCreate, ResourceCoach, nil},
		{"anonymous lists activities", nil, ActionList, ResourceActivity, apperror.ErrUnauthorized},
		{"exerciser lists users", actor(entity.RoleExerciser), ActionList, ResourceUser, apperror.ErrForbidden},
		{"admin lists users", actor(entity.RoleAdmin), ActionList, ResourceUser, nil},
		{"expert creates expert profile", actor(entity.RoleExpert), ActionCreate, ResourceExpertProfile, nil},
		{"exerciser creates expert profile", actor(entity.RoleExerciser), ActionCreate, ResourceExpertProfile, apperror.ErrForbidden},
		{"expert opens connection", actor(entity.RoleExpert), ActionCreate, ResourceUserConnection, apperror.ErrForbidden},
		{"exerciser opens connection", actor(entity.RoleExerciser), ActionCreate, ResourceUserConnection, nil},
		{"expert activates user", actor(entity.RoleExpert), ActionActivate, ResourceUser, apperror.ErrForbidden},
		{"invalid role", &Actor{ID: uuid.New(), Role: entity.Role(9)}, ActionList, ResourceTag, apperror.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.Allow(tt.actor, tt.action, tt.resource)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListScope(t *testing.T) {
	engine := New()
	exerciser := actor(entity.RoleExerciser)

	scope := engine.ListScope(exerciser, ResourceHealthRecord)
	assert.False(t, scope.All)
	assert.Equal(t, exerciser.ID, scope.OwnerID)
	assert.Equal(t, []string{"user_id"}, scope.Columns)

	scope = engine.ListScope(exerciser, ResourceChatMessage)
	assert.Equal(t, []string{"sender_id", "receiver_id"}, scope.Columns)

	assert.True(t, engine.ListScope(actor(entity.RoleAdmin), ResourceHealthRecord).All)
	assert.True(t, engine.ListScope(exerciser, ResourceActivity).All)
}

func TestObserver(t *testing.T) {
	var outcomes []string
	engine := New(WithObserver(func(_ Resource, _ Action, outcome string) {
		outcomes = append(outcomes, outcome)
	}))

	require.NoError(t, engine.Allow(actor(entity.RoleAdmin), ActionCreate, ResourceTag))
	require.Error(t, engine.Allow(actor(entity.RoleExpert), ActionCreate, ResourceTag))
	require.Error(t, engine.Allow(nil, ActionList, ResourceTag))

	assert.Equal(t, []string{OutcomeAllow, OutcomeForbidden, OutcomeUnauthenticated}, outcomes)
}
