package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/workoutplan/dto"
	workout "anoa.com/healthmanage/internal/modules/workoutplan/service"
	"anoa.com/healthmanage/pkg/response"
)

type stubService struct {
	workout.WorkoutPlanService
	got *dto.CreateWorkoutPlanRequest
}

func (s *stubService) CreatePlan(_ context.Context, actor *authz.Actor, req dto.CreateWorkoutPlanRequest) (*entity.WorkoutPlan, error) {
	s.got = &req
	return &entity.WorkoutPlan{
		Base:       entity.Base{ID: uuid.New(), Active: true},
		UserID:     actor.ID,
		Name:       req.Name,
		Date:       req.Date.Time,
		Activities: []entity.Activity{{Base: entity.Base{ID: uuid.New()}, Name: "Running"}},
	}, nil
}

func router(svc workout.WorkoutPlanService, actor *authz.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWorkoutPlanHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) { response.SetActor(c, actor) })
	r.POST("/workoutplan/create-plan/", h.CreatePlan)
	r.GET("/workoutplan/:id/", h.Get)
	return r
}

func TestCreatePlan(t *testing.T) {
	svc := &stubService{}
	actor := &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser}

	body := `{"name":"Leg day","date":"2024-05-01","activity_ids":["` + uuid.NewString() + `"]}`
	w := httptest.NewRecorder()
	router(svc, actor).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/workoutplan/create-plan/", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), svc.got.Date.Time)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2024-05-01", resp["date"])
	assert.Equal(t, actor.ID.String(), resp["user"])
	assert.Len(t, resp["activities"], 1)
}

func TestCreatePlan_RejectsBadDate(t *testing.T) {
	w := httptest.NewRecorder()
	router(&stubService{}, &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser}).
		ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/workoutplan/create-plan/", strings.NewReader(`{"name":"x","date":"01/05/2024"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGet_MalformedIDIsNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	router(&stubService{}, &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser}).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/workoutplan/not-a-uuid/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
