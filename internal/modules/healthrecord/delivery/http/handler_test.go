package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/healthrecord/dto"
	record "anoa.com/healthmanage/internal/modules/healthrecord/service"
	"anoa.com/healthmanage/pkg/response"
)

type stubService struct {
	record.HealthRecordService
	latest *entity.HealthRecord
	query  dto.StatsQuery
}

func (s *stubService) ViewRecord(context.Context, *authz.Actor) (*entity.HealthRecord, error) {
	if s.latest == nil {
		return nil, record.ErrNoRecord
	}
	return s.latest, nil
}

func (s *stubService) Stats(_ context.Context, actor *authz.Actor, q dto.StatsQuery) (*dto.StatsResponse, error) {
	s.query = q
	return &dto.StatsResponse{User: actor.ID, Count: 1}, nil
}

func router(svc record.HealthRecordService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHealthRecordHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		response.SetActor(c, &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser})
	})
	r.GET("/healthrecord/view-record/", h.ViewRecord)
	r.GET("/healthrecord/stats/", h.Stats)
	return r
}

func TestViewRecord_MissingIsMessage404(t *testing.T) {
	w := httptest.NewRecorder()
	router(&stubService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthrecord/view-record/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["message"])
}

func TestViewRecord_IncludesBMI(t *testing.T) {
	height, weight := 1.5, 50.0
	svc := &stubService{latest: &entity.HealthRecord{
		Base:   entity.Base{ID: uuid.New(), Active: true},
		Date:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Height: &height,
		Weight: &weight,
	}}

	w := httptest.NewRecorder()
	router(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthrecord/view-record/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 22.22, body["bmi"])
	assert.Equal(t, "2024-03-10", body["date"])
}

func TestStats_BindsDateWindow(t *testing.T) {
	svc := &stubService{}
	w := httptest.NewRecorder()
	router(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthrecord/stats/?from=2024-03-01&to=2024-03-31", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.query.From)
	assert.Equal(t, "2024-03-01", svc.query.From.String())
	assert.Equal(t, "2024-03-31", svc.query.To.String())

	w = httptest.NewRecorder()
	router(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthrecord/stats/?from=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
