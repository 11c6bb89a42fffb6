package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/pkg/apperror"
	"anoa.com/healthmanage/pkg/response"
)

const testSecret = "test-secret"

type stubLoader map[uuid.UUID]*entity.User

func (s stubLoader) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := s[id]; ok && u.Active {
		return u, nil
	}
	return nil, apperror.ErrNotFound
}

func signToken(t *testing.T, subject string, secret string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newRouter(users stubLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(users, testSecret)

	r := gin.New()
	whoami := func(c *gin.Context) {
		actor := response.OptionalActor(c)
		if actor == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, actor.Role.String())
	}
	r.GET("/private", m.RequireAuth(), whoami)
	r.GET("/public", m.OptionalAuth(), whoami)
	r.GET("/admin", m.RequireAuth(), m.RequireAdmin(), whoami)
	return r
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	active := &entity.User{Base: entity.Base{ID: uuid.New(), Active: true}, Role: entity.RoleExpert}
	inactive := &entity.User{Base: entity.Base{ID: uuid.New(), Active: false}, Role: entity.RoleExerciser}
	admin := &entity.User{Base: entity.Base{ID: uuid.New(), Active: true}, Role: entity.RoleAdmin}
	r := newRouter(stubLoader{active.ID: active, inactive.ID: inactive, admin.ID: admin})

	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
		wantBody string
	}{
		{"valid token", "/private", signToken(t, active.ID.String(), testSecret, time.Hour), http.StatusOK, "expert"},
		{"missing token", "/private", "", http.StatusUnauthorized, ""},
		{"inactive account", "/private", signToken(t, inactive.ID.String(), testSecret, time.Hour), http.StatusUnauthorized, ""},
		{"expired token", "/private", signToken(t, active.ID.String(), testSecret, -time.Minute), http.StatusUnauthorized, ""},
		{"wrong secret", "/private", signToken(t, active.ID.String(), "other", time.Hour), http.StatusUnauthorized, ""},
		{"anonymous on optional", "/public", "", http.StatusOK, "anonymous"},
		{"bad token on optional", "/public", "garbage", http.StatusUnauthorized, ""},
		{"admin route as expert", "/admin", signToken(t, active.ID.String(), testSecret, time.Hour), http.StatusForbidden, ""},
		{"admin route as admin", "/admin", signToken(t, admin.ID.String(), testSecret, time.Hour), http.StatusOK, "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.path, tt.token)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
