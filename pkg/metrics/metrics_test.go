package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/tag/:id/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tag/123/", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	out := httptest.NewRecorder()
	Handler().ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, out.Body.String(), `health_manage_http_requests_total{method="GET",path="/tag/:id/",status="204"}`)
	assert.NotContains(t, out.Body.String(), `path="/tag/123/"`)
}

func TestRecordDecisionIsExposed(t *testing.T) {
	RecordDecision("tag", "create", "forbidden")

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `health_manage_authz_decisions_total{action="create",outcome="forbidden",resource="tag"}`)
}
