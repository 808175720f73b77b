package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthCheck(t *testing.T, h *HealthHandler, path string) HealthResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck_NoDependencies(t *testing.T) {
	resp := healthCheck(t, NewHealthHandler("indoor-nav", "1.0.0", nil, nil), "/health")

	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "indoor-nav", resp.Service)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "disabled", resp.DB)
	assert.Equal(t, "disabled", resp.Redis)
}

func TestHealthCheck_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	h := NewHealthHandler("indoor-nav", "1.0.0", nil, rdb)
	assert.Equal(t, "up", healthCheck(t, h, "/healthz").Redis)

	mr.Close()
	assert.Equal(t, "down", healthCheck(t, h, "/healthz").Redis)
}
