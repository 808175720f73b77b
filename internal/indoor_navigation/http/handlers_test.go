package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/graph"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/ingest"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/repository"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/service"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func building() []domain.Waypoint {
	return []domain.Waypoint{
		{ID: "a", Name: "Entrance", Floor: 1, X: 0, Y: 0, Category: domain.CategoryCorridor},
		{ID: "b", Name: "Corridor", Floor: 1, X: 100, Y: 0, Category: domain.CategoryCorridor},
		{ID: "c", Name: "Room 101", Floor: 1, X: 200, Y: 0, Category: domain.CategoryRoom},
		{ID: "far", Name: "Annex", Floor: 1, X: 2000, Y: 0, Category: domain.CategoryRoom},
	}
}

func setupRouter(t *testing.T, withClosures bool, limiter *rate.Limiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	src := ingest.NewStaticSource()
	src.Put("hq", building())

	var closures *service.ClosureService
	var snaps service.ClosureSnapshotter
	if withClosures {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() {
			client.Close()
			mr.Close()
		})
		closures = service.NewClosureService(repository.NewClosureRepository(client))
		snaps = service.ClosureSnapshots(closures)
	}

	nav, err := service.NewNavigationService(src, snaps, graph.DefaultConfig(), 0)
	require.NoError(t, err)

	router := gin.New()
	New(nav, closures, limiter).Register(router.Group("/api/v1"))
	return router
}

func do(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestPlanRoute(t *testing.T) {
	router := setupRouter(t, false, nil)

	t.Run("ok", func(t *testing.T) {
		rr := do(router, http.MethodPost, "/api/v1/buildings/hq/routes", gin.H{"start_id": "a", "end_id": "c"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp struct {
			Route domain.RouteSummary `json:"route"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, []string{"a", "b", "c"}, resp.Route.Path)
		assert.InDelta(t, 200.0, resp.Route.Distance, 1e-9)
	})

	t.Run("validation", func(t *testing.T) {
		rr := do(router, http.MethodPost, "/api/v1/buildings/hq/routes", gin.H{"start_id": "a"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown waypoint", func(t *testing.T) {
		rr := do(router, http.MethodPost, "/api/v1/buildings/hq/routes", gin.H{"start_id": "a", "end_id": "zzz"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"unknown waypoint"}`, rr.Body.String())
	})

	t.Run("no path", func(t *testing.T) {
		rr := do(router, http.MethodPost, "/api/v1/buildings/hq/routes", gin.H{"start_id": "a", "end_id": "far"})
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.JSONEq(t, `{"error":"no path"}`, rr.Body.String())
	})

	t.Run("unknown building", func(t *testing.T) {
		rr := do(router, http.MethodPost, "/api/v1/buildings/nope/routes", gin.H{"start_id": "a", "end_id": "b"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestPlanRoute_RateLimited(t *testing.T) {
	router := setupRouter(t, false, rate.NewLimiter(rate.Limit(0.001), 1))
	body := gin.H{"start_id": "a", "end_id": "b"}

	assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/api/v1/buildings/hq/routes", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(router, http.MethodPost, "/api/v1/buildings/hq/routes", body).Code)
}

func TestGetGraph(t *testing.T) {
	router := setupRouter(t, false, nil)

	rr := do(router, http.MethodGet, "/api/v1/buildings/hq/graph", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var doc struct {
		Edges []domain.Edge `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Len(t, doc.Edges, 2)

	rr = do(router, http.MethodGet, "/api/v1/buildings/hq/graph.dot", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "graph G {"))
}

func TestGetGraph_Floors(t *testing.T) {
	router := setupRouter(t, false, nil)

	rr := do(router, http.MethodGet, "/api/v1/buildings/hq/graph?floors=2,3", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(router, http.MethodGet, "/api/v1/buildings/hq/graph?floors=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var doc struct {
		Edges []domain.Edge `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Len(t, doc.Edges, 2)

	rr = do(router, http.MethodGet, "/api/v1/buildings/hq/graph?floors=1,x", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid floor")
}

func TestClosureEndpoints(t *testing.T) {
	router := setupRouter(t, true, nil)

	rr := do(router, http.MethodPost, "/api/v1/buildings/hq/closures/edges",
		gin.H{"from_id": "b", "to_id": "a", "type": "repair", "reason": "burst pipe"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created struct {
		Closure domain.Closure `json:"closure"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "hq", created.Closure.BuildingID)
	assert.NotEmpty(t, created.Closure.ID)

	rr = do(router, http.MethodPost, "/api/v1/buildings/hq/routes", gin.H{"start_id": "a", "end_id": "c"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = do(router, http.MethodGet, "/api/v1/buildings/hq/graph.dot", nil)
	assert.Contains(t, rr.Body.String(), `"a" -- "b" [label="100.0 (burst pipe)", style=dashed`)

	rr = do(router, http.MethodGet, "/api/v1/buildings/hq/closures/state", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var state domain.ClosureState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Equal(t, "hq", state.BuildingID)
	assert.Equal(t, []domain.ClosedEdge{{FromID: "b", ToID: "a", Reason: "burst pipe"}}, state.ClosedEdges)
	assert.Empty(t, state.ClosedNodes)

	rr = do(router, http.MethodGet, "/api/v1/buildings/hq/closures", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"count":1`)

	rr = do(router, http.MethodGet, "/api/v1/closures/"+created.Closure.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(router, http.MethodDelete, "/api/v1/closures/"+created.Closure.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(router, http.MethodPost, "/api/v1/buildings/hq/routes", gin.H{"start_id": "a", "end_id": "c"})
	assert.Equal(t, http.StatusOK, rr.Code)

	t.Run("node closure", func(t *testing.T) {
		rr := do(router, http.MethodPost, "/api/v1/buildings/hq/closures/nodes", gin.H{"node_id": "b", "type": "cleaning"})
		require.Equal(t, http.StatusCreated, rr.Code)

		rr = do(router, http.MethodPost, "/api/v1/buildings/hq/routes", gin.H{"start_id": "a", "end_id": "c"})
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("bad closure", func(t *testing.T) {
		rr := do(router, http.MethodPost, "/api/v1/buildings/hq/closures/edges", gin.H{"from_id": "a", "to_id": "b", "type": "flood"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = do(router, http.MethodDelete, "/api/v1/closures/missing", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestClosureEndpoints_Disabled(t *testing.T) {
	router := setupRouter(t, false, nil)

	rr := do(router, http.MethodGet, "/api/v1/buildings/hq/closures", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = do(router, http.MethodGet, "/api/v1/buildings/hq/closures/state", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
