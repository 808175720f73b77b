package service

import (
	"context"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/graph"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/ingest"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/repository"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupClosureService(t *testing.T) (*ClosureService, *time.Time) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	svc := NewClosureService(repository.NewClosureRepository(client))
	svc.now = func() time.Time { return now }
	return svc, &now
}

// corridor: a -100- b -100- c on floor 1, stairs a/s2 connect to floor 2.
func corridorBuilding() []domain.Waypoint {
	return []domain.Waypoint{
		{ID: "a", Name: "Stairs", Floor: 1, X: 0, Y: 0, Category: domain.CategoryStaircase},
		{ID: "b", Name: "Corridor", Floor: 1, X: 100, Y: 0, Category: domain.CategoryCorridor},
		{ID: "c", Name: "Room 101", Floor: 1, X: 200, Y: 0, Category: domain.CategoryRoom},
		{ID: "s2", Name: "Stairs", Floor: 2, X: 0, Y: 0, Category: domain.CategoryStaircase},
		{ID: "r201", Name: "Room 201", Floor: 2, X: 80, Y: 0, Category: domain.CategoryRoom},
	}
}

func setupNavigation(t *testing.T) (*NavigationService, *ClosureService) {
	closures, _ := setupClosureService(t)
	src := ingest.NewStaticSource()
	src.Put("hq", corridorBuilding())

	nav, err := NewNavigationService(src, ClosureSnapshots(closures), graph.DefaultConfig(), 0)
	require.NoError(t, err)
	return nav, closures
}

func TestClosureService_CloseEdge(t *testing.T) {
	svc, now := setupClosureService(t)
	ctx := context.Background()

	t.Run("defaults to maintenance", func(t *testing.T) {
		c, err := svc.CloseEdge(ctx, &domain.CloseEdgeRequest{BuildingID: "hq", FromID: "a", ToID: "b", Reason: "floor polish"})
		require.NoError(t, err)
		assert.Equal(t, domain.ClosureMaintenance, c.Type)
		assert.True(t, c.Active)
		assert.Equal(t, *now, c.CreatedAt)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := svc.CloseEdge(ctx, &domain.CloseEdgeRequest{BuildingID: "hq", FromID: "a"})
		assert.ErrorIs(t, err, domain.ErrInvalidClosure)

		_, err = svc.CloseEdge(ctx, &domain.CloseEdgeRequest{BuildingID: "hq", FromID: "a", ToID: "a"})
		assert.ErrorIs(t, err, domain.ErrInvalidClosure)

		_, err = svc.CloseEdge(ctx, &domain.CloseEdgeRequest{BuildingID: "hq", FromID: "a", ToID: "b", Type: "flood"})
		assert.ErrorIs(t, err, domain.ErrInvalidClosureType)

		past := now.Add(-time.Minute)
		_, err = svc.CloseEdge(ctx, &domain.CloseEdgeRequest{BuildingID: "hq", FromID: "a", ToID: "b", ScheduledUntil: &past})
		assert.ErrorIs(t, err, domain.ErrInvalidClosure)
	})
}

func TestClosureService_LifecycleAndExpiry(t *testing.T) {
	svc, now := setupClosureService(t)
	ctx := context.Background()

	until := now.Add(time.Hour)
	edge, err := svc.CloseEdge(ctx, &domain.CloseEdgeRequest{BuildingID: "hq", FromID: "a", ToID: "b", Type: domain.ClosureRepair, ScheduledUntil: &until})
	require.NoError(t, err)
	node, err := svc.CloseNode(ctx, &domain.CloseNodeRequest{BuildingID: "hq", NodeID: "c", Type: domain.ClosureEmergency, Reason: "gas leak"})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx, "hq")
	require.NoError(t, err)
	assert.Len(t, active, 2)

	state, err := svc.State(ctx, "hq")
	require.NoError(t, err)
	assert.Equal(t, *now, state.At)
	assert.Equal(t, []domain.ClosedEdge{{FromID: "a", ToID: "b", Reason: "repair"}}, state.ClosedEdges)
	assert.Equal(t, []string{"c"}, state.ClosedNodes)

	t.Run("expiry hides closure before sweep", func(t *testing.T) {
		*now = now.Add(2 * time.Hour)
		active, err := svc.ListActive(ctx, "hq")
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, node.ID, active[0].ID)

		stored, err := svc.Get(ctx, edge.ID)
		require.NoError(t, err)
		assert.True(t, stored.Active)
	})

	t.Run("sweep deactivates expired", func(t *testing.T) {
		n, err := svc.SweepExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		stored, err := svc.Get(ctx, edge.ID)
		require.NoError(t, err)
		assert.False(t, stored.Active)

		n, err = svc.SweepExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("reopen", func(t *testing.T) {
		c, err := svc.Reopen(ctx, node.ID)
		require.NoError(t, err)
		assert.False(t, c.Active)

		active, err := svc.ListActive(ctx, "hq")
		require.NoError(t, err)
		assert.Empty(t, active)

		_, err = svc.Reopen(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrClosureNotFound)
	})
}

func TestNavigationService_Route(t *testing.T) {
	nav, closures := setupNavigation(t)
	ctx := context.Background()

	t.Run("same floor", func(t *testing.T) {
		r, err := nav.Route(ctx, "hq", "a", "c")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, r.Path)
		assert.InDelta(t, 200.0, r.Distance, 1e-9)
		assert.Equal(t, 0, r.FloorChanges)
		assert.InDelta(t, 200.0/DefaultWalkingSpeed, r.EstimatedTime, 1e-9)
		require.Len(t, r.Waypoints, 3)
		assert.Equal(t, "Room 101", r.Waypoints[2].Name)
	})

	t.Run("across floors", func(t *testing.T) {
		r, err := nav.Route(ctx, "hq", "c", "r201")
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a", "s2", "r201"}, r.Path)
		assert.InDelta(t, 100+100+100+80, r.Distance, 1e-9)
		assert.Equal(t, 1, r.FloorChanges)
	})

	t.Run("closure blocks route", func(t *testing.T) {
		_, err := closures.CloseEdge(ctx, &domain.CloseEdgeRequest{BuildingID: "hq", FromID: "b", ToID: "a"})
		require.NoError(t, err)

		_, err = nav.Route(ctx, "hq", "c", "r201")
		assert.ErrorIs(t, err, domain.ErrNoPath)

		r, err := nav.Route(ctx, "hq", "b", "b")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, r.Path)
	})

	t.Run("unknown waypoint", func(t *testing.T) {
		_, err := nav.Route(ctx, "hq", "a", "zzz")
		assert.ErrorIs(t, err, domain.ErrUnknownWaypoint)
	})

	t.Run("unknown building", func(t *testing.T) {
		_, err := nav.Route(ctx, "nowhere", "a", "b")
		assert.ErrorIs(t, err, domain.ErrBuildingNotFound)
	})
}

func TestNavigationService_RejectsInvalidConfig(t *testing.T) {
	cfg := graph.DefaultConfig()
	cfg.FloorChangePenalty = -1
	_, err := NewNavigationService(ingest.NewStaticSource(), nil, cfg, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestNavigationService_DemoBuilding(t *testing.T) {
	wps, err := ingest.DemoBuilding()
	require.NoError(t, err)
	src := ingest.NewStaticSource()
	src.Put(ingest.DemoBuildingID, wps)

	nav, err := NewNavigationService(src, nil, graph.DefaultConfig(), 0)
	require.NoError(t, err)

	es, _, err := nav.BuildGraph(context.Background(), ingest.DemoBuildingID)
	require.NoError(t, err)
	assert.Greater(t, es.Len(), 0)

	r, err := nav.Route(context.Background(), ingest.DemoBuildingID, "35", "52")
	require.NoError(t, err)
	assert.Equal(t, "35", r.Path[0])
	assert.Equal(t, "52", r.Path[len(r.Path)-1])
}

// buildingOnly hides the floor filter of the wrapped source.
type buildingOnly struct{ src *ingest.StaticSource }

func (b buildingOnly) ListByBuilding(ctx context.Context, id string) ([]domain.Waypoint, error) {
	return b.src.ListByBuilding(ctx, id)
}

func TestNavigationService_BuildFloorGraph(t *testing.T) {
	src := ingest.NewStaticSource()
	src.Put("hq", corridorBuilding())
	ctx := context.Background()

	sources := map[string]WaypointSource{"floor source": src, "building source": buildingOnly{src}}
	for name, s := range sources {
		t.Run(name, func(t *testing.T) {
			nav, err := NewNavigationService(s, nil, graph.DefaultConfig(), 0)
			require.NoError(t, err)

			es, wps, err := nav.BuildFloorGraph(ctx, "hq", []int{1})
			require.NoError(t, err)
			require.Len(t, wps, 3)
			for _, w := range wps {
				assert.Equal(t, 1, w.Floor)
			}
			assert.True(t, es.Has("a", "b"))
			assert.False(t, es.Has("a", "s2"))

			es, wps, err = nav.BuildFloorGraph(ctx, "hq", []int{1, 2})
			require.NoError(t, err)
			assert.Len(t, wps, 5)
			assert.True(t, es.Has("a", "s2"))

			_, _, err = nav.BuildFloorGraph(ctx, "hq", []int{9})
			assert.ErrorIs(t, err, domain.ErrBuildingNotFound)

			_, wps, err = nav.BuildFloorGraph(ctx, "hq", nil)
			require.NoError(t, err)
			assert.Len(t, wps, 5)
		})
	}
}
