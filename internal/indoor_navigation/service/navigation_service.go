package service

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/graph"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/routing"
)

// DefaultWalkingSpeed is in building units per second.
const DefaultWalkingSpeed = 1.4

// WaypointSource loads the waypoints of one building.
type WaypointSource interface {
	ListByBuilding(ctx context.Context, buildingID string) ([]domain.Waypoint, error)
}

// FloorSource is a WaypointSource that can also filter by floor.
type FloorSource interface {
	ListByFloors(ctx context.Context, buildingID string, floors []int) ([]domain.Waypoint, error)
}

// ClosureSnapshotter yields the closures in effect for a building.
type ClosureSnapshotter interface {
	Snapshot(ctx context.Context, buildingID string) (routing.Closures, error)
}

// SnapshotFunc adapts a function to ClosureSnapshotter.
type SnapshotFunc func(ctx context.Context, buildingID string) (routing.Closures, error)

func (f SnapshotFunc) Snapshot(ctx context.Context, buildingID string) (routing.Closures, error) {
	return f(ctx, buildingID)
}

// ClosureSnapshots adapts a ClosureService to ClosureSnapshotter.
func ClosureSnapshots(s *ClosureService) ClosureSnapshotter {
	return SnapshotFunc(func(ctx context.Context, buildingID string) (routing.Closures, error) {
		return s.Snapshot(ctx, buildingID)
	})
}

// NavigationService synthesizes building graphs and plans routes over them.
// It holds no per-request state and is safe for concurrent use.
type NavigationService struct {
	waypoints    WaypointSource
	closures     ClosureSnapshotter
	cfg          graph.Config
	walkingSpeed float64
}

// NewNavigationService validates cfg up front. A nil closures snapshotter
// routes as if nothing were closed.
func NewNavigationService(waypoints WaypointSource, closures ClosureSnapshotter, cfg graph.Config, walkingSpeed float64) (*NavigationService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if walkingSpeed <= 0 {
		walkingSpeed = DefaultWalkingSpeed
	}
	return &NavigationService{
		waypoints:    waypoints,
		closures:     closures,
		cfg:          cfg,
		walkingSpeed: walkingSpeed,
	}, nil
}

func (s *NavigationService) Config() graph.Config { return s.cfg }

// BuildGraph loads a building and synthesizes its edge set.
func (s *NavigationService) BuildGraph(ctx context.Context, buildingID string) (*graph.EdgeSet, []domain.Waypoint, error) {
	wps, err := s.waypoints.ListByBuilding(ctx, buildingID)
	if err != nil {
		return nil, nil, fmt.Errorf("load waypoints: %w", err)
	}
	if len(wps) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrBuildingNotFound, buildingID)
	}

	es, err := graph.Synthesize(wps, s.cfg)
	if err != nil {
		return nil, nil, err
	}
	return es, wps, nil
}

// BuildFloorGraph synthesizes the graph of the given floors only. Shafts are
// joined between the requested floors. An empty floor list means the whole
// building.
func (s *NavigationService) BuildFloorGraph(ctx context.Context, buildingID string, floors []int) (*graph.EdgeSet, []domain.Waypoint, error) {
	if len(floors) == 0 {
		return s.BuildGraph(ctx, buildingID)
	}

	var (
		wps []domain.Waypoint
		err error
	)
	if fs, ok := s.waypoints.(FloorSource); ok {
		wps, err = fs.ListByFloors(ctx, buildingID, floors)
	} else {
		wps, err = s.waypoints.ListByBuilding(ctx, buildingID)
		wps = filterFloors(wps, floors)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load waypoints: %w", err)
	}
	if len(wps) == 0 {
		return nil, nil, fmt.Errorf("%w: %s floors %v", domain.ErrBuildingNotFound, buildingID, floors)
	}

	es, err := graph.Synthesize(wps, s.cfg)
	if err != nil {
		return nil, nil, err
	}
	return es, wps, nil
}

func filterFloors(wps []domain.Waypoint, floors []int) []domain.Waypoint {
	want := make(map[int]bool, len(floors))
	for _, f := range floors {
		want[f] = true
	}
	var out []domain.Waypoint
	for _, w := range wps {
		if want[w.Floor] {
			out = append(out, w)
		}
	}
	return out
}

// Route plans the shortest open path between two waypoints of a building.
func (s *NavigationService) Route(ctx context.Context, buildingID, startID, endID string) (*domain.RouteSummary, error) {
	logger := NewLogger(ctx)

	es, wps, err := s.BuildGraph(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	closed := routing.NoClosures
	if s.closures != nil {
		closed, err = s.closures.Snapshot(ctx, buildingID)
		if err != nil {
			return nil, fmt.Errorf("load closures: %w", err)
		}
	}

	index := routing.Index(wps)
	res, err := routing.ShortestPathContext(ctx, startID, endID, es, index, closed)
	if err != nil {
		logger.LogWarnf("navigation.route", "building=%s start=%s end=%s error=%v", buildingID, startID, endID, err)
		return nil, err
	}

	summary := &domain.RouteSummary{
		BuildingID:    buildingID,
		StartID:       startID,
		EndID:         endID,
		Path:          res.Path,
		Waypoints:     make([]domain.Waypoint, 0, len(res.Path)),
		Distance:      res.Distance,
		EstimatedTime: res.Distance / s.walkingSpeed,
	}
	for i, id := range res.Path {
		w := index[id]
		summary.Waypoints = append(summary.Waypoints, w)
		if i > 0 && index[res.Path[i-1]].Floor != w.Floor {
			summary.FloorChanges++
		}
	}

	logger.LogInfof("navigation.route", "building=%s start=%s end=%s hops=%d distance=%.1f floor_changes=%d",
		buildingID, startID, endID, len(res.Path)-1, res.Distance, summary.FloorChanges)
	return summary, nil
}
