package ingest

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
)

//go:embed data/demo_building.yaml
var demoBuildingYAML []byte

// DemoBuildingID is the id of the bundled demo building.
const DemoBuildingID = "main"

// DemoBuilding returns the bundled two-floor demo building.
func DemoBuilding() ([]domain.Waypoint, error) {
	b, err := ParseYAMLBytes(demoBuildingYAML)
	if err != nil {
		return nil, fmt.Errorf("parse demo building: %w", err)
	}
	return b.ToWaypoints()
}

// StaticSource serves waypoints held in memory, keyed by building.
type StaticSource struct {
	mu        sync.RWMutex
	buildings map[string][]domain.Waypoint
}

func NewStaticSource() *StaticSource {
	return &StaticSource{buildings: make(map[string][]domain.Waypoint)}
}

// Put replaces a building's waypoints with a copy of wps.
func (s *StaticSource) Put(buildingID string, wps []domain.Waypoint) {
	cp := append([]domain.Waypoint(nil), wps...)
	s.mu.Lock()
	s.buildings[buildingID] = cp
	s.mu.Unlock()
}

func (s *StaticSource) ListByBuilding(_ context.Context, buildingID string) ([]domain.Waypoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Waypoint(nil), s.buildings[buildingID]...), nil
}

// ListByFloors returns the building's waypoints on the given floors.
func (s *StaticSource) ListByFloors(_ context.Context, buildingID string, floors []int) ([]domain.Waypoint, error) {
	want := make(map[int]bool, len(floors))
	for _, f := range floors {
		want[f] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Waypoint
	for _, w := range s.buildings[buildingID] {
		if want[w.Floor] {
			out = append(out, w)
		}
	}
	return out, nil
}
