package graph

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
)

// cellKey is the quantized horizontal position of a shaft waypoint.
type cellKey struct {
	x, y float64
}

// Synthesize infers a navigable edge set from positioned waypoints.
//
// Same-floor waypoints within cfg.ProximityThreshold are joined by their
// planar distance. Stairs and elevators that fall in the same clustering
// cell are joined across floors by floors*unit*penalty. Shaft members on the
// same floor are only ever joined by the proximity rule.
//
// The result does not depend on the order of waypoints.
func Synthesize(waypoints []domain.Waypoint, cfg Config) (*EdgeSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sorted, err := sortByID(waypoints)
	if err != nil {
		return nil, err
	}

	es := NewEdgeSet()
	planar := connectFloors(es, sorted, cfg.ProximityThreshold)
	stairs := connectShafts(es, sorted, domain.Waypoint.IsStaircase, cfg.StairFloorUnit, cfg)
	elevators := connectShafts(es, sorted, domain.Waypoint.IsElevator, cfg.ElevatorFloorUnit, cfg)

	log.Printf("[info] operation=graph.synthesize waypoints=%d planar=%d stairs=%d elevators=%d edges=%d",
		len(sorted), planar, stairs, elevators, es.Len())
	return es, nil
}

// Distance is the planar Euclidean distance between two waypoints.
func Distance(a, b domain.Waypoint) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func sortByID(waypoints []domain.Waypoint) ([]domain.Waypoint, error) {
	seen := make(map[string]struct{}, len(waypoints))
	out := make([]domain.Waypoint, 0, len(waypoints))
	for _, w := range waypoints {
		if w.ID == "" {
			return nil, fmt.Errorf("%w: waypoint %q has no id", domain.ErrInvalidWaypoints, w.Name)
		}
		if _, dup := seen[w.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate waypoint id %q", domain.ErrInvalidWaypoints, w.ID)
		}
		seen[w.ID] = struct{}{}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func connectFloors(es *EdgeSet, sorted []domain.Waypoint, threshold float64) int {
	byFloor := make(map[int][]domain.Waypoint)
	for _, w := range sorted {
		byFloor[w.Floor] = append(byFloor[w.Floor], w)
	}

	added := 0
	for _, floor := range sortedFloors(byFloor) {
		nodes := byFloor[floor]
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				d := Distance(nodes[i], nodes[j])
				if d <= threshold && es.Add(nodes[i].ID, nodes[j].ID, d) {
					added++
				}
			}
		}
	}
	return added
}

func connectShafts(es *EdgeSet, sorted []domain.Waypoint, member func(domain.Waypoint) bool, unit float64, cfg Config) int {
	groups := make(map[cellKey][]domain.Waypoint)
	var order []cellKey
	for _, w := range sorted {
		if !member(w) {
			continue
		}
		k := cellOf(w, cfg.ClusterCellSize)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], w)
	}

	added := 0
	for _, k := range order {
		shaft := groups[k]
		for i := 0; i < len(shaft); i++ {
			for j := i + 1; j < len(shaft); j++ {
				// Same-floor pairs belong to the proximity rule.
				if shaft[i].Floor == shaft[j].Floor {
					continue
				}
				floors := math.Abs(float64(shaft[i].Floor - shaft[j].Floor))
				weight := floors * unit * cfg.FloorChangePenalty
				if es.Add(shaft[i].ID, shaft[j].ID, weight) {
					added++
				}
			}
		}
	}
	return added
}

func cellOf(w domain.Waypoint, size float64) cellKey {
	return cellKey{
		x: math.Round(w.X/size) * size,
		y: math.Round(w.Y/size) * size,
	}
}

func sortedFloors(byFloor map[int][]domain.Waypoint) []int {
	floors := make([]int, 0, len(byFloor))
	for f := range byFloor {
		floors = append(floors, f)
	}
	sort.Ints(floors)
	return floors
}
