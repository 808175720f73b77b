package graph

import (
	"fmt"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
)

const (
	DefaultProximityThreshold = 150.0
	DefaultFloorChangePenalty = 2.0
	DefaultClusterCellSize    = 50.0
	DefaultStairFloorUnit     = 50.0
	DefaultElevatorFloorUnit  = 30.0
)

// Config tunes edge synthesis. Distances are in building-local units.
type Config struct {
	// ProximityThreshold is the largest planar distance that still yields an
	// automatic same-floor edge.
	ProximityThreshold float64 `json:"proximity_threshold" yaml:"proximity_threshold"`
	// FloorChangePenalty multiplies the synthetic cross-floor distance.
	FloorChangePenalty float64 `json:"floor_change_penalty" yaml:"floor_change_penalty"`
	// ClusterCellSize is the grid used to decide which stairs or elevators
	// on different floors share a shaft.
	ClusterCellSize float64 `json:"vertical_clustering_cell_size" yaml:"vertical_clustering_cell_size"`
	// StairFloorUnit and ElevatorFloorUnit are the distance of one floor of
	// travel for each kind of shaft.
	StairFloorUnit    float64 `json:"stair_floor_unit" yaml:"stair_floor_unit"`
	ElevatorFloorUnit float64 `json:"elevator_floor_unit" yaml:"elevator_floor_unit"`
}

func DefaultConfig() Config {
	return Config{
		ProximityThreshold: DefaultProximityThreshold,
		FloorChangePenalty: DefaultFloorChangePenalty,
		ClusterCellSize:    DefaultClusterCellSize,
		StairFloorUnit:     DefaultStairFloorUnit,
		ElevatorFloorUnit:  DefaultElevatorFloorUnit,
	}
}

// Validate rejects negative (or NaN) knobs instead of clamping them.
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"proximity_threshold", c.ProximityThreshold},
		{"floor_change_penalty", c.FloorChangePenalty},
		{"stair_floor_unit", c.StairFloorUnit},
		{"elevator_floor_unit", c.ElevatorFloorUnit},
	}
	for _, chk := range checks {
		if !(chk.value >= 0) {
			return fmt.Errorf("%w: %s must be non-negative, got %v", domain.ErrInvalidConfiguration, chk.name, chk.value)
		}
	}
	if !(c.ClusterCellSize > 0) {
		return fmt.Errorf("%w: vertical_clustering_cell_size must be positive, got %v",
			domain.ErrInvalidConfiguration, c.ClusterCellSize)
	}
	return nil
}
