package export

import (
	"encoding/json"
	"os"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/graph"
	"gopkg.in/yaml.v3"
)

// GraphDocument is the serialized form of a synthesized building graph.
type GraphDocument struct {
	BuildingID string            `json:"building_id" yaml:"building_id"`
	Config     graph.Config      `json:"config" yaml:"config"`
	Waypoints  []domain.Waypoint `json:"waypoints" yaml:"waypoints"`
	Edges      []domain.Edge     `json:"edges" yaml:"edges"`
}

// NewGraphDocument lists each logical edge once, ordered by endpoint ids.
func NewGraphDocument(buildingID string, cfg graph.Config, waypoints []domain.Waypoint, es *graph.EdgeSet) GraphDocument {
	return GraphDocument{
		BuildingID: buildingID,
		Config:     cfg,
		Waypoints:  waypoints,
		Edges:      es.Edges(),
	}
}

func WriteJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func WriteYAML(path string, v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
