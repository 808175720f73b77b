// Package ingest reads building waypoint files (YAML or JSON) such as the
// exports of the campus building editor.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
	"gopkg.in/yaml.v3"
)

// FlexID accepts both numeric and string identifiers.
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = FlexID(n.String())
	return nil
}

func (id *FlexID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a scalar", value.Line)
	}
	*id = FlexID(value.Value)
	return nil
}

type YBuilding struct {
	Building  YBuildingInfo `yaml:"building" json:"building"`
	Waypoints []YWaypoint   `yaml:"waypoints" json:"waypoints"`
}

type YBuildingInfo struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

type YWaypoint struct {
	ID    FlexID  `yaml:"id" json:"id"`
	Name  string  `yaml:"name" json:"name"`
	Floor *int    `yaml:"floor,omitempty" json:"floor,omitempty"`
	Type  string  `yaml:"type,omitempty" json:"type,omitempty"`
	X     float64 `yaml:"x" json:"x"`
	Y     float64 `yaml:"y" json:"y"`
}

// ParseFile picks the decoder from the file extension.
func ParseFile(path string) (*YBuilding, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSONBytes(b)
	default:
		return ParseYAMLBytes(b)
	}
}

func ParseYAMLBytes(b []byte) (*YBuilding, error) {
	var s YBuilding
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func ParseJSONBytes(b []byte) (*YBuilding, error) {
	var s YBuilding
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ToWaypoints converts the file form into domain waypoints. A missing floor
// means floor 1; a missing type means room.
func (s *YBuilding) ToWaypoints() ([]domain.Waypoint, error) {
	out := make([]domain.Waypoint, 0, len(s.Waypoints))
	for i, y := range s.Waypoints {
		if y.ID == "" {
			return nil, fmt.Errorf("%w: waypoint #%d has no id", domain.ErrInvalidWaypoints, i)
		}
		floor := 1
		if y.Floor != nil {
			floor = *y.Floor
		}
		category := domain.ParseCategory(y.Type)
		if category == "" {
			category = domain.CategoryRoom
		}
		out = append(out, domain.Waypoint{
			ID:         string(y.ID),
			BuildingID: s.Building.ID,
			Name:       y.Name,
			X:          y.X,
			Y:          y.Y,
			Floor:      floor,
			Category:   category,
		})
	}
	return out, nil
}
