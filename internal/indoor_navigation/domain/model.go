package domain

import "strings"

// Category is the kind of place a waypoint marks. The set is open: values
// outside the constants below are kept as given and routed like rooms.
type Category string

const (
	CategoryRoom      Category = "room"
	CategoryCorridor  Category = "corridor"
	CategoryStaircase Category = "staircase"
	CategoryElevator  Category = "elevator"
)

// ParseCategory normalizes a free-form type label. Unknown labels survive
// lowercased.
func ParseCategory(s string) Category {
	return Category(strings.ToLower(strings.TrimSpace(s)))
}

// Waypoint is a navigable point inside a building.
type Waypoint struct {
	ID         string   `json:"id" yaml:"id"`
	BuildingID string   `json:"building_id,omitempty" yaml:"building_id,omitempty"`
	Name       string   `json:"name" yaml:"name"`
	X          float64  `json:"x" yaml:"x"`
	Y          float64  `json:"y" yaml:"y"`
	Floor      int      `json:"floor" yaml:"floor"`
	Category   Category `json:"category" yaml:"category"`
}

// IsStaircase reports whether the waypoint belongs to a stair shaft. Legacy
// building records sometimes typed stairs as rooms and only named them, so
// the name is consulted too.
func (w Waypoint) IsStaircase() bool {
	if strings.Contains(strings.ToLower(string(w.Category)), string(CategoryStaircase)) {
		return true
	}
	return strings.Contains(strings.ToLower(w.Name), "staircase")
}

// IsElevator reports whether the waypoint belongs to an elevator shaft. Only
// the Cyrillic "лифт" marks an elevator by name; English names such as "next
// to elevator" describe rooms.
func (w Waypoint) IsElevator() bool {
	if strings.Contains(strings.ToLower(string(w.Category)), string(CategoryElevator)) {
		return true
	}
	return strings.Contains(strings.ToLower(w.Name), "лифт")
}

// Edge is one direction of a weighted connection between two waypoints.
type Edge struct {
	FromID string  `json:"from_id" yaml:"from_id"`
	ToID   string  `json:"to_id" yaml:"to_id"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// PathResult is an ordered waypoint sequence from start to end, inclusive.
type PathResult struct {
	Path     []string `json:"path"`
	Distance float64  `json:"distance"`
}

// RouteSummary is a PathResult enriched for display.
type RouteSummary struct {
	BuildingID    string     `json:"building_id"`
	StartID       string     `json:"start_id"`
	EndID         string     `json:"end_id"`
	Path          []string   `json:"path"`
	Waypoints     []Waypoint `json:"waypoints"`
	Distance      float64    `json:"distance"`
	FloorChanges  int        `json:"floor_changes"`
	EstimatedTime float64    `json:"estimated_time_sec"`
}
