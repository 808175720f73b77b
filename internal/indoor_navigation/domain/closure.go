package domain

import "time"

type ClosureType string

const (
	ClosureMaintenance ClosureType = "maintenance"
	ClosureRepair      ClosureType = "repair"
	ClosureCleaning    ClosureType = "cleaning"
	ClosureEmergency   ClosureType = "emergency"
	ClosureOther       ClosureType = "other"
)

// ParseClosureType maps an empty string to maintenance and rejects anything
// not in the closed set.
func ParseClosureType(s string) (ClosureType, error) {
	switch t := ClosureType(s); t {
	case "":
		return ClosureMaintenance, nil
	case ClosureMaintenance, ClosureRepair, ClosureCleaning, ClosureEmergency, ClosureOther:
		return t, nil
	default:
		return "", ErrInvalidClosureType
	}
}

// Closure temporarily excludes an edge (FromID and ToID set) or a whole
// waypoint (ToID empty) from routing.
type Closure struct {
	ID             string      `json:"closure_id"`
	BuildingID     string      `json:"building_id"`
	FromID         string      `json:"from_id"`
	ToID           string      `json:"to_id,omitempty"`
	Type           ClosureType `json:"closure_type"`
	Reason         string      `json:"reason"`
	Description    string      `json:"description,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	CreatedBy      string      `json:"created_by,omitempty"`
	ScheduledUntil *time.Time  `json:"scheduled_until,omitempty"`
	Active         bool        `json:"active"`
}

func (c *Closure) IsNode() bool { return c.ToID == "" }

// IsExpired reports whether the scheduled reopening time has passed.
func (c *Closure) IsExpired(now time.Time) bool {
	return c.ScheduledUntil != nil && now.After(*c.ScheduledUntil)
}

// IsEffective reports whether the closure excludes anything at now. Expiry
// wins over the active flag.
func (c *Closure) IsEffective(now time.Time) bool {
	return c.Active && !c.IsExpired(now)
}

// DisplayReason falls back to the closure type when no reason was given.
func (c *Closure) DisplayReason() string {
	if c.Reason != "" {
		return c.Reason
	}
	return string(c.Type)
}

// CloseEdgeRequest carries the data needed to close a connection.
type CloseEdgeRequest struct {
	BuildingID     string      `json:"-"`
	FromID         string      `json:"from_id"`
	ToID           string      `json:"to_id"`
	Type           ClosureType `json:"type"`
	Reason         string      `json:"reason"`
	Description    string      `json:"description"`
	CreatedBy      string      `json:"created_by"`
	ScheduledUntil *time.Time  `json:"scheduled_until"`
}

// CloseNodeRequest carries the data needed to close a waypoint.
type CloseNodeRequest struct {
	BuildingID     string      `json:"-"`
	NodeID         string      `json:"node_id"`
	Type           ClosureType `json:"type"`
	Reason         string      `json:"reason"`
	Description    string      `json:"description"`
	CreatedBy      string      `json:"created_by"`
	ScheduledUntil *time.Time  `json:"scheduled_until"`
}

// ClosedEdge is one closed connection with the reason it is closed.
type ClosedEdge struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
	Reason string `json:"reason"`
}

// ClosureState is what routing sees for a building at one instant.
type ClosureState struct {
	BuildingID  string       `json:"building_id"`
	At          time.Time    `json:"at"`
	ClosedEdges []ClosedEdge `json:"closed_edges"`
	ClosedNodes []string     `json:"closed_nodes"`
}
