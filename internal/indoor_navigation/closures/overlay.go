// Package closures turns closure records into the routing predicate. A
// Snapshot freezes the set of effective closures at one instant so a route
// computation never sees a closure appear or expire halfway through.
package closures

import (
	"time"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/routing"
)

// Snapshot is the set of closures effective at a fixed time.
type Snapshot struct {
	At      time.Time
	edges   [][2]string
	nodes   []string
	reasons map[[2]string]string
	closed  *routing.StaticClosures
}

// NewSnapshot keeps only closures that are active and unexpired at now.
// Records from other buildings are not filtered here; callers pass one
// building's closures.
func NewSnapshot(records []domain.Closure, now time.Time) *Snapshot {
	s := &Snapshot{At: now, reasons: make(map[[2]string]string)}
	for i := range records {
		c := &records[i]
		if !c.IsEffective(now) || c.FromID == "" {
			continue
		}
		if c.IsNode() {
			s.nodes = append(s.nodes, c.FromID)
			continue
		}
		pair := [2]string{c.FromID, c.ToID}
		s.edges = append(s.edges, pair)
		if _, ok := s.reasons[normalize(pair)]; !ok {
			s.reasons[normalize(pair)] = c.DisplayReason()
		}
	}
	s.closed = routing.NewStaticClosures(s.edges, s.nodes)
	return s
}

func (s *Snapshot) EdgeClosed(a, b string) bool { return s.closed.EdgeClosed(a, b) }
func (s *Snapshot) NodeClosed(id string) bool   { return s.closed.NodeClosed(id) }

// ClosedEdges lists closed pairs as recorded.
func (s *Snapshot) ClosedEdges() [][2]string { return append([][2]string(nil), s.edges...) }

// ClosedNodes lists closed waypoint ids.
func (s *Snapshot) ClosedNodes() []string { return append([]string(nil), s.nodes...) }

// Reason returns why the a-b connection is closed, if it is.
func (s *Snapshot) Reason(a, b string) (string, bool) {
	r, ok := s.reasons[normalize([2]string{a, b})]
	return r, ok
}

func (s *Snapshot) Empty() bool { return s.closed.Len() == 0 }

func normalize(p [2]string) [2]string {
	if p[1] < p[0] {
		return [2]string{p[1], p[0]}
	}
	return p
}

var _ routing.Closures = (*Snapshot)(nil)
