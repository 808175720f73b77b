package graph

import (
	"fmt"
	"sort"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
)

// pairKey identifies an undirected edge; a <= b always.
type pairKey struct {
	a, b string
}

func keyOf(x, y string) pairKey {
	if y < x {
		x, y = y, x
	}
	return pairKey{a: x, b: y}
}

// Neighbor is one outgoing traversal from a waypoint.
type Neighbor struct {
	ID     string
	Weight float64
}

// EdgeSet is an undirected weighted edge set keyed by unordered pair. At most
// one logical edge exists per pair; the first Add wins.
type EdgeSet struct {
	weights map[pairKey]float64
	adj     map[string][]Neighbor
}

func NewEdgeSet() *EdgeSet {
	return &EdgeSet{
		weights: make(map[pairKey]float64),
		adj:     make(map[string][]Neighbor),
	}
}

// FromEdges builds an EdgeSet from directed entries. Both directions of the
// same pair collapse into one logical edge; the first entry seen wins.
func FromEdges(edges []domain.Edge) (*EdgeSet, error) {
	es := NewEdgeSet()
	for i, e := range edges {
		if e.FromID == "" || e.ToID == "" {
			return nil, fmt.Errorf("%w: edge #%d has an empty endpoint", domain.ErrInvalidEdge, i)
		}
		if !(e.Weight >= 0) {
			return nil, fmt.Errorf("%w: edge %s-%s has weight %v", domain.ErrInvalidEdge, e.FromID, e.ToID, e.Weight)
		}
		es.Add(e.FromID, e.ToID, e.Weight)
	}
	return es, nil
}

// Add records an edge between from and to. It reports false, leaving the set
// unchanged, when the pair is already present.
func (s *EdgeSet) Add(from, to string, weight float64) bool {
	k := keyOf(from, to)
	if _, ok := s.weights[k]; ok {
		return false
	}
	s.weights[k] = weight
	s.adj[from] = append(s.adj[from], Neighbor{ID: to, Weight: weight})
	if from != to {
		s.adj[to] = append(s.adj[to], Neighbor{ID: from, Weight: weight})
	}
	return true
}

func (s *EdgeSet) Has(a, b string) bool {
	_, ok := s.weights[keyOf(a, b)]
	return ok
}

// Weight returns the weight of the a-b edge in either direction.
func (s *EdgeSet) Weight(a, b string) (float64, bool) {
	w, ok := s.weights[keyOf(a, b)]
	return w, ok
}

// Len is the number of logical (undirected) edges.
func (s *EdgeSet) Len() int { return len(s.weights) }

// Neighbors returns the traversals leaving id, sorted by neighbor id.
func (s *EdgeSet) Neighbors(id string) []Neighbor {
	src := s.adj[id]
	out := make([]Neighbor, len(src))
	copy(out, src)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges lists every logical edge once, with FromID < ToID, sorted.
func (s *EdgeSet) Edges() []domain.Edge {
	out := make([]domain.Edge, 0, len(s.weights))
	for k, w := range s.weights {
		out = append(out, domain.Edge{FromID: k.a, ToID: k.b, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FromID != out[j].FromID {
			return out[i].FromID < out[j].FromID
		}
		return out[i].ToID < out[j].ToID
	})
	return out
}

// Directed materializes each logical edge in both directions.
func (s *EdgeSet) Directed() []domain.Edge {
	logical := s.Edges()
	out := make([]domain.Edge, 0, 2*len(logical))
	for _, e := range logical {
		out = append(out, e)
		if e.FromID != e.ToID {
			out = append(out, domain.Edge{FromID: e.ToID, ToID: e.FromID, Weight: e.Weight})
		}
	}
	return out
}
