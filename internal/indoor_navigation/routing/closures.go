package routing

// Closures answers, for one route computation, which parts of the graph are
// currently excluded. Implementations must be safe to call many times
// during a single search and should not change their answers mid-search.
type Closures interface {
	EdgeClosed(a, b string) bool
	NodeClosed(id string) bool
}

type noClosures struct{}

func (noClosures) EdgeClosed(string, string) bool { return false }
func (noClosures) NodeClosed(string) bool         { return false }

// NoClosures excludes nothing.
var NoClosures Closures = noClosures{}

type pair struct{ a, b string }

func pairOf(a, b string) pair {
	if b < a {
		a, b = b, a
	}
	return pair{a, b}
}

// StaticClosures is a fixed set of closed edges and nodes. Edge entries are
// matched regardless of direction.
type StaticClosures struct {
	edges map[pair]struct{}
	nodes map[string]struct{}
}

// NewStaticClosures copies its inputs; later changes to the slices have no
// effect.
func NewStaticClosures(edges [][2]string, nodes []string) *StaticClosures {
	s := &StaticClosures{
		edges: make(map[pair]struct{}, len(edges)),
		nodes: make(map[string]struct{}, len(nodes)),
	}
	for _, e := range edges {
		s.edges[pairOf(e[0], e[1])] = struct{}{}
	}
	for _, n := range nodes {
		s.nodes[n] = struct{}{}
	}
	return s
}

func (s *StaticClosures) EdgeClosed(a, b string) bool {
	_, ok := s.edges[pairOf(a, b)]
	return ok
}

func (s *StaticClosures) NodeClosed(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// Len is the total number of closed edges and nodes.
func (s *StaticClosures) Len() int { return len(s.edges) + len(s.nodes) }
