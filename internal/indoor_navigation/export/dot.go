package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/graph"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/routing"
)

// Reasoner explains why a connection is closed.
type Reasoner interface {
	Reason(a, b string) (string, bool)
}

// ToDOT renders a synthesized building graph as an undirected Graphviz
// document with one cluster per floor. Edges and waypoints rejected by
// closed are drawn dashed red; closed may be nil. When closed also implements
// Reasoner, closed edges are labelled with their reason.
func ToDOT(es *graph.EdgeSet, waypoints []domain.Waypoint, closed routing.Closures, title string) string {
	if closed == nil {
		closed = routing.NoClosures
	}

	var b strings.Builder
	b.WriteString("graph G {\n  node [shape=box, style=rounded];\n")
	if title != "" {
		b.WriteString(fmt.Sprintf(`  labelloc="t"; label=%q; fontname="Helvetica";`, title))
		b.WriteString("\n")
	}

	byFloor := make(map[int][]domain.Waypoint)
	for _, w := range waypoints {
		byFloor[w.Floor] = append(byFloor[w.Floor], w)
	}
	floors := make([]int, 0, len(byFloor))
	for f := range byFloor {
		floors = append(floors, f)
	}
	sort.Ints(floors)

	for _, f := range floors {
		nodes := byFloor[f]
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

		b.WriteString(fmt.Sprintf("  subgraph cluster_floor_%s {\n    label=\"floor %d\";\n", clusterIndex(f), f))
		for _, n := range nodes {
			b.WriteString(fmt.Sprintf("    %q [label=%q, %s];\n", n.ID, nodeLabel(n), nodeStyle(n, closed)))
		}
		b.WriteString("  }\n")
	}

	reasons, _ := closed.(Reasoner)
	for _, e := range es.Edges() {
		label := fmt.Sprintf("%.1f", e.Weight)
		closedEdge := closed.EdgeClosed(e.FromID, e.ToID)
		if closedEdge && reasons != nil {
			if r, ok := reasons.Reason(e.FromID, e.ToID); ok && r != "" {
				label = fmt.Sprintf("%s (%s)", label, r)
			}
		}
		attrs := fmt.Sprintf("label=%q", label)
		if closedEdge {
			attrs += `, style=dashed, color="#c0392b"`
		}
		b.WriteString(fmt.Sprintf("  %q -- %q [%s];\n", e.FromID, e.ToID, attrs))
	}

	b.WriteString("}\n")
	return b.String()
}

func nodeLabel(w domain.Waypoint) string {
	if w.Name == "" || w.Name == w.ID {
		return w.ID
	}
	return fmt.Sprintf("%s\n%s", w.Name, w.ID)
}

func nodeStyle(w domain.Waypoint, closed routing.Closures) string {
	style := `style="rounded,filled", fillcolor="#eef6ff"`
	switch {
	case w.IsStaircase():
		style = `shape=trapezium, style="filled", fillcolor="#fff3cd"`
	case w.IsElevator():
		style = `shape=box3d, style="filled", fillcolor="#d4edda"`
	}
	if closed.NodeClosed(w.ID) {
		style += `, color="#c0392b", penwidth=2`
	}
	return style
}

// clusterIndex keeps Graphviz ids valid for basement floors.
func clusterIndex(floor int) string {
	if floor < 0 {
		return fmt.Sprintf("m%d", -floor)
	}
	return fmt.Sprintf("%d", floor)
}
