package routing

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/graph"
)

// Graph is the adjacency view the planner walks.
type Graph interface {
	Neighbors(id string) []graph.Neighbor
}

// ShortestPath finds the minimum-weight path from start to end.
//
// Both ids must be keys of index, otherwise the error wraps
// domain.ErrUnknownWaypoint. An unreachable end yields domain.ErrNoPath. The
// closure predicate is consulted for every traversal; g itself is never
// modified. When start == end the result is the single-node path with
// weight 0 and closures are not consulted.
func ShortestPath(start, end string, g Graph, index map[string]domain.Waypoint, closures Closures) (domain.PathResult, error) {
	return ShortestPathContext(context.Background(), start, end, g, index, closures)
}

// ShortestPathContext is ShortestPath with a caller deadline checked between
// vertex settlements.
func ShortestPathContext(ctx context.Context, start, end string, g Graph, index map[string]domain.Waypoint, closures Closures) (domain.PathResult, error) {
	if _, ok := index[start]; !ok {
		return domain.PathResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownWaypoint, start)
	}
	if _, ok := index[end]; !ok {
		return domain.PathResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownWaypoint, end)
	}
	if start == end {
		return domain.PathResult{Path: []string{start}, Distance: 0}, nil
	}
	if closures == nil {
		closures = NoClosures
	}
	if closures.NodeClosed(start) || closures.NodeClosed(end) {
		return domain.PathResult{}, fmt.Errorf("%w: %s -> %s", domain.ErrNoPath, start, end)
	}

	dist := map[string]float64{start: 0}
	cameFrom := make(map[string]string)
	visited := make(map[string]bool)

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{node: start, dist: 0})

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return domain.PathResult{}, err
		}

		item := heap.Pop(pq).(*pqItem)
		current := item.node
		if visited[current] {
			continue
		}
		visited[current] = true

		if current == end {
			return domain.PathResult{Path: reconstructPath(cameFrom, current), Distance: item.dist}, nil
		}

		for _, n := range g.Neighbors(current) {
			if visited[n.ID] {
				continue
			}
			if _, known := index[n.ID]; !known {
				continue
			}
			if closures.NodeClosed(n.ID) || closures.EdgeClosed(current, n.ID) {
				continue
			}
			tentative := item.dist + n.Weight
			if old, ok := dist[n.ID]; !ok || tentative < old {
				dist[n.ID] = tentative
				cameFrom[n.ID] = current
				heap.Push(pq, &pqItem{node: n.ID, dist: tentative})
			}
		}
	}

	return domain.PathResult{}, fmt.Errorf("%w: %s -> %s", domain.ErrNoPath, start, end)
}

// ShortestPathFromEdges plans over a raw edge list and explicit closure
// sets, for hosts that do not keep an EdgeSet around.
func ShortestPathFromEdges(start, end string, edges []domain.Edge, waypoints []domain.Waypoint, closedEdges [][2]string, closedNodes []string) (domain.PathResult, error) {
	es, err := graph.FromEdges(edges)
	if err != nil {
		return domain.PathResult{}, err
	}
	return ShortestPath(start, end, es, Index(waypoints), NewStaticClosures(closedEdges, closedNodes))
}

// Index keys waypoints by id. Later duplicates overwrite earlier ones.
func Index(waypoints []domain.Waypoint) map[string]domain.Waypoint {
	idx := make(map[string]domain.Waypoint, len(waypoints))
	for _, w := range waypoints {
		idx[w.ID] = w
	}
	return idx
}

func reconstructPath(cameFrom map[string]string, current string) []string {
	path := []string{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
