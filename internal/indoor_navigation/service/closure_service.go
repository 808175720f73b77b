package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/closures"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
)

// ClosureStore persists closure records.
type ClosureStore interface {
	Create(ctx context.Context, c *domain.Closure) error
	Get(ctx context.Context, id string) (*domain.Closure, error)
	Update(ctx context.Context, c *domain.Closure) error
	ListByBuilding(ctx context.Context, buildingID string) ([]domain.Closure, error)
	ListBuildings(ctx context.Context) ([]string, error)
}

// ClosureService manages the lifecycle of route closures
type ClosureService struct {
	store ClosureStore
	now   func() time.Time
}

func NewClosureService(store ClosureStore) *ClosureService {
	return &ClosureService{store: store, now: time.Now}
}

// CloseEdge closes the connection between two waypoints.
func (s *ClosureService) CloseEdge(ctx context.Context, req *domain.CloseEdgeRequest) (*domain.Closure, error) {
	if req.FromID == "" || req.ToID == "" {
		return nil, fmt.Errorf("%w: from_id and to_id are required", domain.ErrInvalidClosure)
	}
	if req.FromID == req.ToID {
		return nil, fmt.Errorf("%w: an edge needs two distinct waypoints", domain.ErrInvalidClosure)
	}

	c := &domain.Closure{
		BuildingID:     req.BuildingID,
		FromID:         req.FromID,
		ToID:           req.ToID,
		Type:           req.Type,
		Reason:         req.Reason,
		Description:    req.Description,
		CreatedBy:      req.CreatedBy,
		ScheduledUntil: req.ScheduledUntil,
	}
	if err := s.create(ctx, c); err != nil {
		return nil, err
	}

	NewLogger(ctx).LogInfof("closures.close_edge", "building=%s closure=%s edge=%s-%s reason=%q",
		c.BuildingID, c.ID, c.FromID, c.ToID, c.Reason)
	return c, nil
}

// CloseNode closes a whole waypoint.
func (s *ClosureService) CloseNode(ctx context.Context, req *domain.CloseNodeRequest) (*domain.Closure, error) {
	if req.NodeID == "" {
		return nil, fmt.Errorf("%w: node_id is required", domain.ErrInvalidClosure)
	}

	c := &domain.Closure{
		BuildingID:     req.BuildingID,
		FromID:         req.NodeID,
		Type:           req.Type,
		Reason:         req.Reason,
		Description:    req.Description,
		CreatedBy:      req.CreatedBy,
		ScheduledUntil: req.ScheduledUntil,
	}
	if err := s.create(ctx, c); err != nil {
		return nil, err
	}

	NewLogger(ctx).LogInfof("closures.close_node", "building=%s closure=%s node=%s reason=%q",
		c.BuildingID, c.ID, c.FromID, c.Reason)
	return c, nil
}

func (s *ClosureService) create(ctx context.Context, c *domain.Closure) error {
	if c.BuildingID == "" {
		return fmt.Errorf("%w: building_id is required", domain.ErrInvalidClosure)
	}
	t, err := domain.ParseClosureType(string(c.Type))
	if err != nil {
		return err
	}
	now := s.now()
	if c.ScheduledUntil != nil && !c.ScheduledUntil.After(now) {
		return fmt.Errorf("%w: scheduled_until must be in the future", domain.ErrInvalidClosure)
	}

	c.Type = t
	c.CreatedAt = now
	c.Active = true
	return s.store.Create(ctx, c)
}

// Reopen deactivates a closure. Reopening an already inactive closure is a
// no-op.
func (s *ClosureService) Reopen(ctx context.Context, id string) (*domain.Closure, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return c, nil
	}

	c.Active = false
	if err := s.store.Update(ctx, c); err != nil {
		return nil, err
	}

	NewLogger(ctx).LogInfof("closures.reopen", "building=%s closure=%s", c.BuildingID, c.ID)
	return c, nil
}

func (s *ClosureService) Get(ctx context.Context, id string) (*domain.Closure, error) {
	return s.store.Get(ctx, id)
}

// ListActive returns the closures of a building that apply now, oldest
// first.
func (s *ClosureService) ListActive(ctx context.Context, buildingID string) ([]domain.Closure, error) {
	all, err := s.store.ListByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	active := make([]domain.Closure, 0, len(all))
	for _, c := range all {
		if c.IsEffective(now) {
			active = append(active, c)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.Before(active[j].CreatedAt)
		}
		return active[i].ID < active[j].ID
	})
	return active, nil
}

// Snapshot freezes the building's effective closures for one route query.
func (s *ClosureService) Snapshot(ctx context.Context, buildingID string) (*closures.Snapshot, error) {
	all, err := s.store.ListByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	return closures.NewSnapshot(all, s.now()), nil
}

// State reports the closed edges and nodes routing would see now, read from
// a single snapshot.
func (s *ClosureService) State(ctx context.Context, buildingID string) (*domain.ClosureState, error) {
	snap, err := s.Snapshot(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	state := &domain.ClosureState{
		BuildingID:  buildingID,
		At:          snap.At,
		ClosedEdges: []domain.ClosedEdge{},
		ClosedNodes: snap.ClosedNodes(),
	}
	for _, e := range snap.ClosedEdges() {
		reason, _ := snap.Reason(e[0], e[1])
		state.ClosedEdges = append(state.ClosedEdges, domain.ClosedEdge{FromID: e[0], ToID: e[1], Reason: reason})
	}
	if state.ClosedNodes == nil {
		state.ClosedNodes = []string{}
	}
	return state, nil
}

// SweepExpired marks every active closure whose scheduled end has passed as
// inactive and returns how many were changed.
func (s *ClosureService) SweepExpired(ctx context.Context) (int, error) {
	buildings, err := s.store.ListBuildings(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	swept := 0
	for _, b := range buildings {
		all, err := s.store.ListByBuilding(ctx, b)
		if err != nil {
			return swept, fmt.Errorf("sweep building %s: %w", b, err)
		}
		for i := range all {
			c := &all[i]
			if !c.Active || !c.IsExpired(now) {
				continue
			}
			c.Active = false
			if err := s.store.Update(ctx, c); err != nil {
				return swept, fmt.Errorf("sweep closure %s: %w", c.ID, err)
			}
			swept++
		}
	}
	return swept, nil
}
