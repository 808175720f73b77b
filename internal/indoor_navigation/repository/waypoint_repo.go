package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
	"github.com/lib/pq"
)

// WaypointRepository reads building waypoints from PostgreSQL.
type WaypointRepository struct {
	db *sql.DB
}

func NewWaypointRepository(db *sql.DB) *WaypointRepository {
	return &WaypointRepository{db: db}
}

// ListByBuilding returns all waypoints of a building ordered by id.
func (r *WaypointRepository) ListByBuilding(ctx context.Context, buildingID string) ([]domain.Waypoint, error) {
	const q = `
SELECT id, building_id, name, x, y, floor, category
FROM waypoints
WHERE building_id = $1
ORDER BY id;
`
	rows, err := r.db.QueryContext(ctx, q, buildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query waypoints: %w", err)
	}
	return scanWaypoints(rows)
}

// ListByFloors returns the waypoints of a building on the given floors.
func (r *WaypointRepository) ListByFloors(ctx context.Context, buildingID string, floors []int) ([]domain.Waypoint, error) {
	floors64 := make([]int64, len(floors))
	for i, f := range floors {
		floors64[i] = int64(f)
	}

	const q = `
SELECT id, building_id, name, x, y, floor, category
FROM waypoints
WHERE building_id = $1 AND floor = ANY($2)
ORDER BY id;
`
	rows, err := r.db.QueryContext(ctx, q, buildingID, pq.Array(floors64))
	if err != nil {
		return nil, fmt.Errorf("failed to query waypoints by floor: %w", err)
	}
	return scanWaypoints(rows)
}

// Upsert inserts or replaces a waypoint keyed by (building_id, id).
func (r *WaypointRepository) Upsert(ctx context.Context, w domain.Waypoint) error {
	if w.ID == "" || w.BuildingID == "" {
		return fmt.Errorf("%w: waypoint and building id required", domain.ErrInvalidWaypoints)
	}

	const q = `
INSERT INTO waypoints (id, building_id, name, x, y, floor, category)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (building_id, id) DO UPDATE SET
	name = EXCLUDED.name,
	x = EXCLUDED.x,
	y = EXCLUDED.y,
	floor = EXCLUDED.floor,
	category = EXCLUDED.category,
	updated_at = NOW();
`
	_, err := r.db.ExecContext(ctx, q, w.ID, w.BuildingID, w.Name, w.X, w.Y, w.Floor, string(w.Category))
	if err != nil {
		return fmt.Errorf("failed to upsert waypoint: %w", err)
	}
	return nil
}

func scanWaypoints(rows *sql.Rows) ([]domain.Waypoint, error) {
	defer rows.Close()

	var out []domain.Waypoint
	for rows.Next() {
		var (
			w        domain.Waypoint
			category string
		)
		if err := rows.Scan(&w.ID, &w.BuildingID, &w.Name, &w.X, &w.Y, &w.Floor, &category); err != nil {
			return nil, fmt.Errorf("failed to scan waypoint: %w", err)
		}
		w.Category = domain.ParseCategory(category)
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate waypoints: %w", err)
	}
	return out, nil
}
