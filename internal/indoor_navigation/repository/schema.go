package repository

import (
	"context"
	"database/sql"
	"fmt"
)

const waypointSchema = `
CREATE TABLE IF NOT EXISTS waypoints (
	building_id TEXT NOT NULL,
	id          TEXT NOT NULL,
	name        TEXT NOT NULL DEFAULT '',
	x           DOUBLE PRECISION NOT NULL,
	y           DOUBLE PRECISION NOT NULL,
	floor       INTEGER NOT NULL,
	category    TEXT NOT NULL DEFAULT 'room',
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (building_id, id)
);
CREATE INDEX IF NOT EXISTS idx_waypoints_building_floor ON waypoints(building_id, floor);
`

// EnsureSchema creates the waypoint table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, waypointSchema); err != nil {
		return fmt.Errorf("failed to create waypoint schema: %w", err)
	}
	return nil
}
