package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	closureKeyPrefix       = "nav:closure:"  // Closure data: nav:closure:{closure_id}
	buildingClosuresPrefix = "nav:building:" // Set of closure IDs: nav:building:{building_id}:closures
	buildingsKey           = "nav:buildings" // Set of building IDs that ever had a closure
	closureEventPrefix     = "nav:closures:" // Pub/Sub channel: nav:closures:{building_id}
	closureRetention       = 30 * 24 * time.Hour
)

// ClosureRepository stores closures in Redis. Active closures without a
// scheduled end never expire; everything else is kept for closureRetention
// past the moment it stops applying.
type ClosureRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewClosureRepository(client *redis.Client) *ClosureRepository {
	return &ClosureRepository{client: client, now: time.Now}
}

// Create stores a new closure, assigning an ID and creation time if missing.
func (r *ClosureRepository) Create(ctx context.Context, c *domain.Closure) error {
	if c.BuildingID == "" {
		return fmt.Errorf("%w: building id required", domain.ErrInvalidClosure)
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now()
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal closure: %w", err)
	}

	setKey := r.buildingSetKey(c.BuildingID)
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.closureKey(c.ID), data, r.ttlFor(c))
	pipe.SAdd(ctx, setKey, c.ID)
	pipe.SAdd(ctx, buildingsKey, c.BuildingID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create closure: %w", err)
	}

	r.publish(ctx, c)
	return nil
}

// Get returns a closure by ID.
func (r *ClosureRepository) Get(ctx context.Context, id string) (*domain.Closure, error) {
	data, err := r.client.Get(ctx, r.closureKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrClosureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get closure: %w", err)
	}

	var c domain.Closure
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal closure: %w", err)
	}
	return &c, nil
}

// Update overwrites an existing closure.
func (r *ClosureRepository) Update(ctx context.Context, c *domain.Closure) error {
	n, err := r.client.Exists(ctx, r.closureKey(c.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check closure: %w", err)
	}
	if n == 0 {
		return domain.ErrClosureNotFound
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal closure: %w", err)
	}
	if err := r.client.Set(ctx, r.closureKey(c.ID), data, r.ttlFor(c)).Err(); err != nil {
		return fmt.Errorf("failed to update closure: %w", err)
	}

	r.publish(ctx, c)
	return nil
}

// ListByBuilding returns every stored closure of a building, effective or
// not. IDs whose data has aged out are pruned from the index.
func (r *ClosureRepository) ListByBuilding(ctx context.Context, buildingID string) ([]domain.Closure, error) {
	setKey := r.buildingSetKey(buildingID)
	ids, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list closures for building: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.closureKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load closures: %w", err)
	}

	out := make([]domain.Closure, 0, len(values))
	var stale []interface{}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var c domain.Closure
		if err := json.Unmarshal([]byte(s), &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal closure %s: %w", ids[i], err)
		}
		out = append(out, c)
	}

	if len(stale) > 0 {
		if err := r.client.SRem(ctx, setKey, stale...).Err(); err != nil {
			logWarn(ctx, "closures.prune", "building=%s stale=%d error=%v", buildingID, len(stale), err)
		}
	}
	return out, nil
}

// ListBuildings returns the IDs of buildings that have stored closures.
func (r *ClosureRepository) ListBuildings(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, buildingsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	return ids, nil
}

// ttlFor returns 0 (no expiry) for open-ended active closures.
func (r *ClosureRepository) ttlFor(c *domain.Closure) time.Duration {
	if !c.Active {
		return closureRetention
	}
	if c.ScheduledUntil == nil {
		return 0
	}
	remaining := c.ScheduledUntil.Sub(r.now())
	if remaining < 0 {
		remaining = 0
	}
	return remaining + closureRetention
}

func (r *ClosureRepository) publish(ctx context.Context, c *domain.Closure) {
	data, err := json.Marshal(c)
	if err != nil {
		logWarn(ctx, "closures.publish", "closure=%s error=%v", c.ID, err)
		return
	}
	if err := r.client.Publish(ctx, r.eventChannel(c.BuildingID), data).Err(); err != nil {
		logWarn(ctx, "closures.publish", "building=%s closure=%s error=%v", c.BuildingID, c.ID, err)
	}
}

// logWarn reports best-effort Redis failures that do not fail the caller.
func logWarn(ctx context.Context, operation, format string, args ...interface{}) {
	rid := middleware.GetRequestID(ctx)
	if rid == "" {
		rid = "none"
	}
	log.Printf("[warn] request_id=%s operation=%s "+format, append([]interface{}{rid, operation}, args...)...)
}

func (r *ClosureRepository) closureKey(id string) string {
	return fmt.Sprintf("%s%s", closureKeyPrefix, id)
}

func (r *ClosureRepository) buildingSetKey(buildingID string) string {
	return fmt.Sprintf("%s%s:closures", buildingClosuresPrefix, buildingID)
}

func (r *ClosureRepository) eventChannel(buildingID string) string {
	return fmt.Sprintf("%s%s", closureEventPrefix, buildingID)
}
