package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// read-side cache keys
// invalidation is per submission, recomputation happens on the next read.
// granularity finer than "per unit code" is not worth the bookkeeping since
// the aggregate list is a full recompute over all reviews anyway
const (
	KeySummaries     = "agg:summaries"
	KeyRecentReviews = "list:reviews:recent"
	keyUnitPrefix    = "list:reviews:unit:"
)

// safety net - even without invalidation an entry never outlives this
const defaultTTL = 10 * time.Minute

// Store is the redis-backed cache for derived read-side state
type Store struct {
	Client *redis.Client
}

// UnitKey returns the listing key of one unit
func UnitKey(unitCode string) string {
	return keyUnitPrefix + strings.ToUpper(strings.TrimSpace(unitCode))
}

// Get reads a cached payload; the bool reports a hit
// cache errors are treated as a miss - the store must never take a page down
func (s *Store) Get(key string, target interface{}) bool {

	var ctx = context.Background()

	val, err := s.Client.Get(ctx, key).Result()
	if err != nil {
		// redis.Nil or a real problem - either way, recompute
		return false
	}

	if err := json.Unmarshal([]byte(val), target); err != nil {
		return false
	}

	return true
}

// Set stores a payload as JSON
// errors are ignored on purpose (a failed write just means a recompute later)
func (s *Store) Set(key string, value interface{}) {

	b, err := json.Marshal(value)
	if err != nil {
		return
	}

	var ctx = context.Background()
	_ = s.Client.Set(ctx, key, b, defaultTTL).Err()
}

// InvalidateReviews flags every read path that depends on review state as
// stale: the aggregate list, the recent list and the unit's own listing.
// nothing is recomputed here (push-based invalidation, pull-based recompute)
func (s *Store) InvalidateReviews(unitCode string) {

	var ctx = context.Background()

	_ = s.Client.Del(ctx,
		KeySummaries,
		KeyRecentReviews,
		UnitKey(unitCode),
	).Err()
}
