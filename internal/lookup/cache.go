package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mateovilla/tradein-backend/pkg/logger"
	"github.com/mateovilla/tradein-backend/pkg/redis"
)

// DeviceSummary is the cached (and served) shape of a device search hit.
// Name and brand are HTML-escaped before they enter the cache.
type DeviceSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

// SearchCache stores device search results keyed by the normalized term.
// Reads and writes are best-effort: a broken cache degrades to fresh reads,
// it never fails a request.
type SearchCache interface {
	Get(ctx context.Context, term string) ([]DeviceSummary, bool)
	Set(ctx context.Context, term string, results []DeviceSummary)
	Flush(ctx context.Context) error
}

// searchStore is the slice of the redis client the cache needs.
type searchStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SearchKey(term string) string
	SearchKeyPrefix() string
	PurgePrefix(ctx context.Context, prefix string) error
}

type redisSearchCache struct {
	store searchStore
	ttl   time.Duration
	logg  *logger.Logger
}

// NewSearchCache builds a redis-backed search cache with the given TTL.
func NewSearchCache(store searchStore, ttl time.Duration, logg *logger.Logger) SearchCache {
	return &redisSearchCache{store: store, ttl: ttl, logg: logg}
}

func (c *redisSearchCache) Get(ctx context.Context, term string) ([]DeviceSummary, bool) {
	raw, err := c.store.Get(ctx, c.store.SearchKey(term))
	if err != nil {
		if !errors.Is(err, redis.Nil) && c.logg != nil {
			c.logg.Warn(ctx, "reading search cache")
		}
		return nil, false
	}

	var results []DeviceSummary
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		if c.logg != nil {
			c.logg.Warn(ctx, "decoding search cache entry")
		}
		return nil, false
	}
	return results, true
}

func (c *redisSearchCache) Set(ctx context.Context, term string, results []DeviceSummary) {
	payload, err := json.Marshal(results)
	if err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "encoding search cache entry", err)
		}
		return
	}
	if err := c.store.Set(ctx, c.store.SearchKey(term), payload, c.ttl); err != nil && c.logg != nil {
		c.logg.Warn(ctx, "writing search cache")
	}
}

func (c *redisSearchCache) Flush(ctx context.Context) error {
	return c.store.PurgePrefix(ctx, c.store.SearchKeyPrefix())
}
