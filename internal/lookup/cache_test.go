package lookup

import (
	"context"
	"testing"
	"time"

	"github.com/mateovilla/tradein-backend/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearchStore struct {
	data    map[string]string
	ttls    map[string]time.Duration
	purged  []string
	prefix  string
	keyFunc func(term string) string
}

func newFakeSearchStore() *fakeSearchStore {
	return &fakeSearchStore{
		data:   map[string]string{},
		ttls:   map[string]time.Duration{},
		prefix: "tradein:search:",
		keyFunc: func(term string) string {
			return "tradein:search:" + term
		},
	}
}

func (f *fakeSearchStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeSearchStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = ttl
	return nil
}

func (f *fakeSearchStore) SearchKey(term string) string { return f.keyFunc(term) }
func (f *fakeSearchStore) SearchKeyPrefix() string      { return f.prefix }
func (f *fakeSearchStore) PurgePrefix(_ context.Context, prefix string) error {
	f.purged = append(f.purged, prefix)
	f.data = map[string]string{}
	return nil
}

func TestSearchCacheRoundTrip(t *testing.T) {
	store := newFakeSearchStore()
	cache := NewSearchCache(store, time.Hour, nil)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "iphone")
	assert.False(t, ok)

	results := []DeviceSummary{{ID: 1, Name: "iPhone 12", Brand: "Apple"}}
	cache.Set(ctx, "iphone", results)
	assert.Equal(t, time.Hour, store.ttls["tradein:search:iphone"])

	got, ok := cache.Get(ctx, "iphone")
	require.True(t, ok)
	assert.Equal(t, results, got)
}

func TestSearchCacheIgnoresCorruptEntries(t *testing.T) {
	store := newFakeSearchStore()
	store.data["tradein:search:iphone"] = "{not json"
	cache := NewSearchCache(store, time.Hour, nil)

	_, ok := cache.Get(context.Background(), "iphone")
	assert.False(t, ok)
}

func TestSearchCacheFlushPurgesPrefix(t *testing.T) {
	store := newFakeSearchStore()
	cache := NewSearchCache(store, time.Hour, nil)
	ctx := context.Background()

	cache.Set(ctx, "iphone", []DeviceSummary{{ID: 1, Name: "iPhone 12"}})
	require.NoError(t, cache.Flush(ctx))
	assert.Equal(t, []string{"tradein:search:"}, store.purged)

	_, ok := cache.Get(ctx, "iphone")
	assert.False(t, ok)
}
