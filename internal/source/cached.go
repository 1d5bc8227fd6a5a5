package source

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/rshade/pagedtable/internal/cache"
	"github.com/rshade/pagedtable/internal/logging"
)

const memoryCleanupFactor = 2

type freshKey struct{}

// WithFreshLoad marks ctx so CachedLoader skips cached results. The fresh
// result still replaces whatever was cached.
func WithFreshLoad(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshKey{}, true)
}

func isFreshLoad(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshKey{}).(bool)
	return fresh
}

// CachedLoader serves repeated queries from memory, then from the file
// store, before falling through to the wrapped loader. Cache failures are
// logged and never fail a load.
type CachedLoader struct {
	next   Loader
	memory *gocache.Cache
	store  *cache.FileStore
}

// NewCachedLoader wraps next. A nil or disabled store skips the disk layer;
// a non-positive memoryTTL skips the memory layer.
func NewCachedLoader(next Loader, store *cache.FileStore, memoryTTL time.Duration) *CachedLoader {
	c := &CachedLoader{next: next}
	if memoryTTL > 0 {
		c.memory = gocache.New(memoryTTL, memoryCleanupFactor*memoryTTL)
	}
	if store != nil && store.Enabled() {
		c.store = store
	}
	return c
}

// Load implements Loader.
func (c *CachedLoader) Load(ctx context.Context, q Query) (Result, error) {
	log := logging.FromContext(ctx)

	key, err := cache.GenerateKey(cache.KeyParams{
		Resource:  q.Resource,
		PageIndex: q.Pagination.PageIndex,
		PageSize:  q.Pagination.PageSize,
		Filters:   q.Filters,
	})
	if err != nil {
		return c.next.Load(ctx, q)
	}

	if !isFreshLoad(ctx) {
		if res, ok := c.lookup(ctx, key); ok {
			return res, nil
		}
	}

	res, err := c.next.Load(ctx, q)
	if err != nil {
		return Result{}, err
	}

	if c.memory != nil {
		c.memory.SetDefault(key, res)
	}
	if c.store != nil {
		data, encodeErr := json.Marshal(res)
		if encodeErr == nil {
			encodeErr = c.store.Set(key, q.Resource, data)
		}
		if encodeErr != nil {
			log.Warn().Err(encodeErr).Str("resource", q.Resource).Msg("failed to write cache entry")
		}
	}
	return res, nil
}

func (c *CachedLoader) lookup(ctx context.Context, key string) (Result, bool) {
	log := logging.FromContext(ctx)

	if c.memory != nil {
		if v, found := c.memory.Get(key); found {
			if res, ok := v.(Result); ok {
				log.Debug().Str("cache", "memory").Msg("cache hit")
				return res, true
			}
		}
	}

	if c.store == nil {
		return Result{}, false
	}

	entry, err := c.store.Get(key)
	switch {
	case err == nil:
	case errors.Is(err, cache.ErrCacheNotFound), errors.Is(err, cache.ErrCacheExpired):
		return Result{}, false
	default:
		log.Warn().Err(err).Msg("failed to read cache entry")
		return Result{}, false
	}

	var res Result
	if err = json.Unmarshal(entry.Data, &res); err != nil {
		log.Warn().Err(err).Msg("discarding undecodable cache entry")
		_ = c.store.Delete(key)
		return Result{}, false
	}

	log.Debug().Str("cache", "file").Msg("cache hit")
	if c.memory != nil {
		c.memory.SetDefault(key, res)
	}
	return res, true
}
