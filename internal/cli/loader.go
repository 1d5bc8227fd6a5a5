package cli

import (
	"fmt"
	"time"

	"github.com/rshade/pagedtable/internal/cache"
	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/source"
)

// openCache opens the file cache described by cfg, with PAGEDTABLE_CACHE_*
// overrides applied. A TTL of zero disables the file cache.
func openCache(cfg *config.Config) (*cache.FileStore, error) {
	settings := cache.SettingsFromEnv(cache.Settings{
		Enabled:   cfg.Cache.Enabled,
		Directory: cfg.Cache.Directory,
		TTL:       time.Duration(cfg.Cache.TTLSeconds) * time.Second,
	})
	if settings.TTL == 0 {
		settings.Enabled = false
	}
	store, err := cache.Open(settings)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, nil
}

// newLoader builds the loader chain used by browse and fetch: the response
// cache in front of a mux over both HTTP backends.
func newLoader(cfg *config.Config) (source.Loader, error) {
	timeout := time.Duration(cfg.Source.TimeoutSeconds) * time.Second

	mux := source.NewMux(map[source.Backend]source.Loader{
		source.BackendJSONPlaceholder: source.NewJSONPlaceholder(source.HTTPOptions{
			BaseURL:    cfg.Source.JSONPlaceholderURL,
			Timeout:    timeout,
			MaxRetries: cfg.Source.MaxRetries,
		}),
		source.BackendReqRes: source.NewReqRes(source.HTTPOptions{
			BaseURL:    cfg.Source.ReqResURL,
			Timeout:    timeout,
			MaxRetries: cfg.Source.MaxRetries,
		}, cfg.Source.ReqResAPIKey),
	})

	store, err := openCache(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Bool("file_cache", store.Enabled()).
		Str("cache_dir", store.Directory()).
		Int("memory_ttl_seconds", cfg.Cache.MemoryTTLSeconds).
		Msg("loader ready")

	memoryTTL := time.Duration(cfg.Cache.MemoryTTLSeconds) * time.Second
	return source.NewCachedLoader(mux, store, memoryTTL), nil
}
