package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/pagedtable/internal/table"
)

// Default configuration values.
const (
	DefaultJSONPlaceholderURL = "https://jsonplaceholder.typicode.com"
	DefaultReqResURL          = "https://reqres.in/api"
	DefaultReqResAPIKey       = "reqres-free-v1"
	DefaultTimeoutSeconds     = 10
	DefaultMaxRetries         = 3
	DefaultCacheTTLSeconds    = 300
	DefaultMemoryTTLSeconds   = 30

	// DefaultMinColumnWidth is measured in terminal cells.
	DefaultMinColumnWidth = 4

	configFileName = "config.yaml"
)

// Environment variables that override the configuration file.
const (
	EnvHome       = "PAGEDTABLE_HOME"
	EnvPageSize   = "PAGEDTABLE_PAGE_SIZE"
	EnvFilterMode = "PAGEDTABLE_FILTER_MODE"
	EnvLogLevel   = "PAGEDTABLE_LOG_LEVEL"
	EnvOverlay    = "PAGEDTABLE_OVERLAY"
)

// Validation errors.
var (
	ErrInvalidPageSize        = errors.New("table.page_size must be >= 1")
	ErrEmptyPageSizeOptions   = errors.New("table.page_size_options must not be empty")
	ErrInvalidPageSizeOption  = errors.New("table.page_size_options entries must be >= 1")
	ErrInvalidMinColumnWidth  = errors.New("table.min_column_width must be >= 1")
	ErrInvalidTimeout         = errors.New("source.timeout_seconds must be >= 0")
	ErrInvalidMaxRetries      = errors.New("source.max_retries must be >= 0")
	ErrInvalidCacheTTL        = errors.New("cache TTLs must be >= 0")
	ErrMissingCacheDirectory  = errors.New("cache.directory is required when the cache is enabled")
	ErrInvalidSourceURL       = errors.New("source URLs must not be empty")
	ErrConfigPathNotSpecified = errors.New("config path not set")
)

// Config is the complete pagedtable configuration.
type Config struct {
	Table   TableConfig   `yaml:"table"`
	Source  SourceConfig  `yaml:"source"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`

	configPath string
}

// TableConfig configures the table controller.
type TableConfig struct {
	PageSize        int    `yaml:"page_size"`
	PageSizeOptions []int  `yaml:"page_size_options"`
	FilterMode      string `yaml:"filter_mode"`
	MinColumnWidth  int    `yaml:"min_column_width"`
	// StrictOrdering discards responses that arrive after a newer request was issued.
	StrictOrdering bool `yaml:"strict_ordering"`
}

// SourceConfig configures the remote data sources.
type SourceConfig struct {
	JSONPlaceholderURL string `yaml:"jsonplaceholder_url"`
	ReqResURL          string `yaml:"reqres_url"`
	ReqResAPIKey       string `yaml:"reqres_api_key"`
	TimeoutSeconds     int    `yaml:"timeout_seconds"`
	MaxRetries         int    `yaml:"max_retries"`
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	Enabled          bool   `yaml:"enabled"`
	Directory        string `yaml:"directory"`
	TTLSeconds       int    `yaml:"ttl_seconds"`
	MemoryTTLSeconds int    `yaml:"memory_ttl_seconds"`
}

// New returns a configuration populated with defaults. Paths live under the
// configuration directory (~/.pagedtable unless PAGEDTABLE_HOME is set).
func New() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), "pagedtable")
	}

	return &Config{
		Table: TableConfig{
			PageSize:        table.DefaultPageSize,
			PageSizeOptions: table.DefaultPageSizeOptions(),
			FilterMode:      string(table.FilterModeLive),
			MinColumnWidth:  DefaultMinColumnWidth,
		},
		Source: SourceConfig{
			JSONPlaceholderURL: DefaultJSONPlaceholderURL,
			ReqResURL:          DefaultReqResURL,
			ReqResAPIKey:       DefaultReqResAPIKey,
			TimeoutSeconds:     DefaultTimeoutSeconds,
			MaxRetries:         DefaultMaxRetries,
		},
		Cache: CacheConfig{
			Enabled:          true,
			Directory:        filepath.Join(dir, "cache"),
			TTLSeconds:       DefaultCacheTTLSeconds,
			MemoryTTLSeconds: DefaultMemoryTTLSeconds,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(dir, "logs", "pagedtable.log"),
		},
		configPath: filepath.Join(dir, configFileName),
	}
}

// Load reads the configuration at path on top of the defaults, applies
// environment overrides and validates the result. A missing file is not an
// error. An empty path selects the default location.
func Load(path string) (*Config, error) {
	cfg := New()
	if path != "" {
		cfg.configPath = path
	}

	data, err := os.ReadFile(cfg.configPath)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parsing config %s: %w", cfg.configPath, unmarshalErr)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading config %s: %w", cfg.configPath, err)
	}

	cfg.ApplyEnv(os.LookupEnv)

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return cfg, nil
}

// LoadWithOverlay loads path like Load and then shallow-merges the overlay
// file on top, so a section in the overlay replaces that whole section. An
// empty overlay falls back to $PAGEDTABLE_OVERLAY. Environment overrides still
// win over both files.
func LoadWithOverlay(path, overlay string) (*Config, error) {
	if overlay == "" {
		overlay = os.Getenv(EnvOverlay)
	}
	cfg, err := Load(path)
	if err != nil || overlay == "" {
		return cfg, err
	}

	if err = ShallowMergeYAML(cfg, overlay); err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return cfg, nil
}

// ApplyEnv applies PAGEDTABLE_* overrides. Unparsable values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvPageSize); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Table.PageSize = n
		}
	}
	if v, ok := lookup(EnvFilterMode); ok && v != "" {
		c.Table.FilterMode = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	if c.Table.PageSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.Table.PageSize)
	}
	if len(c.Table.PageSizeOptions) == 0 {
		return ErrEmptyPageSizeOptions
	}
	for _, o := range c.Table.PageSizeOptions {
		if o < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidPageSizeOption, o)
		}
	}
	if _, err := table.ParseFilterMode(c.Table.FilterMode); err != nil {
		return fmt.Errorf("table.filter_mode: %w", err)
	}
	if c.Table.MinColumnWidth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMinColumnWidth, c.Table.MinColumnWidth)
	}
	if c.Source.JSONPlaceholderURL == "" || c.Source.ReqResURL == "" {
		return ErrInvalidSourceURL
	}
	if c.Source.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTimeout, c.Source.TimeoutSeconds)
	}
	if c.Source.MaxRetries < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxRetries, c.Source.MaxRetries)
	}
	if c.Cache.TTLSeconds < 0 || c.Cache.MemoryTTLSeconds < 0 {
		return ErrInvalidCacheTTL
	}
	if c.Cache.Enabled && c.Cache.Directory == "" {
		return ErrMissingCacheDirectory
	}
	return nil
}

// FilterMode returns the parsed filter mode. Validate guarantees it parses.
func (c *Config) FilterMode() table.FilterMode {
	mode, err := table.ParseFilterMode(c.Table.FilterMode)
	if err != nil {
		return table.FilterModeLive
	}
	return mode
}

// Save writes the configuration as YAML to its config path.
func (c *Config) Save() error {
	if c.configPath == "" {
		return ErrConfigPathNotSpecified
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if writeErr := os.WriteFile(c.configPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, writeErr)
	}
	return nil
}

// SetConfigPath changes where Save writes.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// ConfigPath returns where the configuration is read from and saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}
