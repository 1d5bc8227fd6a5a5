package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagedtable/internal/config"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent overlay keys leave the original values intact.
func newDefaultTarget() *config.Config {
	return &config.Config{
		Table: config.TableConfig{
			PageSize:        10,
			PageSizeOptions: []int{10, 20},
			FilterMode:      "live",
			MinColumnWidth:  4,
			StrictOrdering:  true,
		},
		Source: config.SourceConfig{
			JSONPlaceholderURL: "http://jp.test",
			ReqResURL:          "http://rr.test",
			MaxRetries:         3,
		},
		Cache: config.CacheConfig{
			Enabled:    true,
			Directory:  "/tmp/cache",
			TTLSeconds: 60,
		},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_ReplacesWholeSection(t *testing.T) {
	target := newDefaultTarget()
	path := writeOverlay(t, `
table:
  page_size: 5
  page_size_options: [5]
  filter_mode: staged
  min_column_width: 2
`)

	require.NoError(t, config.ShallowMergeYAML(target, path))

	assert.Equal(t, 5, target.Table.PageSize)
	assert.Equal(t, []int{5}, target.Table.PageSizeOptions)
	assert.Equal(t, "staged", target.Table.FilterMode)
	assert.False(t, target.Table.StrictOrdering, "omitted fields inside a replaced section are zeroed")
}

func TestShallowMergeYAML_AbsentKeysUnchanged(t *testing.T) {
	target := newDefaultTarget()
	path := writeOverlay(t, "logging:\n  level: debug\n")

	require.NoError(t, config.ShallowMergeYAML(target, path))

	assert.Equal(t, "debug", target.Logging.Level)
	assert.Equal(t, 10, target.Table.PageSize)
	assert.Equal(t, "http://rr.test", target.Source.ReqResURL)
	assert.Equal(t, "/tmp/cache", target.Cache.Directory)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	path := writeOverlay(t, "plugins:\n  aws: {}\n")

	require.NoError(t, config.ShallowMergeYAML(target, path))
	assert.Equal(t, newDefaultTarget(), target)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	path := writeOverlay(t, "cache:\n  enabled: true\n")

	t.Run("nil target", func(t *testing.T) {
		require.Error(t, config.ShallowMergeYAML(nil, path))
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.ShallowMergeYAML(newDefaultTarget(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad yaml", func(t *testing.T) {
		bad := writeOverlay(t, "cache: [\n")
		require.Error(t, config.ShallowMergeYAML(newDefaultTarget(), bad))
	})

	t.Run("wrong section shape", func(t *testing.T) {
		bad := writeOverlay(t, "source: [a, b]\n")
		err := config.ShallowMergeYAML(newDefaultTarget(), bad)
		require.ErrorContains(t, err, `"source"`)
	})
}
