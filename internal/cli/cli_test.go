package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/pagedtable/internal/cli"
	"github.com/rshade/pagedtable/internal/config"
)

// setupCLITest isolates the config directory and global state.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvOverlay, "")
	t.Setenv("PAGEDTABLE_CACHE_ENABLED", "")
	t.Setenv("PAGEDTABLE_CACHE_DIR", "")
	t.Setenv("PAGEDTABLE_CACHE_TTL_SECONDS", "")
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// executeCmd runs the root command with args and returns combined output.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("1.2.3")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// fakeAPI serves /comments with n generated comments, json-server style,
// and counts requests.
type fakeAPI struct {
	*httptest.Server
	requests atomic.Int32
}

func newFakeAPI(t *testing.T, n int) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.requests.Add(1)
		if r.URL.Path != "/comments" {
			http.NotFound(w, r)
			return
		}

		var all []map[string]any
		like := r.URL.Query().Get("name_like")
		for i := 1; i <= n; i++ {
			name := fmt.Sprintf("comment %d", i)
			if like != "" && !bytes.Contains([]byte(name), []byte(like)) {
				continue
			}
			all = append(all, map[string]any{
				"id": i, "name": name, "email": fmt.Sprintf("user%d@example.com", i), "body": "text",
			})
		}
		if all == nil {
			all = []map[string]any{}
		}

		out := all
		if s := r.URL.Query().Get("_start"); s != "" {
			start, _ := strconv.Atoi(s)
			limit, _ := strconv.Atoi(r.URL.Query().Get("_limit"))
			start = min(start, len(all))
			out = all[start:min(start+limit, len(all))]
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}))
	t.Cleanup(api.Close)
	return api
}

// writeConfig writes a config file pointing both backends at baseURL.
func writeConfig(t *testing.T, home, baseURL string, cacheEnabled bool) string {
	t.Helper()
	path := filepath.Join(home, "config.yaml")
	content := fmt.Sprintf(`
source:
  jsonplaceholder_url: %s
  reqres_url: %s
  max_retries: 0
cache:
  enabled: %t
  directory: %s
  ttl_seconds: 60
  memory_ttl_seconds: 0
logging:
  level: error
  format: json
  file: %s
`, baseURL, baseURL, cacheEnabled, filepath.Join(home, "cache"), filepath.Join(home, "logs", "test.log"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
