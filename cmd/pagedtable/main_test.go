package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/pagedtable/internal/cli"
	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/pkg/version"
)

func TestRun(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Cleanup(config.ResetGlobalConfigForTest)

	assert.Equal(t, 0, run([]string{"resources"}))
	assert.Equal(t, 1, run([]string{"fetch", "planets"}))
	assert.Equal(t, 1, run([]string{"no-such-command"}))
}

func TestMainComponents(t *testing.T) {
	root := cli.NewRootCmd(version.GetVersion())
	assert.Equal(t, "pagedtable", root.Use)
	assert.Equal(t, version.GetVersion(), root.Version)

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"browse", "fetch", "export", "resources", "config", "cache", "version"} {
		assert.Contains(t, names, want)
	}
}
