// Package version exposes build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Build metadata. Overridden at link time:
//
//	go build -ldflags "-X github.com/rshade/pagedtable/pkg/version.version=1.2.3"
//
//nolint:gochecknoglobals // Set by the linker.
var (
	version   = "0.0.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// Info is the build metadata printed by "pagedtable version".
type Info struct {
	Version   string `json:"version"    yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform"   yaml:"platform"`
}

// GetVersion returns the version string.
func GetVersion() string {
	return version
}

// GetInfo returns the full build metadata.
func GetInfo() Info {
	return Info{
		Version:   version,
		GitCommit: gitCommit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the metadata on one line.
func (i Info) String() string {
	return fmt.Sprintf("pagedtable %s (commit %s, built %s, %s %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}

// Parse validates v as a semantic version. A leading "v" is accepted.
func Parse(v string) (*semver.Version, error) {
	sv, err := semver.NewVersion(v)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", v, err)
	}
	return sv, nil
}

// IsValid reports whether v parses as a semantic version.
func IsValid(v string) bool {
	_, err := Parse(v)
	return err == nil
}

// IsPrerelease reports whether the build version carries a prerelease tag,
// which is the case for every build without injected metadata.
func IsPrerelease() bool {
	sv, err := Parse(version)
	return err != nil || sv.Prerelease() != ""
}
