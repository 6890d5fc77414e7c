// Package version holds build metadata injected at link time:
//
//	go build -ldflags "-X github.com/Sumatoshi-tech/sortbench/pkg/version.Version=v1.2.0 \
//	  -X github.com/Sumatoshi-tech/sortbench/pkg/version.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/Sumatoshi-tech/sortbench/pkg/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import (
	"fmt"
	"runtime/debug"
)

// Build metadata. Overridden by -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the metadata for `sortbench version`.
func String() string {
	return fmt.Sprintf("sortbench %s (commit: %s, built: %s)", Version, Commit, Date)
}

// InitFromBuildInfo fills Version and Commit from the module build info when
// they were not set by -ldflags, e.g. after `go install`.
func InitFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	if Commit != "unknown" {
		return
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			Commit = setting.Value

			return
		}
	}
}
