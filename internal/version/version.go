// Package version provides build-time version information.
package version

import "fmt"

// Set at build time with -ldflags "-X affinity-map/internal/version.Version=...".
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version with its build metadata.
func String() string {
	return fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit)
}
