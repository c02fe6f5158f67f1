// Package version holds build-time version information for the CLI.
package version

// Overridden via ldflags:
// -X github.com/tacogips/octavia/internal/version.Version=x.y.z
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
