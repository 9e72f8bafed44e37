// Package version provides build version information for driftool.
package version

import "fmt"

// Build metadata, injected via ldflags on release builds. Development
// builds keep the defaults.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetFullVersion returns the version with build information, e.g.
// "v0.3.0 (commit: abc123, built: 2024-12-27T10:30:00Z)".
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
