package version

import "fmt"

// Build-time variables injected via -ldflags.
var (
	Version = "v0.4.0"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetFullVersion returns a formatted full version string.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}

// UserAgent returns the User-Agent sent with every API request.
func UserAgent() string {
	return "folio-cli/" + Version
}
