// Package version holds the razor release string. Release builds override
// it with -ldflags "-X razor/internal/version.Version=...".
package version

var Version = "1.1.0"
