// Package version carries build-time identifiers for all liftctl binaries.
package version

var (
	// Version is the liftctl release version, set by the build system (ldflags).
	Version = "v0.1.0-dev"

	// Commit is the git short hash of the build.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)
