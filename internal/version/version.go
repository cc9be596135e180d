// Package version exposes the build metadata stamped in via ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Overridden at build time:
//
//	-ldflags "-X .../internal/version.Version=v1.2.3 -X .../internal/version.Commit=$(git rev-parse HEAD)"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the one-line version banner.
func String() string {
	return fmt.Sprintf("skyreserve %s (commit %s, built %s, %s %s/%s)",
		Version, shortCommit(), Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns the bare version number.
func Short() string { return Version }

func shortCommit() string {
	if len(Commit) > 8 {
		return Commit[:8]
	}
	return Commit
}
