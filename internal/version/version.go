// Package version exposes the build metadata stamped into the binary.
//
// Release builds inject the variables below with ldflags, e.g.
//
//	-X github.com/jmylchreest/irodori/internal/version.Version=0.2.0
//	-X github.com/jmylchreest/irodori/internal/version.Commit=$(git rev-parse HEAD)
//	-X github.com/jmylchreest/irodori/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)
//
// A plain `go build` leaves the dev defaults in place.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version of this build.
	Version = "dev"
	// Commit is the git revision the build was cut from.
	Commit = "unknown"
	// Date is the RFC3339 build timestamp.
	Date = "unknown"
)

// Info is the structured form of the build metadata.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo collects the stamped values plus the runtime's Go version and
// platform.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the one-line form used by `irodori version`. Commit and
// date only appear when a release build stamped them.
func String() string {
	info := GetInfo()
	if info.Commit == "unknown" || info.Date == "unknown" {
		return fmt.Sprintf("irodori version %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
	}
	return fmt.Sprintf("irodori version %s (commit: %s, built: %s, %s, %s)",
		info.Version, shortCommit(info.Commit), info.Date, info.GoVersion, info.Platform)
}

// Short returns just the version number.
func Short() string {
	return Version
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
