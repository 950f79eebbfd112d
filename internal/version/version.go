// Package version exposes build metadata and version comparison
// helpers.
package version

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Build metadata, overridden at link time via -ldflags.
//
//nolint:gochecknoglobals // Set by the build system
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is a point-in-time description of the running binary.
type Info struct {
	Version  string
	Commit   string
	Date     string
	Go       string
	Platform string
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:  Version,
		Commit:   Commit,
		Date:     Date,
		Go:       runtime.Version(),
		Platform: fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// Compare compares two semantic version strings and returns 1, 0 or
// -1 as v1 is newer than, equal to, or older than v2. "dev" and empty
// versions sort before any release.
func Compare(v1, v2 string) int {
	dev1 := isDev(v1)
	dev2 := isDev(v2)
	switch {
	case dev1 && dev2:
		return 0
	case dev1:
		return -1
	case dev2:
		return 1
	}

	parts1 := parse(v1)
	parts2 := parse(v2)
	for i := 0; i < 3; i++ {
		a, b := 0, 0
		if i < len(parts1) {
			a = parts1[i]
		}
		if i < len(parts2) {
			b = parts2[i]
		}
		if a != b {
			if a > b {
				return 1
			}
			return -1
		}
	}
	return 0
}

// IsNewer reports whether latest is a newer release than current.
func IsNewer(current, latest string) bool {
	return Compare(latest, current) > 0
}

func isDev(v string) bool {
	v = strings.TrimPrefix(v, "v")
	return v == "" || v == "dev"
}

// parse splits a version into numeric major, minor and patch parts,
// ignoring any pre-release or build suffix.
func parse(v string) []int {
	v = strings.TrimPrefix(v, "v")
	if idx := strings.IndexAny(v, "-+"); idx != -1 {
		v = v[:idx]
	}

	fields := strings.Split(v, ".")
	parts := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			break
		}
		parts = append(parts, n)
	}
	return parts
}
