// Package buildinfo exposes the version stamped into the binary.
//
// Release builds overwrite the defaults with ldflags:
//
//	go build -ldflags "\
//	    -X github.com/vedanga/jyotish/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/vedanga/jyotish/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/vedanga/jyotish/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Development builds fall back to the VCS revision recorded by the Go
// toolchain when one is available.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String renders one human-readable line per field.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, commit(), date())
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, commit(), date())
}

func commit() string {
	if Commit != "" {
		return Commit
	}
	if rev, ok := vcsSetting("vcs.revision"); ok {
		if len(rev) > 12 {
			rev = rev[:12]
		}
		return rev
	}
	return "none"
}

func date() string {
	if Date != "" {
		return Date
	}
	if t, ok := vcsSetting("vcs.time"); ok {
		return t
	}
	return "unknown"
}

func vcsSetting(key string) (string, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range info.Settings {
		if s.Key == key && s.Value != "" {
			return s.Value, true
		}
	}
	return "", false
}
