package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for the window title and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" {
		if len(c) > 7 {
			c = c[:7]
		}
		return c
	}
	return "dev"
}

// String returns version, commit and date on one line.
func String() string {
	date := Date
	if date == "" || date == "unknown" {
		date = vcsSetting("vcs.time")
	}
	s := fmt.Sprintf("thunderhead %s", Version)
	if c := commit(); c != "" {
		s += " (" + c
		if date != "" {
			s += ", " + date
		}
		s += ")"
	}
	return s
}

// commit prefers the -ldflags value and falls back to the VCS stamp the go
// command embeds.
func commit() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return vcsSetting("vcs.revision")
}

func vcsSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
