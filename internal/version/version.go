// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "fmt"

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string // Short git commit hash (e.g., "abc1234")
	BuildTime string // Build timestamp in RFC3339 format
}

// New returns build info, filling values that were not injected.
func New(version, commit, built string) Info {
	info := Info{Version: version, GitCommit: commit, BuildTime: built}
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.GitCommit == "" {
		info.GitCommit = "unknown"
	}
	if info.BuildTime == "" {
		info.BuildTime = "unknown"
	}
	return info
}

// String formats the info for the -version flag.
func (i Info) String() string {
	return fmt.Sprintf("gov-portal %s (commit: %s, built: %s)", i.Version, i.GitCommit, i.BuildTime)
}
