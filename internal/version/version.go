// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version carries the build identity stamped in via ldflags.
package version

import "fmt"

// Info identifies one build of the binary.
type Info struct {
	Version   string // semantic version from the release tag
	GitCommit string // short commit hash
	BuildTime string // RFC3339 build timestamp
}

// String renders the info in the form shown by the -version flag.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", i.Version, i.GitCommit, i.BuildTime)
}
