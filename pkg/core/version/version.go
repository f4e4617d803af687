// ============================================================================
// mCALC - Arithmetic Expression Calculator
// ============================================================================
//
// Package:     version
// Description: Central version management for the CLI and the service
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for all mCALC components
const (
	// Platform version
	Platform = "0.1.0"

	// Component versions
	Engine  = "0.1.0"
	CLI     = "0.1.0"
	Server  = "0.1.0"
	History = "0.1.0"
)

// Set at build time via -ldflags "-X github.com/msto63/mCALC/pkg/core/version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "cli":
		return CLI
	case "server":
		return Server
	case "history":
		return History
	default:
		return Platform
	}
}

// String returns the one-line version banner
func String() string {
	return fmt.Sprintf("mCALC %s (commit %s, built %s, %s %s/%s)",
		Platform, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
