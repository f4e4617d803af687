// File: discovery.go
// Title: Configuration File Discovery
// Description: Finds the first existing configuration file in a list of
//              candidates and loads it, falling back to defaults.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of file discovery
// - 2026-10-19 v0.2.0: Candidate list instead of path x name x extension grid

package config

import (
	"os"
	"strings"

	mcerror "github.com/msto63/mCALC/foundation/core/error"
)

// DiscoveryOptions defines options for configuration file discovery
type DiscoveryOptions struct {
	Candidates []string               // Files to try, in order
	EnvPrefix  string                 // Environment variable prefix for overrides
	Defaults   map[string]interface{} // Defaults applied under the file contents
	Required   bool                   // Whether finding a config file is required
}

// FindConfigFile returns the first candidate that exists and is a regular file
func FindConfigFile(candidates []string) (string, bool) {
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Discover loads the first existing candidate. Without a match it returns a
// defaults-only configuration, or an error when Required is set.
func Discover(options DiscoveryOptions) (*Config, error) {
	path, found := FindConfigFile(options.Candidates)
	if !found {
		if options.Required {
			return nil, mcerror.New("no configuration file found in: " + strings.Join(options.Candidates, ", ")).
				WithCode(mcerror.CodeMissingConfig).
				WithOperation("config.Discover").
				WithDetail("candidates", options.Candidates)
		}
		return New(options.EnvPrefix, options.Defaults), nil
	}

	return LoadWithOptions(path, LoadOptions{
		Format:    FormatAuto,
		EnvPrefix: options.EnvPrefix,
		Defaults:  options.Defaults,
	})
}
