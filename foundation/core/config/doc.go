// Package config provides TOML and YAML configuration loading for mCALC.
//
// Package: config
// Title: mCALC Configuration Management
// Description: Loads configuration from TOML (default) or YAML files,
//              exposes dot-notation getters with defaults and lets
//              environment variables override file values.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-19 v0.2.0: Discovery over candidate files, rule validation trimmed
//
// Environment overrides use the pattern PREFIX_SECTION_KEY: with prefix
// "MCALC" the key "server.port" is read from MCALC_SERVER_PORT before the
// file is consulted.
//
// Usage:
//
//	import mcconfig "github.com/msto63/mCALC/foundation/core/config"
//
//	cfg, err := mcconfig.Discover(mcconfig.DiscoveryOptions{
//		Candidates: []string{"./configs/config.toml", "./config.yaml"},
//		EnvPrefix:  "MCALC",
//		Defaults:   map[string]interface{}{"server": map[string]interface{}{"port": 8090}},
//	})
//	if err != nil {
//		return err
//	}
//	port := cfg.GetInt("server.port")
package config
