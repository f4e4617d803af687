// ============================================================================
// mCALC - Arithmetic Expression Calculator
// ============================================================================
//
// Package:     config
// Description: Typed application configuration built on foundation/core/config
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mcconfig "github.com/msto63/mCALC/foundation/core/config"
	mcerror "github.com/msto63/mCALC/foundation/core/error"
)

// EnvPrefix is the prefix for environment overrides, e.g. MCALC_SERVER_PORT
const EnvPrefix = "MCALC"

// EnvConfigPath names the variable holding an explicit config file path
const EnvConfigPath = "MCALC_CONFIG"

// DefaultPaths are tried in order when MCALC_CONFIG is not set
var DefaultPaths = []string{
	"./configs/config.toml",
	"./config.toml",
	"./config.yaml",
}

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	History HistoryConfig `toml:"history" yaml:"history"`

	source string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	DataDir   string `toml:"data_dir" yaml:"data_dir"`
}

// EngineConfig holds expression engine settings
type EngineConfig struct {
	MaxInputLength int `toml:"max_input_length" yaml:"max_input_length"`
}

// ServerConfig holds HTTP service settings
type ServerConfig struct {
	Host         string   `toml:"host" yaml:"host"`
	Port         int      `toml:"port" yaml:"port"`
	ReadTimeout  Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout" yaml:"write_timeout"`
	CacheSize    int      `toml:"cache_size" yaml:"cache_size"`
}

// HistoryConfig holds evaluation history settings
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Driver  string `toml:"driver" yaml:"driver"`
	Path    string `toml:"path" yaml:"path"`
	Limit   int    `toml:"limit" yaml:"limit"`
}

// Duration wraps time.Duration for TOML and YAML encoding
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:  "info",
			LogFormat: "text",
			DataDir:   "./data",
		},
		Engine: EngineConfig{
			MaxInputLength: 4096,
		},
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8090,
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{10 * time.Second},
			CacheSize:    256,
		},
		History: HistoryConfig{
			Enabled: true,
			Driver:  "sqlite",
			Path:    "./data/history.db",
			Limit:   50,
		},
	}
}

// defaults mirrors Default as a nested map for the generic loader
func defaults() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"general": map[string]interface{}{
			"log_level":  d.General.LogLevel,
			"log_format": d.General.LogFormat,
			"data_dir":   d.General.DataDir,
		},
		"engine": map[string]interface{}{
			"max_input_length": d.Engine.MaxInputLength,
		},
		"server": map[string]interface{}{
			"host":          d.Server.Host,
			"port":          d.Server.Port,
			"read_timeout":  d.Server.ReadTimeout.String(),
			"write_timeout": d.Server.WriteTimeout.String(),
			"cache_size":    d.Server.CacheSize,
		},
		"history": map[string]interface{}{
			"enabled": d.History.Enabled,
			"driver":  d.History.Driver,
			"path":    d.History.Path,
			"limit":   d.History.Limit,
		},
	}
}

var rules = mcconfig.ValidationRules{
	"general.log_level":       {OneOf: []string{"trace", "debug", "info", "warn", "error", "fatal"}},
	"general.log_format":      {OneOf: []string{"json", "text", "console", "logfmt"}},
	"engine.max_input_length": {Min: mcconfig.IntPtr(1)},
	"server.port":             {Min: mcconfig.IntPtr(1), Max: mcconfig.IntPtr(65535)},
	"server.cache_size":       {Min: mcconfig.IntPtr(0)},
	"history.driver":          {OneOf: []string{"sqlite", "memory"}},
	"history.limit":           {Min: mcconfig.IntPtr(1)},
}

// Load loads configuration from a TOML or YAML file. Missing keys take their
// defaults, MCALC_* environment variables override the file.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	src, err := mcconfig.LoadWithOptions(path, mcconfig.LoadOptions{
		Format:    mcconfig.FormatAuto,
		EnvPrefix: EnvPrefix,
		Defaults:  defaults(),
	})
	if err != nil {
		return nil, err
	}

	return fromSource(src)
}

// LoadFromEnv loads the file named by MCALC_CONFIG, else the first of
// DefaultPaths that exists, else the defaults
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	src, err := mcconfig.Discover(mcconfig.DiscoveryOptions{
		Candidates: DefaultPaths,
		EnvPrefix:  EnvPrefix,
		Defaults:   defaults(),
	})
	if err != nil {
		return nil, err
	}

	return fromSource(src)
}

func fromSource(src *mcconfig.Config) (*Config, error) {
	if err := src.Validate(rules); err != nil {
		if mcErr, ok := mcerror.As(err); ok && src.FilePath() != "" {
			mcErr.WithDetail("filePath", src.FilePath())
		}
		return nil, err
	}

	d := Default()
	cfg := &Config{
		General: GeneralConfig{
			LogLevel:  src.GetString("general.log_level", d.General.LogLevel),
			LogFormat: src.GetString("general.log_format", d.General.LogFormat),
			DataDir:   src.GetString("general.data_dir", d.General.DataDir),
		},
		Engine: EngineConfig{
			MaxInputLength: src.GetInt("engine.max_input_length", d.Engine.MaxInputLength),
		},
		Server: ServerConfig{
			Host:         src.GetString("server.host", d.Server.Host),
			Port:         src.GetInt("server.port", d.Server.Port),
			ReadTimeout:  Duration{src.GetDuration("server.read_timeout", d.Server.ReadTimeout.Duration)},
			WriteTimeout: Duration{src.GetDuration("server.write_timeout", d.Server.WriteTimeout.Duration)},
			CacheSize:    src.GetInt("server.cache_size", d.Server.CacheSize),
		},
		History: HistoryConfig{
			Enabled: src.GetBool("history.enabled", d.History.Enabled),
			Driver:  strings.ToLower(src.GetString("history.driver", d.History.Driver)),
			Path:    src.GetString("history.path", d.History.Path),
			Limit:   src.GetInt("history.limit", d.History.Limit),
		},
		source: src.FilePath(),
	}

	cfg.expandEnvVars()
	return cfg, nil
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// Source returns the file the configuration was loaded from, or ""
func (c *Config) Source() string {
	return c.source
}

// ServerAddress returns host:port of the HTTP service
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Encode writes the configuration as "toml" or "yaml"
func (c *Config) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "toml":
		return toml.NewEncoder(w).Encode(c)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return mcerror.New("unsupported config format: " + format).
			WithCode(mcerror.CodeInvalidInput).
			WithOperation("config.Encode")
	}
}
