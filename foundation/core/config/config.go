// File: config.go
// Title: Core Configuration Management Implementation
// Description: Implements the Config type: loading, parsing and accessing
//              configuration data from TOML and YAML with environment
//              variable overrides.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-19 v0.2.0: Dropped file watching and lookup caches, deep default merge

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mcerror "github.com/msto63/mCALC/foundation/core/error"
)

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML

	// FormatAuto auto-detects format from file extension
	FormatAuto
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Config represents a configuration instance with thread-safe access
type Config struct {
	mu        sync.RWMutex
	data      map[string]interface{}
	filePath  string
	format    Format
	envPrefix string
}

// LoadOptions defines options for loading configuration
type LoadOptions struct {
	Format    Format                 // File format (default: auto-detect)
	EnvPrefix string                 // Environment variable prefix (default: none)
	Defaults  map[string]interface{} // Default values, nested maps allowed
}

// Load loads configuration from a file with default options
func Load(filePath string) (*Config, error) {
	return LoadWithOptions(filePath, LoadOptions{Format: FormatAuto})
}

// LoadWithOptions loads configuration from a file with custom options
func LoadWithOptions(filePath string, options LoadOptions) (*Config, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, mcerror.New("config file path cannot be empty").
			WithCode(mcerror.CodeValidationFailed).
			WithOperation("config.LoadWithOptions")
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mcerror.New(fmt.Sprintf("config file not found: %s", filePath)).
				WithCode(mcerror.CodeNotFound).
				WithOperation("config.LoadWithOptions").
				WithDetail("filePath", filePath)
		}
		return nil, mcerror.Wrap(err, "failed to read config file").
			WithCode(mcerror.CodeConfigError).
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath)
	}

	format := options.Format
	if format == FormatAuto {
		format = detectFormat(filePath)
	}

	data, err := parseContent(content, format)
	if err != nil {
		return nil, mcerror.Wrap(err, "failed to parse config file").
			WithCode(mcerror.CodeInvalidConfig).
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath).
			WithDetail("format", format.String())
	}

	return &Config{
		data:      mergeDefaults(data, options.Defaults),
		filePath:  filePath,
		format:    format,
		envPrefix: options.EnvPrefix,
	}, nil
}

// LoadFromString loads configuration from a string with specified format
func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}

	data, err := parseContent([]byte(content), format)
	if err != nil {
		return nil, mcerror.Wrap(err, "failed to parse config from string").
			WithCode(mcerror.CodeInvalidConfig).
			WithOperation("config.LoadFromString").
			WithDetail("format", format.String())
	}

	return &Config{data: data, format: format}, nil
}

// New returns a configuration holding only defaults. Environment overrides
// still apply when envPrefix is set.
func New(envPrefix string, defaults map[string]interface{}) *Config {
	return &Config{
		data:      mergeDefaults(nil, defaults),
		format:    FormatTOML,
		envPrefix: envPrefix,
	}
}

// WithEnvPrefix returns a copy that resolves environment overrides with prefix
func (c *Config) WithEnvPrefix(prefix string) *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &Config{
		data:      deepCopyMap(c.data),
		filePath:  c.filePath,
		format:    c.format,
		envPrefix: prefix,
	}
}

// detectFormat determines the configuration format from file extension
func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// parseContent parses configuration content based on format
func parseContent(content []byte, format Format) (map[string]interface{}, error) {
	data := make(map[string]interface{})

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, mcerror.Wrap(err, "TOML parse error").
				WithCode(mcerror.CodeInvalidConfig).
				WithOperation("config.parseContent")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, mcerror.Wrap(err, "YAML parse error").
				WithCode(mcerror.CodeInvalidConfig).
				WithOperation("config.parseContent")
		}
		if data == nil {
			data = make(map[string]interface{})
		}
	default:
		return nil, mcerror.New(fmt.Sprintf("unsupported format: %s", format)).
			WithCode(mcerror.CodeInvalidConfig).
			WithOperation("config.parseContent").
			WithDetail("format", format.String())
	}

	return data, nil
}

// mergeDefaults merges defaults under data; nested tables merge key by key
func mergeDefaults(data, defaults map[string]interface{}) map[string]interface{} {
	result := deepCopyMap(defaults)

	for k, v := range data {
		if sub, ok := v.(map[string]interface{}); ok {
			if defSub, ok := result[k].(map[string]interface{}); ok {
				result[k] = mergeDefaults(sub, defSub)
				continue
			}
		}
		result[k] = v
	}

	return result
}

func deepCopyMap(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		if sub, ok := v.(map[string]interface{}); ok {
			dst[k] = deepCopyMap(sub)
			continue
		}
		dst[k] = v
	}
	return dst
}

// GetString returns a string configuration value with optional default
func (c *Config) GetString(key string, defaultValue ...string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if envValue, ok := c.getEnvValue(key); ok {
		return envValue
	}

	value := c.getValue(key)
	if value == nil {
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// GetInt returns an integer configuration value with optional default
func (c *Config) GetInt(key string, defaultValue ...int) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if envValue, ok := c.getEnvValue(key); ok {
		if intVal, err := strconv.Atoi(envValue); err == nil {
			return intVal
		}
	}

	switch v := c.getValue(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if intVal, err := strconv.Atoi(v); err == nil {
			return intVal
		}
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// GetBool returns a boolean configuration value with optional default
func (c *Config) GetBool(key string, defaultValue ...bool) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if envValue, ok := c.getEnvValue(key); ok {
		if boolVal, err := strconv.ParseBool(envValue); err == nil {
			return boolVal
		}
	}

	switch v := c.getValue(key).(type) {
	case bool:
		return v
	case string:
		if boolVal, err := strconv.ParseBool(v); err == nil {
			return boolVal
		}
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// GetFloat returns a float64 configuration value with optional default
func (c *Config) GetFloat(key string, defaultValue ...float64) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if envValue, ok := c.getEnvValue(key); ok {
		if floatVal, err := strconv.ParseFloat(envValue, 64); err == nil {
			return floatVal
		}
	}

	switch v := c.getValue(key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if floatVal, err := strconv.ParseFloat(v, 64); err == nil {
			return floatVal
		}
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0.0
}

// GetDuration returns a time.Duration configuration value with optional default.
// Strings use time.ParseDuration, bare integers are taken as seconds.
func (c *Config) GetDuration(key string, defaultValue ...time.Duration) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if envValue, ok := c.getEnvValue(key); ok {
		if duration, err := time.ParseDuration(envValue); err == nil {
			return duration
		}
	}

	switch v := c.getValue(key).(type) {
	case string:
		if duration, err := time.ParseDuration(v); err == nil {
			return duration
		}
	case time.Duration:
		return v
	case int:
		return time.Duration(v) * time.Second
	case int64:
		return time.Duration(v) * time.Second
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// Has reports whether key is set in the file, the defaults or the environment
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.getEnvValue(key); ok {
		return true
	}
	return c.getValue(key) != nil
}

// Set stores value under a dot-notation key, creating intermediate tables
func (c *Config) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data == nil {
		c.data = make(map[string]interface{})
	}

	keys := strings.Split(key, ".")
	current := c.data
	for _, k := range keys[:len(keys)-1] {
		next, ok := current[k].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[k] = next
		}
		current = next
	}
	current[keys[len(keys)-1]] = value
}

// Keys returns all leaf keys in dot notation, sorted
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var keys []string
	var walk func(prefix string, m map[string]interface{})
	walk = func(prefix string, m map[string]interface{}) {
		for k, v := range m {
			full := k
			if prefix != "" {
				full = prefix + "." + k
			}
			if sub, ok := v.(map[string]interface{}); ok {
				walk(full, sub)
				continue
			}
			keys = append(keys, full)
		}
	}
	walk("", c.data)
	sort.Strings(keys)
	return keys
}

// FilePath returns the file the configuration was loaded from
func (c *Config) FilePath() string {
	return c.filePath
}

// Format returns the configuration format
func (c *Config) Format() Format {
	return c.format
}

// EnvKey returns the environment variable consulted for key, or "" without prefix
func (c *Config) EnvKey(key string) string {
	if c.envPrefix == "" {
		return ""
	}
	return strings.ToUpper(c.envPrefix + "_" + strings.ReplaceAll(key, ".", "_"))
}

// getValue retrieves a configuration value by dot-notation key
func (c *Config) getValue(key string) interface{} {
	current := c.data
	keys := strings.Split(key, ".")

	for i, k := range keys {
		if i == len(keys)-1 {
			return current[k]
		}
		next, ok := current[k].(map[string]interface{})
		if !ok {
			return nil
		}
		current = next
	}

	return nil
}

func (c *Config) getEnvValue(key string) (string, bool) {
	envKey := c.EnvKey(key)
	if envKey == "" {
		return "", false
	}
	value, ok := os.LookupEnv(envKey)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
