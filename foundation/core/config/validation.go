// File: validation.go
// Title: Configuration Validation
// Description: Rule-based validation of configuration values.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with type, bounds and pattern rules
// - 2026-10-19 v0.2.0: Reduced to required, integer bounds and enumerations

package config

import (
	"fmt"
	"sort"
	"strings"

	mcerror "github.com/msto63/mCALC/foundation/core/error"
)

// ValidationRule defines validation criteria for a configuration value
type ValidationRule struct {
	Required bool     // Whether the key must be present
	Min      *int     // Inclusive lower bound for integer values
	Max      *int     // Inclusive upper bound for integer values
	OneOf    []string // Allowed values for strings, compared case-insensitively
}

// ValidationRules maps configuration keys to their validation rules
type ValidationRules map[string]ValidationRule

// IntPtr is a helper for building Min/Max bounds
func IntPtr(v int) *int {
	return &v
}

// Validate checks the configuration against rules and returns an
// INVALID_CONFIG error listing every violation, or nil.
func (c *Config) Validate(rules ValidationRules) error {
	keys := make([]string, 0, len(rules))
	for key := range rules {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var problems []string
	for _, key := range keys {
		if err := c.validateField(key, rules[key]); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) == 0 {
		return nil
	}

	return mcerror.New("invalid configuration: " + strings.Join(problems, "; ")).
		WithCode(mcerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("violations", problems)
}

func (c *Config) validateField(key string, rule ValidationRule) error {
	if !c.Has(key) {
		if rule.Required {
			return fmt.Errorf("required field '%s' is missing", key)
		}
		return nil
	}

	if rule.Min != nil || rule.Max != nil {
		value := c.GetInt(key)
		if rule.Min != nil && value < *rule.Min {
			return fmt.Errorf("field '%s' is %d, minimum is %d", key, value, *rule.Min)
		}
		if rule.Max != nil && value > *rule.Max {
			return fmt.Errorf("field '%s' is %d, maximum is %d", key, value, *rule.Max)
		}
	}

	if len(rule.OneOf) > 0 {
		value := c.GetString(key)
		for _, allowed := range rule.OneOf {
			if strings.EqualFold(value, allowed) {
				return nil
			}
		}
		return fmt.Errorf("field '%s' is %q, expected one of %s", key, value, strings.Join(rule.OneOf, ", "))
	}

	return nil
}
