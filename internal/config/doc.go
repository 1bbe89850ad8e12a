// Package config provides application configuration loaded from an optional
// YAML file next to the executable, overridden by COVID_-prefixed environment
// variables, plus the centralized executable-relative path layout.
package config
