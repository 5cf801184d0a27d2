// Package config loads the tool configuration from YAML, with defaults
// suitable for a plain working-directory layout.
package config
