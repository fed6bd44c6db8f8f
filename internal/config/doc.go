// Package config loads, normalizes, and validates panostitch configuration data.
//
// It supplies repository defaults (panorama mode, a 0.1 confidence threshold,
// a 0.85 resize factor), expands user paths including tilde shortcuts, and
// reads TOML files from ~/.config/panostitch/config.toml or ./panostitch.toml.
// Command-line flags are layered on top by the CLI, which calls Normalize and
// Validate again after applying them.
//
// Always obtain settings through this package so downstream code receives
// canonical enum values and clear validation errors.
package config
