// Package config loads, normalizes, and validates napcon configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NAPCON_LOG_LEVEL. The Config type centralizes every knob the consolidator
// and CLI need so input folders, output tables, and the processed log are
// resolved in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
