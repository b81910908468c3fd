// Package config loads, normalizes, and validates introcut configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// detectors and CLI need: intro bounds, per-extractor thresholds, external
// tool bindings, and logging output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, in-range thresholds, and clear validation errors.
package config
