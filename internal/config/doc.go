// Package config holds configuration for the scanner.
//
// Configuration flows from CLI flags (and an optional YAML file) into a
// single Config struct that is passed through the application via
// dependency injection; there is no global configuration state.
// Defaults live here as named constants so every component agrees on
// them.
package config
