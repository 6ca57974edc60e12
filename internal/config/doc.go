// Package config loads and validates runtime configuration for appsim.
//
// Configuration is read from `config/config.yaml` and can be overridden via
// environment variables with the APP_ prefix (see `internal/config/config.go`
// for keys).
package config
