// Package config loads application configuration from environment
// variables (TOBACCO_* prefix) merged with an optional YAML file, with
// environment values taking precedence. It also owns logger construction
// and output directory creation, so cmd binaries stay thin.
package config
