// Package config handles configuration loading for bookwarden.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable
// expansion. The package provides validation and sensible defaults.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from BOOKWARDEN_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/bookwarden/bookwarden.yaml
//  3. ~/.config/bookwarden/bookwarden.yaml
//
// When no file exists, Default() supplies a working configuration so
// first runs need no setup.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  admin_password: "${BOOKWARDEN_ADMIN_PASSWORD}"
//
// Syntax: ${VAR_NAME}. Unset variables expand to the empty string.
//
// # Configuration Sections
//
// Data directory:
//
//	data:
//	  dir: "~/.local/share/bookwarden"
//
// Built-in admin credentials:
//
//	auth:
//	  admin_username: "admin"
//	  admin_password: "admin123"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Validation
//
// Load() validates:
//
//   - data.dir is set
//   - logging.level is one of the known levels
//   - logging.format is text or json
package config
