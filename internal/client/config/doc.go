// Package config loads runtime configuration for the vaultctl CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables with the VAULTCTL_ prefix.
//  4. Command-line flags, which override everything before them.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-d string   path of the local session database
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_url": "https://vault.example.com/api",
//	  "database_dsn": "vaultctl.db",
//	  "device_secret_path": "vaultctl.secret",
//	  "request_timeout": "30s"
//	}
package config
