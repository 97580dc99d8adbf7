package config

import "time"

// Config holds runtime settings for the vaultctl CLI.
//
// Fields:
//   - ServerEndpointURL: base URL of the backend REST API.
//   - DatabaseDSN: path of the local SQLite session database.
//   - DeviceSecretPath: path of the per-install device secret file.
//   - RequestTimeout: per-request timeout applied by the CLI.
type Config struct {
	ServerEndpointURL string
	DatabaseDSN       string
	DeviceSecretPath  string
	RequestTimeout    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080/api"
	c.DatabaseDSN = "vaultctl.db"
	c.DeviceSecretPath = "vaultctl.secret"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
