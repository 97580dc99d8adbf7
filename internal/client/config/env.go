package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is the DTO for environment overlays.
type envConfig struct {
	ServerEndpointURL string        `env:"VAULTCTL_SERVER_URL"`
	DatabaseDSN       string        `env:"VAULTCTL_DATABASE_DSN"`
	DeviceSecretPath  string        `env:"VAULTCTL_DEVICE_SECRET"`
	RequestTimeout    time.Duration `env:"VAULTCTL_REQUEST_TIMEOUT"`
}

// parseEnv overlays cfg with values from VAULTCTL_* environment variables.
// Unset variables leave the current values untouched.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.ServerEndpointURL != "" {
		cfg.ServerEndpointURL = ec.ServerEndpointURL
	}
	if ec.DatabaseDSN != "" {
		cfg.DatabaseDSN = ec.DatabaseDSN
	}
	if ec.DeviceSecretPath != "" {
		cfg.DeviceSecretPath = ec.DeviceSecretPath
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
}
