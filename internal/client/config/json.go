package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/monacovault/vaultctl/internal/flagx"
	"github.com/monacovault/vaultctl/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds.
type JSONConfig struct {
	ServerEndpointURL string         `json:"server_endpoint_url"`
	DatabaseDSN       string         `json:"database_dsn"`
	DeviceSecretPath  string         `json:"device_secret_path"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
}

// parseJSON overlays cfg with values from the JSON file named by the -c or
// -config flag. Without the flag nothing is loaded. Only fields present in
// the file override; a read or unmarshal error panics, matching the
// fail-fast posture of startup configuration.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JSONConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointURL != "" {
		cfg.ServerEndpointURL = jc.ServerEndpointURL
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.DeviceSecretPath != "" {
		cfg.DeviceSecretPath = jc.DeviceSecretPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
