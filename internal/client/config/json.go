package config

import (
	"encoding/json"
	"os"

	"github.com/givehub/givehub/internal/flagx"
	"github.com/givehub/givehub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// may be given as strings like "30s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL             string         `json:"api_base_url"`
	DataDir                string         `json:"data_dir"`
	RequestTimeout         timex.Duration `json:"request_timeout"`
	ProfileRefreshInterval timex.Duration `json:"profile_refresh_interval"`
	HealthCheckInterval    timex.Duration `json:"health_check_interval"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flags. Missing flag means no JSON is loaded. Only fields
// present in the file override the current values. Panics on read or
// unmarshal errors, matching the fail-fast startup policy.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ProfileRefreshInterval.Duration != 0 {
		cfg.ProfileRefreshInterval = jc.ProfileRefreshInterval.Duration
	}
	if jc.HealthCheckInterval.Duration != 0 {
		cfg.HealthCheckInterval = jc.HealthCheckInterval.Duration
	}
}
