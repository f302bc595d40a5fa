// Package config holds runtime settings for the GiveHub client.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - APIBaseURL: root of the platform API, including the version prefix.
//   - DataDir: directory for local data (credentials database). Empty
//     means "resolve a per-user default at startup".
//   - RequestTimeout: per-request HTTP timeout.
//   - ProfileRefreshInterval: how often the stored identity is re-verified
//     against the backend while a session is active. Zero disables the
//     periodic re-check (hydration still verifies once).
//   - HealthCheckInterval: how often the client probes API reachability
//     for the online/offline indicator.
type Config struct {
	APIBaseURL             string
	DataDir                string
	RequestTimeout         time.Duration
	ProfileRefreshInterval time.Duration
	HealthCheckInterval    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api/v1"
	c.DataDir = ""
	c.RequestTimeout = 15 * time.Second
	c.ProfileRefreshInterval = 5 * time.Minute
	c.HealthCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present), a JSON file
// (if given via -c/-config), and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
