package config

import (
	"flag"
	"os"
	"time"

	"github.com/givehub/givehub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the platform API (default from Config)
//	-d string   data directory for the credentials database
//	-r int      profile re-verification interval in seconds (0 disables)
//	-i int      health check interval in seconds
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the platform API")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for local files")
	refreshInterval := fs.Int("r", int(cfg.ProfileRefreshInterval.Seconds()), "profile re-verification interval (in seconds, 0 disables)")
	healthInterval := fs.Int("i", int(cfg.HealthCheckInterval.Seconds()), "health check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ProfileRefreshInterval = time.Duration(*refreshInterval) * time.Second
	cfg.HealthCheckInterval = time.Duration(*healthInterval) * time.Second
}
