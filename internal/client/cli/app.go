// Package cli is the interactive terminal front end of the GiveHub client.
// It wires the credential store, API gateway, and session controller
// together and renders the role-gated dashboard views.
package cli

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/givehub/givehub/internal/client/config"
	"github.com/givehub/givehub/internal/client/credstore"
	"github.com/givehub/givehub/internal/client/gateway"
	"github.com/givehub/givehub/internal/client/session"
	"github.com/givehub/givehub/internal/filex"
	"github.com/givehub/givehub/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config  *config.Config
	session *session.Controller
	api     gateway.Client
	logger  logging.Logger
	Mode    Mode
	reader  *bufio.Reader
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	dataDir := cfg.DataDir
	if dataDir == "" {
		var err error
		dataDir, err = filex.EnsureDataDir("givehub")
		if err != nil {
			return nil, err
		}
	}

	db, err := credstore.Open(ctx, filepath.Join(dataDir, "credentials.db"))
	if err != nil {
		logger.Error(ctx, "error initializing credentials database", "err", err)
		return nil, err
	}

	store := credstore.NewSQLiteStore(db)
	api := gateway.NewHTTPClient(gateway.Options{
		BaseURL:        cfg.APIBaseURL,
		Tokens:         store,
		Logger:         logger.With("component", "gateway"),
		RequestTimeout: cfg.RequestTimeout,
	})
	ctrl := session.NewController(store, api, logger.With("component", "session"))

	return &App{
		config:  cfg,
		session: ctrl,
		api:     api,
		logger:  logger,
		Mode:    ModeOffline,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.logger.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	a.session.Hydrate(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.HealthCheckInterval)
	if a.config.ProfileRefreshInterval > 0 {
		go a.session.StartProfileRefresh(ctx, a.config.ProfileRefreshInterval)
	}

	a.Root(ctx)
}

// StartOnlineStatusWatcher probes API reachability on a fixed interval and
// flips the online/offline indicator. It never touches the session: an
// unreachable backend must not log anyone out.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.api.Health(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
