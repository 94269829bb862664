package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"xprlink/internal/domain"
	sessionsvc "xprlink/internal/services/session"
	"xprlink/internal/store"
	"xprlink/internal/walletlink"
)

// App bundles the store, wallet-link client and session controller for the CLI.
type App struct {
	Config   *Config
	Store    domain.SessionStore
	Link     *walletlink.Client
	Sessions *sessionsvc.Controller
	Log      *zap.Logger
}

// New constructs the dependency graph from cfg. Login prompts are written
// to out; a nil logger disables logging.
func New(cfg *Config, out io.Writer, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	sessions := store.NewSessionFileStore(cfg.Home, cfg.Passphrase)

	httpClient := &http.Client{Timeout: cfg.Timeout}
	client, err := walletlink.New(walletlink.Config{
		RelayURL:  cfg.RelayURL,
		Store:     sessions,
		Presenter: walletlink.TerminalPresenter{Out: out},
		HTTP:      httpClient,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("wallet link: %w", err)
	}

	ctrl := sessionsvc.New(client, sessionsvc.Options{
		Link:           cfg.LinkOptions(),
		TokenContract:  cfg.TokenContract,
		TokenSymbol:    cfg.TokenSymbol,
		TokenPrecision: sessionsvc.Precision(cfg.TokenPrecision),
		Logger:         log,
	})

	return &App{
		Config:   cfg,
		Store:    sessions,
		Link:     client,
		Sessions: ctrl,
		Log:      log,
	}, nil
}

// Restore re-establishes the persisted session, if any. It reports whether
// a session is active afterwards; a missing stored session is not an error.
func (a *App) Restore(ctx context.Context) (bool, error) {
	err := a.Sessions.Login(ctx, true)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNoStoredSession):
		return false, nil
	default:
		return false, err
	}
}

// WithTimeout derives a context bounded by the configured timeout.
func (a *App) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.Config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.Config.Timeout)
}
