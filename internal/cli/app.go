package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"

	"github.com/leish-app/leish-go/internal/api"
	"github.com/leish-app/leish-go/internal/config"
	"github.com/leish-app/leish-go/internal/logging"
	"github.com/leish-app/leish-go/internal/services"
	"github.com/leish-app/leish-go/internal/session"
	"github.com/leish-app/leish-go/internal/settings"
	"github.com/leish-app/leish-go/internal/storage"

	_ "modernc.org/sqlite"
)

// App wires the whole client together: config, durable storage, API client,
// auth service, and the session and settings stores the REPL renders from.
type App struct {
	config   *config.Config
	db       *sql.DB
	store    *storage.Service
	api      *api.Client
	auth     services.AuthService
	session  *session.Store
	settings *settings.Store
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewDefault(parseLevel(cfg.LogLevel))

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "failed to open local storage", "path", cfg.DatabasePath, "err", err)
		return nil, err
	}

	store := storage.NewService(storage.NewSQLiteRepository(db), log)

	apiClient := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Tokens:  store,
		Auth:    store,
		Logger:  log,
	})

	auth := services.NewAuthService(apiClient, store, log)

	return &App{
		config:   cfg,
		db:       db,
		store:    store,
		api:      apiClient,
		auth:     auth,
		session:  session.New(auth, store, log),
		settings: settings.New(cfg.APIBaseURL),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run restores any persisted session and hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	a.session.Initialize(ctx)
	runREPL(ctx, a, a.statusLine, bufio.NewScanner(os.Stdin))
}

// Close releases the storage handle.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.State().User != nil
}

func (a *App) statusLine() string {
	state := a.session.State()
	if state.User == nil {
		return "anonymous"
	}
	return state.User.Email
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
