// Package cli provides the Cobra command tree and dependency injection
// wiring for the folio CLI. This file defines the Dependencies struct
// (Composition Root) that wires all domain modules together.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/redis/go-redis/v9"

	"github.com/itson-folio/folio/internal/api"
	"github.com/itson-folio/folio/internal/config"
	"github.com/itson-folio/folio/internal/notify"
	"github.com/itson-folio/folio/internal/pages"
	"github.com/itson-folio/folio/internal/session"
	"github.com/itson-folio/folio/internal/ui"
	"github.com/itson-folio/folio/internal/view"
)

// Options are the command-line values that shape dependency wiring.
// Non-zero values override the loaded configuration.
type Options struct {
	ConfigDir string
	APIURL    string
	Session   string
	NoColor   bool
	Headless  bool
	Verbose   bool
	Out       io.Writer
	Err       io.Writer
}

// Dependencies holds all domain-level services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Config   *config.ConfigManager
	Logger   *slog.Logger
	Theme    *ui.Theme
	Headless *ui.HeadlessManager
	Session  session.Store
	API      pages.API
	Notifier notify.Notifier
	Prompt   ui.Prompter
	Panel    ui.Panel
	Renderer *view.Renderer
	Out      io.Writer
}

// deps is the global dependencies instance, set by the root command's
// PersistentPreRunE or by SetDeps.
var deps *Dependencies

// @MX:ANCHOR: [AUTO] InitDependencies is the Composition Root that wires all domain modules
// @MX:REASON: [AUTO] every command reaches the API, session and UI through the value it builds
// InitDependencies loads the configuration, applies opts and wires every
// dependency.
func InitDependencies(opts Options) (*Dependencies, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	mgr := config.NewConfigManager(slog.New(slog.NewTextHandler(opts.Err, &slog.HandlerOptions{Level: slog.LevelWarn})))
	if _, err := mgr.Load(opts.ConfigDir); err != nil {
		return nil, err
	}
	if err := mgr.Update(func(c *config.Config) { applyOptions(c, opts) }); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	logger := newLogger(opts.Err, cfg.Log.Level, opts.Verbose)

	hm := ui.NewHeadlessManager()
	if opts.Headless {
		hm.ForceHeadless(true)
	}
	theme := ui.NewTheme(ui.ThemeConfig{
		NoColor: cfg.UI.NoColor || os.Getenv("NO_COLOR") != "",
		Mode:    themeMode(cfg.UI.Theme, hm),
	})

	backend, err := newSessionBackend(cfg, mgr.Dir())
	if err != nil {
		return nil, err
	}
	store := session.NewStore(backend, logger)

	d := &Dependencies{
		Config:   mgr,
		Logger:   logger,
		Theme:    theme,
		Headless: hm,
		Session:  store,
		API:      api.NewClient(cfg.API.BaseURL, store, api.WithLogger(logger)),
		Notifier: notify.NewSurface(
			notify.WithWriter(opts.Err),
			notify.WithStyles(notify.Styles{Info: theme.Info, Success: theme.Success, Error: theme.Error}),
		),
		Prompt:   ui.NewPrompts(theme, hm),
		Panel:    ui.NewTermPanel(theme, hm, opts.Out, opts.Err),
		Renderer: view.NewRenderer(theme, cfg.UI.Width),
		Out:      opts.Out,
	}
	logger.Debug("dependencies ready",
		"api", cfg.API.BaseURL,
		"session", cfg.Session.Backend,
		"config_dir", mgr.Dir(),
		"headless", hm.IsHeadless(),
	)
	return d, nil
}

// GetDeps returns the current Dependencies instance.
// Returns nil before the first command runs.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// Env builds the page environment.
func (d *Dependencies) Env() *pages.Env {
	shared := false
	if d.Config != nil && d.Config.Get() != nil {
		shared = d.Config.Get().UI.SharedForm
	}
	return &pages.Env{
		Session:    d.Session,
		API:        d.API,
		Notify:     d.Notifier,
		Prompt:     d.Prompt,
		Panel:      d.Panel,
		Renderer:   d.Renderer,
		Logger:     d.Logger,
		SharedForm: shared,
	}
}

func applyOptions(c *config.Config, opts Options) {
	if opts.APIURL != "" {
		c.API.BaseURL = opts.APIURL
	}
	if opts.Session != "" {
		c.Session.Backend = opts.Session
	}
	if opts.NoColor {
		c.UI.NoColor = true
	}
	if opts.Verbose {
		c.Log.Level = "debug"
	}
}

func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// themeMode resolves "auto" from the terminal background. Headless runs
// never query the terminal.
func themeMode(mode string, hm *ui.HeadlessManager) string {
	if mode != "auto" {
		return mode
	}
	if hm.IsHeadless() || lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func newSessionBackend(cfg *config.Config, dir string) (session.Backend, error) {
	switch cfg.Session.Backend {
	case config.BackendMemory:
		return session.NewMemoryBackend(), nil
	case config.BackendRedis:
		rc := cfg.Session.Redis
		client := redis.NewClient(&redis.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		})
		b := session.NewRedisBackend(client, session.RedisOptions{Prefix: rc.Prefix, TTL: rc.TTL})
		if err := b.Ping(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis session backend at %s: %w", rc.Addr, err)
		}
		return b, nil
	default:
		return session.NewFileBackend(dir), nil
	}
}
