package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
	"github.com/gigsly/gigsly-client/internal/core/service"
	redisdb "github.com/gigsly/gigsly-client/internal/infrastructure/db/redis"
	"github.com/gigsly/gigsly-client/internal/infrastructure/gateway"
	"github.com/gigsly/gigsly-client/internal/infrastructure/queue"
	"github.com/gigsly/gigsly-client/internal/infrastructure/storage"
	"github.com/gigsly/gigsly-client/internal/pkg/config"
	"github.com/gigsly/gigsly-client/pkg/logger"
)

const (
	flagAPIURL   = "api-url"
	flagStore    = "store"
	flagStoreDir = "store-dir"
	flagLogLevel = "log-level"
	flagJSON     = "json"
)

// app is one client process: a single session controller shared by the
// navigator, the page checks and every backend call.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	out     io.Writer
	asJSON  bool
	store   ports.SessionStore
	events  *queue.Dispatcher
	session *service.SessionController
	nav     *service.Navigator
	market  ports.MarketplaceAPI

	closers []func() error
}

func newApp(ctx context.Context, root *cli.Command) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, root)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Output:  root.ErrWriter,
		Service: "gigsly",
	})

	a := &app{cfg: cfg, log: log, out: root.Writer, asJSON: root.Bool(flagJSON)}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	a.store = store

	gw := gateway.New(cfg.APIBaseURL(), store, logger.Component("gateway"), gateway.WithTimeout(cfg.API.Timeout))

	a.events = queue.NewDispatcher(0, log)
	a.events.Subscribe(a.noticeEviction)

	a.session = service.NewSessionController(store, gateway.NewAuthAPI(gw), a.events, logger.Component("session"))
	gw.OnUnauthorized(a.session.HandleUnauthorized)

	a.nav = service.NewNavigator(a.session, a.events, logger.Component("navigator"))
	a.market = gateway.NewMarketplaceAPI(gw)
	return a, nil
}

// applyFlags lets explicitly set flags override the environment config.
func applyFlags(cfg *config.Config, root *cli.Command) {
	if v := root.String(flagAPIURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := root.String(flagStore); v != "" {
		cfg.Store.Driver = v
	}
	if v := root.String(flagStoreDir); v != "" {
		cfg.Store.Dir = v
	}
	if v := root.String(flagLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

func (a *app) openStore(ctx context.Context) (ports.SessionStore, error) {
	switch a.cfg.Store.Driver {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "redis":
		client, err := redisdb.Connect(ctx, redisConfig(a.cfg))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return redisdb.NewSessionStore(client, a.cfg.Store.KeyPrefix, logger.Component("store")), nil
	case "file", "":
		dir, err := a.cfg.StoreDir()
		if err != nil {
			return nil, err
		}
		return storage.NewFileStore(dir, logger.Component("store")), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", a.cfg.Store.Driver)
	}
}

func redisConfig(cfg *config.Config) redisdb.Config {
	return redisdb.Config{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		MasterName: cfg.Redis.MasterName,
	}
}

// noticeEviction tells the user when the backend ended their session.
func (a *app) noticeEviction(ev domain.SessionEvent) {
	if ev.Reason == domain.ReasonEvicted || (ev.Reason == domain.ReasonExpired && ev.Previous.State == domain.StateHydrating) {
		a.log.Warn().Msg("your session has expired, run `gigsly login` to continue")
	}
}

// Close drains pending session events and releases the store.
func (a *app) Close() {
	a.nav.Close()
	a.events.Close()
	for _, c := range a.closers {
		_ = c()
	}
}

// ready blocks until the stored session has been validated.
func (a *app) ready(ctx context.Context) error {
	if err := a.session.WaitReady(ctx); err != nil {
		return fmt.Errorf("waiting for session: %w", err)
	}
	return nil
}

// enter opens page the way the web client would and, when action is set,
// runs the role check its submit button runs.
func (a *app) enter(ctx context.Context, page string, action domain.Action) error {
	if err := a.ready(ctx); err != nil {
		return err
	}

	if d := a.nav.Navigate(page); d.Outcome == domain.GuardRedirect {
		return fmt.Errorf("%s requires an account, run `gigsly login` first", page)
	}
	if action == "" {
		return nil
	}

	switch d := service.Resolve(action, a.session.User()); d.Outcome {
	case domain.OutcomeRedirectToAuth:
		return fmt.Errorf("log in to continue, run `gigsly login`")
	case domain.OutcomeDenyWithNotice:
		return fmt.Errorf("%s: %s", d.Notice.Title, d.Notice.Description)
	}
	return nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// withApp builds the app for one command invocation and tears it down after.
func withApp(fn func(ctx context.Context, cmd *cli.Command, a *app) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		a, err := newApp(ctx, cmd.Root())
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, cmd, a)
	}
}
