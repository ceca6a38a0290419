package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/contentdeck/internal/content/http"
	"github.com/aussiebroadwan/contentdeck/internal/content/service"
	"github.com/aussiebroadwan/contentdeck/internal/content/store"
	"github.com/aussiebroadwan/contentdeck/internal/content/store/drivers/sqlite"
	"github.com/aussiebroadwan/contentdeck/pkg/reddit"
	"github.com/aussiebroadwan/contentdeck/pkg/slogx"
)

// BuildVersion is overridden at build time with
// -ldflags "-X github.com/aussiebroadwan/contentdeck/internal/content/app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application encapsulates the content service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	keys     *SessionKeys
	identity service.IdentityVerifier
	reddit   *reddit.Client

	// Services
	sessionService   *service.SessionService
	contentService   *service.ContentService
	filterService    *service.FilterService
	linkService      *service.LinkService
	lifecycleService *service.LifecycleService
	metricsJob       *service.MetricsJob

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "contentdeck",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	keys, err := InitKeys(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keys: %w", err)
	}
	app.keys = keys

	if err := app.initIdentity(); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.reddit = reddit.New(cfg.Reddit)
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.metricsJob.Start()

	app.logger.Info("content service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.metricsJob.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down content service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Waits for a running sweep, which stops at its next record once cancelled
	app.metricsJob.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("content service stopped")
	return nil
}

// initIdentity discovers the login provider. Without a client id outside
// prod, login is disabled rather than failing startup.
func (app *Application) initIdentity() error {
	if app.cfg.GoogleClientID == "" {
		if app.cfg.IsProd() {
			return errors.New("GOOGLE_CLIENT_ID is required in prod")
		}
		app.logger.Warn("GOOGLE_CLIENT_ID not configured, login is disabled")
		app.identity = disabledIdentity{}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	v, err := service.NewOIDCVerifier(ctx, app.cfg.GoogleIssuer, app.cfg.GoogleClientID)
	if err != nil {
		return fmt.Errorf("failed to initialize login provider: %w", err)
	}
	app.identity = v
	app.logger.Info("login provider ready", "issuer", app.cfg.GoogleIssuer)
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Store:           app.db,
		Identity:        app.identity,
		AccessSigner:    app.keys.AccessSigner,
		RefreshSigner:   app.keys.RefreshSigner,
		RefreshVerifier: app.keys.RefreshVerifier,
		Issuer:          app.cfg.SessionIssuer,
		AccessTTL:       app.cfg.AccessTTL,
		RefreshTTL:      app.cfg.RefreshTTL,
	}
	locks := &service.RecordLocks{}
	app.contentService = &service.ContentService{Store: app.db, Locks: locks}
	app.filterService = &service.FilterService{Store: app.db}
	app.linkService = &service.LinkService{
		Store:  app.db,
		Reddit: app.reddit,
		Sealer: app.keys.Sealer,
	}
	app.lifecycleService = &service.LifecycleService{
		Store:  app.db,
		Links:  app.linkService,
		Reddit: app.reddit,
		Locks:  locks,
	}
	app.metricsJob = service.NewMetricsJob(
		app.db,
		app.linkService,
		app.reddit,
		app.lifecycleService,
		app.logger,
		app.cfg.MetricsInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys.AccessVerifier,
		BuildVersion,
		app.db,
		app.logger,
		httpapi.Options{
			CORSOrigin:    app.cfg.CORSOrigin,
			SecureCookies: app.cfg.IsProd(),
			AuthLimit:     app.cfg.AuthLimit,
			RemoteLimit:   app.cfg.RemoteLimit,
			APILimit:      app.cfg.APILimit,
		},
	)

	// Wire services to router
	router.SessionService = app.sessionService
	router.ContentService = app.contentService
	router.FilterService = app.filterService
	router.LinkService = app.linkService
	router.LifecycleService = app.lifecycleService
	router.MetricsJob = app.metricsJob
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// disabledIdentity rejects every login.
type disabledIdentity struct{}

func (disabledIdentity) VerifyIDToken(context.Context, string) (service.Identity, error) {
	return service.Identity{}, fmt.Errorf("%w: login provider not configured", service.ErrInvalidIDToken)
}
