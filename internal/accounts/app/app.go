package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/gymloop/accounts/internal/accounts/http"
	"github.com/gymloop/accounts/internal/accounts/service"
	"github.com/gymloop/accounts/internal/accounts/store"
	"github.com/gymloop/accounts/internal/accounts/store/drivers/sqlite"
	"github.com/gymloop/accounts/pkg/cryptox"
	"github.com/gymloop/accounts/pkg/jwtx"
	"github.com/gymloop/accounts/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the accounts service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	signer jwtx.Signer
	keys   *jwtx.KeySet

	// Services
	tokenService     *service.TokenService
	userService      *service.UserService
	profileService   *service.ProfileService
	authService      *service.AuthService
	bootstrapService *service.BootstrapService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates an Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "accounts-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initKeys(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()

	if err := app.bootstrapService.EnsureAdmin(
		context.Background(),
		cfg.AdminUsername,
		cfg.AdminPassword,
	); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("accounts service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down accounts service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("accounts service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

// initKeys generates the ephemeral session signing key. Outstanding tokens
// are invalidated on restart, which is acceptable for 1h sessions.
func (app *Application) initKeys() error {
	signer, err := jwtx.NewEphemeralSigner()
	if err != nil {
		return fmt.Errorf("failed to initialize signing key: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return fmt.Errorf("failed to register signing key: %w", err)
	}

	app.signer = signer
	app.keys = keys
	app.logger.Info("session signing key generated", "kid", signer.KID())
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Signer:     app.signer,
		Issuer:     app.cfg.Issuer,
		SessionTTL: app.cfg.AccessTokenTTL,
	}

	app.userService = &service.UserService{Store: app.db}
	app.profileService = &service.ProfileService{Store: app.db}
	app.authService = &service.AuthService{
		Users:    app.userService,
		Profiles: app.profileService,
		Tokens:   app.tokenService,
	}
	app.bootstrapService = &service.BootstrapService{
		Store:    app.db,
		Users:    app.userService,
		Profiles: app.profileService,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	verifier := jwtx.NewVerifierEdDSA(app.keys, app.cfg.Issuer)

	router := httpapi.NewRouter(
		app.keys,
		verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.UserService = app.userService
	router.ProfileService = app.profileService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
