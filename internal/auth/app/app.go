package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	httpapi "github.com/aussiebroadwan/readinglog/internal/auth/http"
	"github.com/aussiebroadwan/readinglog/internal/auth/service"
	"github.com/aussiebroadwan/readinglog/internal/auth/social"
	"github.com/aussiebroadwan/readinglog/internal/auth/store"
	"github.com/aussiebroadwan/readinglog/internal/auth/store/drivers/redis"
	"github.com/aussiebroadwan/readinglog/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/readinglog/pkg/jwtx"
	"github.com/aussiebroadwan/readinglog/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application owns every long lived dependency of the auth service.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db        store.Store
	blacklist store.Blacklist
	redis     *redis.Blacklist // nil unless the redis driver is selected
	codec     *jwtx.Codec

	authenticator *service.Authenticator
	members       *service.MemberService
	housekeeping  *service.HousekeepingService
	profiles      *social.Client

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "readinglog-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initBlacklist(ctx); err != nil {
		app.closeStores()
		return nil, err
	}

	codec, err := InitCodec(cfg, app.logger)
	if err != nil {
		app.closeStores()
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	profiles, err := social.NewClient(cfg.Providers(), nil)
	if err != nil {
		app.closeStores()
		return nil, fmt.Errorf("failed to initialize oauth2 providers: %w", err)
	}
	app.profiles = profiles

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run serves HTTP and runs housekeeping until ctx is cancelled, then shuts
// down gracefully.
func (app *Application) Run(ctx context.Context) error {
	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return app.housekeeping.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutdown requested", "cause", context.Cause(gctx))
		return app.Shutdown()
	})

	return g.Wait()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	var errs []error
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
		errs = append(errs, err)
	}

	errs = append(errs, app.closeStores())

	app.logger.Info("auth service stopped")
	return errors.Join(errs...)
}

func (app *Application) closeStores() error {
	var errs []error
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// initDatabase initializes the database and applies migrations
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

func (app *Application) initBlacklist(ctx context.Context) error {
	if app.cfg.BlacklistDriver != BlacklistRedis {
		app.blacklist = app.db.Blacklist()
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	bl, err := redis.NewBlacklist(ctx, app.cfg.RedisURL, app.cfg.RedisPrefix)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redis = bl
	app.blacklist = bl
	app.logger.Info("using redis token blacklist", "prefix", app.cfg.RedisPrefix)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authenticator = &service.Authenticator{
		Store:                 app.db,
		Blacklist:             &service.TokenBlacklist{Store: app.blacklist},
		Codec:                 service.UnauthorizedOnFailure(service.NewTokenCodec(app.codec)),
		RevokeRefreshOnLogout: app.cfg.RevokeRefreshOnLogout,
		AdminEmails:           app.cfg.AdminEmails,
	}
	app.members = &service.MemberService{Store: app.db}
	app.housekeeping = service.NewHousekeepingService(
		app.db.RefreshTokens(),
		app.blacklist,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	var blacklistPinger httpapi.Pinger
	if app.redis != nil {
		blacklistPinger = app.redis
	}

	router := httpapi.NewRouter(
		app.codec.Keys(),
		BuildVersion,
		app.db,
		blacklistPinger,
		app.logger,
	)

	router.Authenticator = app.authenticator
	router.Members = app.members
	router.Profiles = app.profiles
	router.Authorize = app.profiles
	router.Housekeeping = app.housekeeping
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
