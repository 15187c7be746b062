package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/phrazzld/vortex-api/internal/config"
	"github.com/phrazzld/vortex-api/internal/domain/srs"
	"github.com/phrazzld/vortex-api/internal/platform/clock"
	"github.com/phrazzld/vortex-api/internal/platform/postgres"
	"github.com/phrazzld/vortex-api/internal/platform/sqlite"
	"github.com/phrazzld/vortex-api/internal/service/auth"
	"github.com/phrazzld/vortex-api/internal/service/collections"
	"github.com/phrazzld/vortex-api/internal/service/engagement"
	"github.com/phrazzld/vortex-api/internal/service/mission"
	"github.com/phrazzld/vortex-api/internal/service/review"
	"github.com/phrazzld/vortex-api/internal/service/words"
	"github.com/phrazzld/vortex-api/internal/store"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Exactly one backend is non-nil, selected by database.driver.
	db          *sql.DB
	sqliteStore *sqlite.Store

	userStore       store.UserStore
	wordStore       store.WordStore
	statsStore      store.StatsStore
	historyStore    store.HistoryStore
	collectionStore store.CollectionStore

	jwtService         auth.JWTService
	passwordHasher     auth.PasswordHasher
	passwordVerifier   auth.PasswordVerifier
	clock              clock.Clock
	wordsService       *words.Service
	collectionsService *collections.Service
	missionService     *mission.Service
	reviewService      review.ReviewService
}

// newApplication creates an application instance with all dependencies
// initialized: storage backend, migrations, auth and domain services.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		clock:  clock.NewSystem(),
	}

	if err := app.setupStores(ctx); err != nil {
		return nil, err
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BCryptCost)
	app.passwordVerifier = auth.NewBcryptVerifier()

	intervals := intervalsFromConfig(cfg.SRS)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	sweeper := engagement.NewSweeper(app.wordStore, app.statsStore, app.collectionStore, app.clock, logger)
	app.wordsService = words.NewService(app.wordStore, sweeper, app.clock, logger)
	app.collectionsService = collections.NewService(app.collectionStore, sweeper, app.clock, logger)
	app.missionService = mission.NewService(app.wordStore, app.statsStore, app.clock, rng, logger)
	app.reviewService = review.NewReviewService(
		app.wordStore,
		app.statsStore,
		app.historyStore,
		app.collectionStore,
		app.clock,
		intervals,
		rng,
		logger,
	)

	logger.Info("application initialized")
	return app, nil
}

// setupStores opens the configured storage backend, runs migrations and
// constructs the store implementations.
func (app *application) setupStores(ctx context.Context) error {
	cfg := app.config
	switch cfg.Database.Driver {
	case "postgres":
		db, err := sql.Open("pgx", cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to open database connection: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			return err
		}
		app.logger.Info("database connection established", "driver", "postgres")

		app.db = db
		app.userStore = postgres.NewPostgresUserStore(db, app.logger)
		app.wordStore = postgres.NewPostgresWordStore(db, app.logger)
		app.statsStore = postgres.NewPostgresStatsStore(db, app.logger)
		app.historyStore = postgres.NewPostgresHistoryStore(db, app.logger)
		app.collectionStore = postgres.NewPostgresCollectionStore(db, app.logger)
		return nil

	case "sqlite":
		st, err := sqlite.Open(cfg.Database.URL, app.logger)
		if err != nil {
			return err
		}
		app.logger.Info("database connection established", "driver", "sqlite")

		app.sqliteStore = st
		app.userStore = st
		app.wordStore = st
		app.statsStore = st
		app.historyStore = st.History()
		app.collectionStore = st.Collections()
		return nil

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// intervalsFromConfig builds the scheduling interval table, starting
// from the defaults and applying any configured overrides.
func intervalsFromConfig(cfg config.SRSConfig) srs.Intervals {
	intervals := srs.DefaultIntervals()
	if cfg.NewInterval > 0 {
		intervals.New = cfg.NewInterval
	}
	if cfg.LearningInterval > 0 {
		intervals.Learning = cfg.LearningInterval
	}
	if cfg.MasteredInterval > 0 {
		intervals.Mastered = cfg.MasteredInterval
	}
	if cfg.ForgotInterval > 0 {
		intervals.Forgot = cfg.ForgotInterval
	}
	if cfg.FastMasteryWindow > 0 {
		intervals.FastMasteryWindow = cfg.FastMasteryWindow
	}
	return intervals
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	if app.sqliteStore != nil {
		if err := app.sqliteStore.Close(); err != nil {
			app.logger.Error("error closing sqlite store", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
