package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/db/postgres"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/server"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

// Application aggregates shared infrastructure (store, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool   *pgxpool.Pool
	sqlite *sql.DB
	redis  *redis.Client
	http   *http.Server

	warmer *question.CacheWarmer
}

// New bootstraps logger, store, optional Redis cache and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting application bootstrap")

	a := &Application{cfg: cfg, logger: logger}
	checks := make(map[string]server.HealthCheck, 2)

	var (
		questionRepo *repository.QuestionRepository
		categoryRepo *repository.CategoryRepository
	)
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN(), postgres.PoolConfig{
			MaxConns:        cfg.Postgres.MaxConns,
			MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pool = pool
		if cfg.Store.MigrateOnStart {
			db := stdlib.OpenDBFromPool(pool)
			err := migrations.Up(db, migrations.DriverPostgres)
			db.Close()
			if err != nil {
				pool.Close()
				return nil, err
			}
		}
		queries := postgres.New(pool)
		questionRepo = repository.NewQuestionRepository(queries)
		categoryRepo = repository.NewCategoryRepository(queries)
		checks["postgres"] = pool.Ping
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.sqlite = db
		if cfg.Store.MigrateOnStart {
			if err := migrations.Up(db, migrations.DriverSQLite); err != nil {
				db.Close()
				return nil, err
			}
		}
		queries := sqlite.New(db)
		questionRepo = repository.NewQuestionRepository(queries)
		categoryRepo = repository.NewCategoryRepository(queries)
		checks["sqlite"] = db.PingContext
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	var categoryCache question.CategoryCache
	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		cache := question.NewCache(a.redis, cfg.Cache.CategoryTTL)
		categoryCache = cache
		checks["redis"] = cache.Ping
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; category cache disabled")
	}

	questionSvc := question.NewService(
		questionRepo,
		categoryRepo,
		categoryCache,
		question.ServiceOptions{Logger: logger},
	)
	if categoryCache != nil && cfg.Cache.WarmInterval > 0 {
		a.warmer = question.NewCacheWarmer(questionSvc, cfg.Cache.WarmInterval, logger)
	}

	handlers := question.NewHTTPHandlers(questionSvc, logger)
	quizSocket := question.NewQuizSocket(questionSvc, ws.NewUpgrader(cfg.CORS.AllowedOrigins), logger)

	a.http = server.NewHTTPServer(cfg, logger, checks, handlers, quizSocket.HandleWebSocket)
	return a, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	if a.warmer != nil {
		go a.warmer.Run()
	}

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Str("base_path", a.cfg.BasePath).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	if a.warmer != nil {
		a.warmer.Stop()
	}
	a.close()

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

func (a *Application) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.sqlite != nil {
		if err := a.sqlite.Close(); err != nil {
			a.logger.Error().Err(err).Msg("sqlite shutdown error")
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}
