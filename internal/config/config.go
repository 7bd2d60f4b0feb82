package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	BasePath                string        `env:"BASE_PATH" envDefault:"/api/trivia"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`
	StartupTimeout          time.Duration `env:"STARTUP_TIMEOUT" envDefault:"10s"`

	Store    Store
	Postgres Postgres
	SQLite   SQLite
	Redis    Redis
	Cache    Cache
	CORS     CORS
}

// Store selects the persistence backend.
type Store struct {
	Driver         string `env:"STORE_DRIVER" envDefault:"postgres"`
	MigrateOnStart bool   `env:"STORE_MIGRATE_ON_START" envDefault:"false"`
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host            string        `env:"PG_HOST" envDefault:"localhost"`
	Port            int           `env:"PG_PORT" envDefault:"5432"`
	User            string        `env:"PG_USER"`
	Password        string        `env:"PG_PASSWORD"`
	Database        string        `env:"PG_DATABASE"`
	SSLMode         string        `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns        int32         `env:"PG_MAX_CONNS" envDefault:"10"`
	MaxConnLifetime time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
}

// DSN renders the connection URL understood by pgx and pgx/stdlib.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}
	return u.String()
}

// SQLite locates the embedded database file.
type SQLite struct {
	Path string `env:"SQLITE_PATH" envDefault:"trivia.db"`
}

// Redis holds the category cache connection. An empty address disables caching.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
}

// Cache tunes cached reads. A zero WarmInterval disables the background refresh.
type Cache struct {
	CategoryTTL  time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"5m"`
	WarmInterval time.Duration `env:"CATEGORY_CACHE_WARM_INTERVAL" envDefault:"1m"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization,true"`
	MaxAge         int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config and validates it.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.BasePath = normalizeBasePath(cfg.BasePath)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the driver-specific requirements.
func (a *App) Validate() error {
	var errs []error
	switch a.Store.Driver {
	case DriverPostgres:
		if a.Postgres.User == "" {
			errs = append(errs, errors.New("PG_USER is required for the postgres store"))
		}
		if a.Postgres.Password == "" {
			errs = append(errs, errors.New("PG_PASSWORD is required for the postgres store"))
		}
		if a.Postgres.Database == "" {
			errs = append(errs, errors.New("PG_DATABASE is required for the postgres store"))
		}
	case DriverSQLite:
		if a.SQLite.Path == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORE_DRIVER %q", a.Store.Driver))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimRight(p, "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
