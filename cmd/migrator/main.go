package main

import (
	"context"
	"database/sql"
	"flag"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
)

func main() {
	command := flag.String("command", migrations.CommandUp, "Migration command: up, down, status or reset")
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var (
		db     *sql.DB
		driver string
	)
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		driver = migrations.DriverPostgres
		// pgx via stdlib (database/sql compatible)
		db, err = sql.Open("pgx", cfg.Postgres.DSN())
		if err == nil {
			err = db.PingContext(ctx)
		}
		if err != nil {
			log.Fatal().Err(err).Str("host", cfg.Postgres.Host).Int("port", cfg.Postgres.Port).Msg("failed to connect to postgres")
		}
		log.Info().
			Str("host", cfg.Postgres.Host).
			Int("port", cfg.Postgres.Port).
			Str("database", cfg.Postgres.Database).
			Msg("connected to database")
	case config.DriverSQLite:
		driver = migrations.DriverSQLite
		db, err = sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.SQLite.Path).Msg("failed to open sqlite database")
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("opened database")
	}
	defer db.Close()

	if err := migrations.Run(db, driver, *command); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("migration failed")
	}
	log.Info().Str("command", *command).Str("driver", driver).Msg("migration command finished")
}
