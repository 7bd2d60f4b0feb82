// Package migrations embeds the goose migrations for every supported SQL dialect.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Supported store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Commands understood by Run.
const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
	CommandReset  = "reset"
)

const tableName = "goose_db_version"

// dialect maps a store driver onto its goose dialect and migration directory.
func dialect(driver string) (goose.Dialect, string, error) {
	switch driver {
	case DriverPostgres:
		return goose.DialectPostgres, "postgres", nil
	case DriverSQLite:
		return goose.DialectSQLite3, "sqlite", nil
	default:
		return "", "", fmt.Errorf("unsupported store driver %q", driver)
	}
}

// Run executes a goose command against db using the embedded migrations for driver.
func Run(db *sql.DB, driver, command string) error {
	d, dir, err := dialect(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(FS)
	goose.SetTableName(tableName)
	if err := goose.SetDialect(string(d)); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	switch command {
	case CommandUp:
		err = goose.Up(db, dir)
	case CommandDown:
		err = goose.Down(db, dir)
	case CommandStatus:
		err = goose.Status(db, dir)
	case CommandReset:
		err = goose.Reset(db, dir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrations %s: %w", command, err)
	}
	return nil
}

// Up applies every pending migration.
func Up(db *sql.DB, driver string) error {
	return Run(db, driver, CommandUp)
}
