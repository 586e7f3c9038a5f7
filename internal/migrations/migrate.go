package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/solidastad/anbud/internal/db"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

// Up runs all pending embedded SQL migrations.
func Up(database *sql.DB, dialect db.Dialect) error {
	goose.SetBaseFS(files)

	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(database, dir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}

// Version returns the current schema version.
func Version(database *sql.DB, dialect db.Dialect) (int64, error) {
	goose.SetBaseFS(files)

	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}

	v, err := goose.GetDBVersion(database)
	if err != nil {
		return 0, fmt.Errorf("read goose version: %w", err)
	}
	return v, nil
}

func gooseDialect(dialect db.Dialect) string {
	if dialect == db.Postgres {
		return "postgres"
	}
	return "sqlite3"
}
