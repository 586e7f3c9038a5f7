package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/solidastad/anbud/internal/db"
	"github.com/solidastad/anbud/internal/pricing"
	"github.com/solidastad/anbud/internal/ratebook"
)

// Config contains the values required by startup seed.
type Config struct {
	TableName string
	Table     *pricing.Table
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	// Skipped counts tables that already existed and were left untouched.
	Skipped int
}

// Run executes the startup seed in an idempotent way. An existing table is
// never overwritten, so operator edits survive restarts.
func Run(ctx context.Context, database *sql.DB, dialect db.Dialect, cfg Config) (Stats, error) {
	if cfg.TableName == "" {
		return Stats{}, fmt.Errorf("seed pricing table: name is required")
	}
	table := cfg.Table
	if table == nil {
		table = pricing.DefaultTable()
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	inserted, err := ratebook.Insert(ctx, tx, dialect, cfg.TableName, table)
	if err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if inserted {
		stats.Inserts++
	} else {
		stats.Skipped++
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}
