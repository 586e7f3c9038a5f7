// Package ratebook stores named pricing tables. The server reads one table
// at start-up; tables are only written by operators between restarts.
package ratebook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/solidastad/anbud/internal/db"
	"github.com/solidastad/anbud/internal/pricing"
)

// ErrNotFound is returned when no active table has the requested name.
var ErrNotFound = errors.New("pricing table not found")

// Entry summarises a stored table.
type Entry struct {
	Name      string
	Active    bool
	UpdatedAt string
}

// Load reads and validates the active table called name.
func Load(ctx context.Context, database *sql.DB, dialect db.Dialect, name string) (*pricing.Table, error) {
	var body string
	err := database.QueryRowContext(ctx,
		db.Rebind(dialect, `SELECT body FROM pricing_tables WHERE name = ? AND active = TRUE`),
		name,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("query pricing table %s: %w", name, err)
	}

	table, err := pricing.ParseTable([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("parse pricing table %s: %w", name, err)
	}
	return table, nil
}

// Save stores t under name, replacing an existing table with that name.
func Save(ctx context.Context, database *sql.DB, dialect db.Dialect, name string, t *pricing.Table) error {
	body, err := encode(name, t)
	if err != nil {
		return err
	}

	if _, err := database.ExecContext(ctx, db.Rebind(dialect, `
		INSERT INTO pricing_tables (name, body, active)
		VALUES (?, ?, TRUE)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			active = TRUE,
			updated_at = CURRENT_TIMESTAMP
	`), name, body); err != nil {
		return fmt.Errorf("save pricing table %s: %w", name, err)
	}
	return nil
}

// Insert stores t under name unless a table with that name exists. It
// reports whether a row was written.
func Insert(ctx context.Context, tx *sql.Tx, dialect db.Dialect, name string, t *pricing.Table) (bool, error) {
	body, err := encode(name, t)
	if err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx, db.Rebind(dialect, `
		INSERT INTO pricing_tables (name, body, active)
		VALUES (?, ?, TRUE)
		ON CONFLICT(name) DO NOTHING
	`), name, body)
	if err != nil {
		return false, fmt.Errorf("insert pricing table %s: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read inserted rows: %w", err)
	}
	return n > 0, nil
}

// List returns every stored table ordered by name.
func List(ctx context.Context, database *sql.DB) ([]Entry, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT name, active, updated_at
		FROM pricing_tables
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query pricing tables: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Active, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pricing table: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pricing tables: %w", err)
	}

	return entries, nil
}

func encode(name string, t *pricing.Table) (string, error) {
	if t == nil {
		return "", errors.New("pricing table is nil")
	}
	copyOf := *t
	copyOf.Name = name
	if err := copyOf.Validate(); err != nil {
		return "", err
	}
	data, err := copyOf.Encode()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
