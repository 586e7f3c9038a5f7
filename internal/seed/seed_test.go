package seed

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/solidastad/anbud/internal/db"
	"github.com/solidastad/anbud/internal/migrations"
	"github.com/solidastad/anbud/internal/pricing"
	"github.com/solidastad/anbud/internal/ratebook"
)

func openMigrated(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, dialect, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database, dialect); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	database := openMigrated(t)

	cfg := Config{TableName: "standard"}

	for i := 0; i < 10; i++ {
		stats, err := Run(ctx, database, db.SQLite, cfg)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 1 || stats.Skipped != 0 {
				t.Fatalf("expected 1 insert in first run, got %+v", stats)
			}
			continue
		}
		if stats.Inserts != 0 || stats.Skipped != 1 {
			t.Fatalf("expected the existing table to be skipped in iteration %d, got %+v", i, stats)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM pricing_tables WHERE name = ?`, "standard", 1)
}

func TestRunKeepsOperatorEdits(t *testing.T) {
	ctx := context.Background()
	database := openMigrated(t)

	edited := pricing.DefaultTable()
	edited.TravelPerKm = 9
	if err := ratebook.Save(ctx, database, db.SQLite, "standard", edited); err != nil {
		t.Fatalf("save edited table: %v", err)
	}

	stats, err := Run(ctx, database, db.SQLite, Config{TableName: "standard"})
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if stats.Skipped != 1 {
		t.Fatalf("expected edited table to be skipped, got %+v", stats)
	}

	loaded, err := ratebook.Load(ctx, database, db.SQLite, "standard")
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	if loaded.TravelPerKm != 9 {
		t.Fatalf("seed overwrote operator edit: travelPerKm = %v", loaded.TravelPerKm)
	}
}

func TestRunRequiresName(t *testing.T) {
	database := openMigrated(t)

	if _, err := Run(context.Background(), database, db.SQLite, Config{}); err == nil {
		t.Fatalf("expected error for missing table name")
	}
}

func assertCount(t *testing.T, database *sql.DB, query string, arg any, expected int) {
	t.Helper()

	var count int
	if err := database.QueryRow(query, arg).Scan(&count); err != nil {
		t.Fatalf("query count: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d for %q", expected, count, query)
	}
}
