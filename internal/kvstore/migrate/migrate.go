// Package migrate brings a preferences database up to the embedded schema.
// Every migration is plain SQL that both DuckDB and SQLite accept.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"
)

//go:embed migrations/*.sql
var files embed.FS

const versionTable = "preferences_schema"

// Step is one numbered schema change.
type Step struct {
	Version int
	Name    string
	SQL     string
}

// Steps returns the embedded migrations in version order.
var Steps = sync.OnceValues(func() ([]Step, error) {
	names, err := files.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("migrate: list: %w", err)
	}
	var steps []Step
	for _, e := range names {
		num, _, ok := strings.Cut(e.Name(), "_")
		if e.IsDir() || !ok || path.Ext(e.Name()) != ".sql" {
			continue
		}
		v, err := strconv.Atoi(num)
		if err != nil {
			return nil, fmt.Errorf("migrate: bad version in %s: %w", e.Name(), err)
		}
		body, err := files.ReadFile(path.Join("migrations", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("migrate: read %s: %w", e.Name(), err)
		}
		steps = append(steps, Step{Version: v, Name: e.Name(), SQL: string(body)})
	}
	slices.SortFunc(steps, func(a, b Step) int { return a.Version - b.Version })
	return steps, nil
})

// Latest returns the highest embedded version, or 0 with no migrations.
func Latest() (int, error) {
	steps, err := Steps()
	if err != nil || len(steps) == 0 {
		return 0, err
	}
	return steps[len(steps)-1].Version, nil
}

func ensureVersionTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+versionTable+` (
		version    INTEGER PRIMARY KEY,
		name       VARCHAR NOT NULL,
		applied_at TIMESTAMP DEFAULT current_timestamp
	)`)
	if err != nil {
		return fmt.Errorf("migrate: create %s: %w", versionTable, err)
	}
	return nil
}

// Current returns the highest applied version; 0 for a fresh database.
func Current(ctx context.Context, db *sql.DB) (int, error) {
	if err := ensureVersionTable(ctx, db); err != nil {
		return 0, err
	}
	var v sql.NullInt64
	if err := db.QueryRowContext(ctx, "SELECT MAX(version) FROM "+versionTable).Scan(&v); err != nil {
		return 0, fmt.Errorf("migrate: read version: %w", err)
	}
	return int(v.Int64), nil
}

// Pending returns the migrations not yet applied to db.
func Pending(ctx context.Context, db *sql.DB) ([]Step, error) {
	cur, err := Current(ctx, db)
	if err != nil {
		return nil, err
	}
	steps, err := Steps()
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(steps, func(s Step) bool { return s.Version > cur })
	if i < 0 {
		return nil, nil
	}
	return steps[i:], nil
}

// Up applies every pending migration, each in its own transaction, and
// returns the names applied.
func Up(ctx context.Context, db *sql.DB) ([]string, error) {
	pending, err := Pending(ctx, db)
	if err != nil {
		return nil, err
	}
	var applied []string
	for _, s := range pending {
		if err := apply(ctx, db, s); err != nil {
			return applied, err
		}
		applied = append(applied, s.Name)
	}
	return applied, nil
}

func apply(ctx context.Context, db *sql.DB, s Step) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin %s: %w", s.Name, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, s.SQL); err != nil {
		return fmt.Errorf("migrate: %s: %w", s.Name, err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO "+versionTable+" (version, name) VALUES (?, ?)", s.Version, s.Name,
	); err != nil {
		return fmt.Errorf("migrate: record %s: %w", s.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit %s: %w", s.Name, err)
	}
	return nil
}
