// Package sqlite implements the persistence services over a sqlite database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migration/*.sql
var migrationFS embed.FS

// DB wraps the sqlite database handle shared by the services.
type DB struct {
	db  *sql.DB
	dsn string
}

// NewDB creates a database handle for the provided dsn. The handle is unusable
// until Open is called.
func NewDB(dsn string) *DB {
	return &DB{dsn: dsn}
}

// Open opens the database, enables foreign key enforcement and brings the
// schema up to date from the embedded migrations.
func (db *DB) Open() (err error) {
	if db.dsn == "" {
		return fmt.Errorf("dsn required")
	}

	if db.db, err = sql.Open("sqlite3", db.dsn); err != nil {
		return err
	}

	// the schema leans on cascading deletes for office assignments,
	// course assignment links and enrollments.
	if _, err := db.db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}

	return db.migrate()
}

func (db *DB) migrate() error {
	src, err := iofs.New(migrationFS, "migration")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
//
// no-op if the database was never opened.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// BeginTx starts a transaction on the underlying handle.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// formatLimitOffset renders a LIMIT ... OFFSET ... clause, omitting whatever
// the filter left at zero.
func formatLimitOffset(limit, offset int) string {
	switch {
	case limit > 0 && offset > 0:
		return fmt.Sprintf(`LIMIT %d OFFSET %d`, limit, offset)
	case limit > 0:
		return fmt.Sprintf(`LIMIT %d`, limit)
	case offset > 0:
		return fmt.Sprintf(`LIMIT -1 OFFSET %d`, offset)
	default:
		return ""
	}
}

// placeholders renders n comma separated sql placeholders for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
