package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"hotel_booking/internal/domain"
)

type Dialect string

const (
	SQLite Dialect = "sqlite"
	MySQL  Dialect = "mysql"
)

// ParseDialect maps a DB_DRIVER value to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "mysql":
		return MySQL, nil
	}
	return "", fmt.Errorf("unsupported DB_DRIVER %q", s)
}

// sqliteDSN turns a bare path into a modernc DSN with foreign keys on and a
// busy timeout so concurrent writers wait on the file lock instead of failing.
func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") || strings.Contains(path, "?") {
		return path
	}
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Open connects to the store at dsn, ensures the schema exists, applies
// additive migrations and seeds an empty catalog.
func Open(ctx context.Context, d Dialect, dsn string) (*Repo, error) {
	driver, source := string(d), dsn
	if d == SQLite {
		source = sqliteDSN(dsn)
	}
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("sql.Open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	repo := New(db, d)
	if err := repo.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Init is idempotent: running it against an initialized store changes nothing.
func (r *Repo) Init(ctx context.Context) error {
	schema, migrations := sqliteSchema, sqliteMigrations
	if r.dialect == MySQL {
		schema, migrations = mysqlSchema, mysqlMigrations
	}

	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	for _, stmt := range migrations {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			log.Debug().Err(err).Str("stmt", stmt).Msg("migration skipped")
		}
	}

	n, err := r.CountHotels(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return r.seed(ctx, SeedCatalog)
}

// seed inserts cat in a single transaction so an interrupted first run
// leaves the store empty and is retried on the next start.
func (r *Repo) seed(ctx context.Context, cat domain.Catalog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rooms := 0
	for _, h := range cat.Hotels {
		_, rs, err := insertHotelTx(ctx, tx, h)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		rooms += len(rs)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	log.Info().Int("hotels", len(cat.Hotels)).Int("rooms", rooms).Msg("seeded empty catalog")
	return nil
}
