// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

// Package recent keeps an index of recently saved and loaded tab files. It
// runs on SQLite by default; PostgreSQL and MySQL work for shared setups.
package recent

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // registers "mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/toeirei/guitab/internal/logging"
)

// Entry is one tab file in the index.
type Entry struct {
	bun.BaseModel `bun:"table:recent_tabs"`

	Path     string    `bun:"path,pk"`
	Title    string    `bun:"title,notnull"`
	Author   string    `bun:"author,notnull"`
	Columns  int       `bun:"columns,notnull"`
	OpenedAt time.Time `bun:"opened_at,notnull"`
}

// Store is a recent-files index backed by a SQL database.
type Store struct {
	db     *bun.DB
	dbType string
}

// Open connects to the index and creates its table if needed. dbType is
// "sqlite", "postgres" or "mysql".
func Open(ctx context.Context, dbType, dsn string) (*Store, error) {
	driverName := dbType
	switch dbType {
	case "sqlite":
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				return nil, fmt.Errorf("create index directory: %w", err)
			}
		}
	case "postgres":
		// The pgx stdlib registers driver name "pgx".
		driverName = "pgx"
	case "mysql":
	default:
		return nil, fmt.Errorf("unsupported database type for recent index: '%s'", dbType)
	}

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbType == "sqlite" {
		// One connection keeps ":memory:" databases visible to every query.
		sqlDB.SetMaxOpenConns(1)
	}

	s := &Store{db: createBunDB(sqlDB, dbType), dbType: dbType}
	if _, err := s.db.NewCreateTable().Model((*Entry)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create recent_tabs table: %w", err)
	}
	logging.Debugf("recent: opened %s index", dbType)
	return s, nil
}

func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// Touch records that e.Path was just used, replacing any earlier entry for
// the same path. A zero OpenedAt is set to now.
func (s *Store) Touch(ctx context.Context, e Entry) error {
	if abs, err := filepath.Abs(e.Path); err == nil {
		e.Path = abs
	}
	if e.OpenedAt.IsZero() {
		e.OpenedAt = time.Now().UTC()
	}
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*Entry)(nil)).Where("path = ?", e.Path).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(&e).Exec(ctx)
		return err
	})
}

// List returns up to limit entries, most recent first. A limit <= 0 returns
// every entry.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	var out []Entry
	q := s.db.NewSelect().Model(&out).Order("opened_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// Forget removes path from the index.
func (s *Store) Forget(ctx context.Context, path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	_, err := s.db.NewDelete().Model((*Entry)(nil)).Where("path = ?", path).Exec(ctx)
	return err
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
