// Package repomanager opens the local cache database named by a DSN, runs
// its migrations and vends repositories bound to it.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/wallabag/internal/client/migrations"
	"github.com/dmitrijs2005/wallabag/internal/client/repositories/entries"
	"github.com/dmitrijs2005/wallabag/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wallabag/internal/dbx"
	"github.com/dmitrijs2005/wallabag/internal/filex"
)

// RepositoryManager knows one SQL dialect: its migrations and its
// repository implementations.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Entries(db dbx.DBTX) entries.Repository
	Metadata(db dbx.DBTX) metadata.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

func migrate(ctx context.Context, db *sql.DB, dialect, dir string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect %s: %w", dialect, err)
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// IsPostgresDSN reports whether dsn selects the PostgreSQL backend.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Store is an open cache database together with its dialect.
type Store struct {
	DB      *sql.DB
	Manager RepositoryManager
}

// Open connects to the cache named by dsn and brings its schema up to
// date. postgres:// and postgresql:// URLs select PostgreSQL; anything
// else is a SQLite file path whose directory is created on demand.
func Open(ctx context.Context, dsn string) (*Store, error) {
	var (
		driver string
		m      RepositoryManager
	)
	if IsPostgresDSN(dsn) {
		driver, m = "pgx", NewPostgresRepositoryManager()
	} else {
		path, err := filex.EnsureParentDir(dsn)
		if err != nil {
			return nil, err
		}
		driver, dsn, m = "sqlite", path, NewSQLiteRepositoryManager()
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{DB: db, Manager: m}, nil
}

func (s *Store) Entries() entries.Repository {
	return s.Manager.Entries(s.DB)
}

func (s *Store) Metadata() metadata.Repository {
	return s.Manager.Metadata(s.DB)
}

// InTx runs fn with repositories bound to one transaction. fn's error rolls
// everything back.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, e entries.Repository, md metadata.Repository) error) error {
	return dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.Manager.Entries(tx), s.Manager.Metadata(tx))
	})
}

func (s *Store) Close() error {
	return s.DB.Close()
}
