package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/wallabag/internal/client/migrations"
	"github.com/dmitrijs2005/wallabag/internal/client/repositories/entries"
	"github.com/dmitrijs2005/wallabag/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wallabag/internal/dbx"

	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct{}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

func (m *SQLiteRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Metadata(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, "sqlite3", migrations.SQLiteDir)
}
