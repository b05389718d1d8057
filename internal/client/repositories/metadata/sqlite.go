package metadata

import "github.com/dmitrijs2005/wallabag/internal/dbx"

// SQLiteRepository implements Repository on the SQLite cache database.
type SQLiteRepository struct {
	table
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{table{db: db, stmt: statements{
		get: `SELECT value FROM metadata WHERE key = ?`,
		upsert: `INSERT INTO metadata (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		delete: `DELETE FROM metadata WHERE key = ?`,
	}}}
}
