package metadata

import "github.com/dmitrijs2005/wallabag/internal/dbx"

// PostgresRepository implements Repository on PostgreSQL.
type PostgresRepository struct {
	table
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{table{db: db, stmt: statements{
		get: `SELECT value FROM metadata WHERE key = $1`,
		upsert: `INSERT INTO metadata (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		delete: `DELETE FROM metadata WHERE key = $1`,
	}}}
}
