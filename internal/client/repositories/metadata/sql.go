package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wallabag/internal/dbx"
)

// statements differ between dialects only in placeholders and upsert
// syntax.
type statements struct {
	get    string
	upsert string
	delete string
}

// table is the dialect-independent part of a Repository.
type table struct {
	db   dbx.DBTX
	stmt statements
}

func (t table) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	switch err := t.db.QueryRowContext(ctx, t.stmt.get, key).Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("metadata: get %q: %w", key, err)
	}
	return value, nil
}

func (t table) Set(ctx context.Context, key string, value []byte) error {
	if _, err := t.db.ExecContext(ctx, t.stmt.upsert, key, value); err != nil {
		return fmt.Errorf("metadata: set %q: %w", key, err)
	}
	return nil
}

func (t table) Delete(ctx context.Context, key string) error {
	if _, err := t.db.ExecContext(ctx, t.stmt.delete, key); err != nil {
		return fmt.Errorf("metadata: delete %q: %w", key, err)
	}
	return nil
}

func (t table) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := t.db.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return nil, fmt.Errorf("metadata: list: %w", err)
	}
	defer rows.Close()

	all := map[string][]byte{}
	for rows.Next() {
		var k string
		var v []byte
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("metadata: scan: %w", err)
		}
		all[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("metadata: list: %w", err)
	}
	return all, nil
}

func (t table) Clear(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM metadata`); err != nil {
		return fmt.Errorf("metadata: clear: %w", err)
	}
	return nil
}
