package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wallabag/internal/client/models"
	"github.com/dmitrijs2005/wallabag/internal/common"
	"github.com/dmitrijs2005/wallabag/internal/dbx"
)

// sqliteTimeLayout is fixed width so that text ordering is time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

const sqliteUpsert = `INSERT INTO entries (id, title, url, domain_name, is_archived, is_starred, is_public,
		reading_time, created_at, updated_at, payload)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET title = excluded.title,
		url = excluded.url,
		domain_name = excluded.domain_name,
		is_archived = excluded.is_archived,
		is_starred = excluded.is_starred,
		is_public = excluded.is_public,
		reading_time = excluded.reading_time,
		created_at = excluded.created_at,
		updated_at = excluded.updated_at,
		payload = excluded.payload`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, entries models.Entries) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	for i := range entries {
		if err := r.CreateOrUpdate(ctx, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

// CreateOrUpdate upserts an entry by id, refreshing every column.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, e *models.Entry) error {
	payload, err := marshalPayload(e)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqliteUpsert,
		int64(e.ID), nullable(e.Title), nullable(e.URL), nullable(e.DomainName),
		e.IsArchived, e.IsStarred, e.IsPublic, int64(e.ReadingTime),
		e.CreatedAt.UTC().Format(sqliteTimeLayout), e.UpdatedAt.UTC().Format(sqliteTimeLayout),
		payload,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert entry %d: %w", e.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context, q EntryQuery) (models.Entries, error) {
	query, args := listQuery(q, questionMark)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()
	return scanPayloads(rows, q)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id models.ID) (*models.Entry, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM entries WHERE id = ?`, int64(id)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %d: %w", id, err)
	}
	return unmarshalPayload(payload)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id models.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("failed to delete entry %d: %w", id, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}
