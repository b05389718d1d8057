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

const postgresUpsert = `INSERT INTO entries (id, title, url, domain_name, is_archived, is_starred, is_public,
		reading_time, created_at, updated_at, payload)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title,
		url = EXCLUDED.url,
		domain_name = EXCLUDED.domain_name,
		is_archived = EXCLUDED.is_archived,
		is_starred = EXCLUDED.is_starred,
		is_public = EXCLUDED.is_public,
		reading_time = EXCLUDED.reading_time,
		created_at = EXCLUDED.created_at,
		updated_at = EXCLUDED.updated_at,
		payload = EXCLUDED.payload`

// PostgresRepository implements Repository on PostgreSQL through the pgx
// database/sql driver.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ReplaceAll(ctx context.Context, entries models.Entries) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	for i := range entries {
		if err := r.CreateOrUpdate(ctx, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) CreateOrUpdate(ctx context.Context, e *models.Entry) error {
	payload, err := marshalPayload(e)
	if err != nil {
		return err
	}
	// jsonb takes the payload as text.
	_, err = r.db.ExecContext(ctx, postgresUpsert,
		int64(e.ID), nullable(e.Title), nullable(e.URL), nullable(e.DomainName),
		e.IsArchived, e.IsStarred, e.IsPublic, int64(e.ReadingTime),
		e.CreatedAt.UTC(), e.UpdatedAt.UTC(),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetAll(ctx context.Context, q EntryQuery) (models.Entries, error) {
	query, args := listQuery(q, dollar)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanPayloads(rows, q)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id models.ID) (*models.Entry, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM entries WHERE id = $1`, int64(id)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return unmarshalPayload(payload)
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id models.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
