package entries

import (
	"context"

	"github.com/dmitrijs2005/wallabag/internal/client/models"
)

// Repository stores entries locally.
type Repository interface {
	// ReplaceAll drops every cached entry and stores the given ones. Callers
	// bind the repository to a transaction to make the swap atomic.
	ReplaceAll(ctx context.Context, entries models.Entries) error

	// CreateOrUpdate upserts an entry by id.
	CreateOrUpdate(ctx context.Context, entry *models.Entry) error

	// GetAll returns the entries matching q, newest first.
	GetAll(ctx context.Context, q EntryQuery) (models.Entries, error)

	// GetByID returns common.ErrNotFound when no entry has the id.
	GetByID(ctx context.Context, id models.ID) (*models.Entry, error)

	// DeleteByID returns common.ErrNotFound when no entry has the id.
	DeleteByID(ctx context.Context, id models.ID) error

	Count(ctx context.Context) (int, error)
}

// EntryQuery filters GetAll. Zero values do not filter.
type EntryQuery struct {
	Archived *bool
	Starred  *bool
	// Tag matches a tag label or slug, ignoring case.
	Tag   string
	Limit int
}
