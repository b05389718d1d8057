package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/wallabag/internal/client/models"
)

//go:generate mockgen -source=client.go -destination=mock/client.go -package=mock

// Client is the wallabag API surface used by the services layer.
type Client interface {
	Close() error
	SetToken(token string)
	Ping(ctx context.Context) error
	GetEntries(ctx context.Context, filter EntriesFilter) (models.Entries, error)
	GetEntry(ctx context.Context, id models.Identifier) (*models.Entry, error)
	CreateEntry(ctx context.Context, e NewEntry) (*models.Entry, error)
	UpdateEntry(ctx context.Context, id models.Identifier, patch EntryPatch) (*models.Entry, error)
	DeleteEntry(ctx context.Context, id models.Identifier) (*models.Entry, error)
	GetTags(ctx context.Context) (models.Tags, error)
}

// EntriesFilter narrows a listing. Nil pointers and empty values are not
// sent.
type EntriesFilter struct {
	Archived *bool
	Starred  *bool
	Tags     []string
	// Sort is "created" or "updated"; Order is "asc" or "desc".
	Sort  string
	Order string
	Since *time.Time
}

// NewEntry is the payload of CreateEntry.
type NewEntry struct {
	URL      string
	Title    *string
	Tags     []string
	Archived *bool
	Starred  *bool
}

// EntryPatch is the payload of UpdateEntry. Only non-nil fields are sent.
type EntryPatch struct {
	Title    *string
	Tags     *[]string
	Archived *bool
	Starred  *bool
	Public   *bool
}
