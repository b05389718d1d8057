package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/wallabag/internal/client/client"
	"github.com/dmitrijs2005/wallabag/internal/client/models"
	"github.com/dmitrijs2005/wallabag/internal/client/repositories/repomanager"
)

// fakeClient implements only what a test sets; any other call panics on
// the nil embedded interface.
type fakeClient struct {
	client.Client

	entries    models.Entries
	entriesErr error
	filters    []client.EntriesFilter

	byID    map[models.ID]*models.Entry
	getErr  error
	gets    []models.ID
	created []client.NewEntry
	patches []client.EntryPatch
	deleted []models.ID
	opErr   error
	tags    models.Tags
}

func (f *fakeClient) GetEntries(ctx context.Context, filter client.EntriesFilter) (models.Entries, error) {
	f.filters = append(f.filters, filter)
	if f.entriesErr != nil {
		return nil, f.entriesErr
	}
	return f.entries, nil
}

func (f *fakeClient) GetEntry(ctx context.Context, id models.Identifier) (*models.Entry, error) {
	f.gets = append(f.gets, id.EntryID())
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.byID[id.EntryID()]
	if !ok {
		return nil, &client.TransportError{Method: "GET", StatusCode: 404, Err: client.ErrRejected}
	}
	return e, nil
}

func (f *fakeClient) CreateEntry(ctx context.Context, e client.NewEntry) (*models.Entry, error) {
	f.created = append(f.created, e)
	if f.opErr != nil {
		return nil, f.opErr
	}
	out := entry(100, e.URL)
	return &out, nil
}

func (f *fakeClient) UpdateEntry(ctx context.Context, id models.Identifier, p client.EntryPatch) (*models.Entry, error) {
	f.patches = append(f.patches, p)
	if f.opErr != nil {
		return nil, f.opErr
	}
	out := entry(id.EntryID(), "https://example.org/patched")
	if p.Archived != nil {
		out.IsArchived = *p.Archived
	}
	if p.Starred != nil {
		out.IsStarred = *p.Starred
	}
	return &out, nil
}

func (f *fakeClient) DeleteEntry(ctx context.Context, id models.Identifier) (*models.Entry, error) {
	f.deleted = append(f.deleted, id.EntryID())
	if f.opErr != nil {
		return nil, f.opErr
	}
	out := entry(id.EntryID(), "https://example.org/gone")
	return &out, nil
}

func (f *fakeClient) GetTags(ctx context.Context) (models.Tags, error) {
	return f.tags, f.opErr
}

var stamp = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func entry(id models.ID, url string) models.Entry {
	return models.Entry{
		ID:        id,
		URL:       &url,
		CreatedAt: stamp,
		UpdatedAt: stamp,
		Tags:      models.Tags{},
	}
}

func openStore(t *testing.T) *repomanager.Store {
	t.Helper()
	s, err := repomanager.Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
