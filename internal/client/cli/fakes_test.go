package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/wallabag/internal/client/config"
	"github.com/dmitrijs2005/wallabag/internal/client/models"
	"github.com/dmitrijs2005/wallabag/internal/client/repositories/entries"
	"github.com/dmitrijs2005/wallabag/internal/client/services"
	"github.com/dmitrijs2005/wallabag/internal/logging"
)

type fakeSession struct {
	token    string
	remember bool
	saved    string
	savedErr error
	forgot   bool
	pingErr  error
	closed   bool
}

func (f *fakeSession) UseToken(_ context.Context, token string, remember bool) error {
	f.token, f.remember = token, remember
	if remember {
		f.saved = token
	}
	return nil
}
func (f *fakeSession) SavedToken(context.Context) (string, error) { return f.saved, f.savedErr }
func (f *fakeSession) Forget(context.Context) error {
	f.forgot = true
	f.token, f.saved = "", ""
	return nil
}
func (f *fakeSession) Ping(context.Context) error { return f.pingErr }
func (f *fakeSession) Close(context.Context) error {
	f.closed = true
	return nil
}

type fakeES struct {
	services.EntryService

	listQ   entries.EntryQuery
	listOut models.Entries
	listErr error

	getID  models.ID
	getOut *models.Entry
	getErr error

	addURL  string
	addTags []string

	delID  models.ID
	opErr  error
	patch  map[string]bool
	tags   models.Tags
	synced int
	status *services.SyncStatus
}

func (f *fakeES) List(_ context.Context, q entries.EntryQuery) (models.Entries, error) {
	f.listQ = q
	return f.listOut, f.listErr
}
func (f *fakeES) Get(_ context.Context, id models.Identifier) (*models.Entry, error) {
	f.getID = id.EntryID()
	return f.getOut, f.getErr
}
func (f *fakeES) Add(_ context.Context, url string, tags []string) (*models.Entry, error) {
	f.addURL, f.addTags = url, tags
	if f.opErr != nil {
		return nil, f.opErr
	}
	e := testEntry(10, "Saved")
	return &e, nil
}
func (f *fakeES) Delete(_ context.Context, id models.Identifier) (*models.Entry, error) {
	f.delID = id.EntryID()
	if f.opErr != nil {
		return nil, f.opErr
	}
	e := testEntry(id.EntryID(), "Gone")
	return &e, nil
}
func (f *fakeES) SetArchived(_ context.Context, id models.Identifier, v bool) (*models.Entry, error) {
	f.patch = map[string]bool{"archived": v}
	e := testEntry(id.EntryID(), "T")
	e.IsArchived = v
	return &e, f.opErr
}
func (f *fakeES) SetStarred(_ context.Context, id models.Identifier, v bool) (*models.Entry, error) {
	f.patch = map[string]bool{"starred": v}
	e := testEntry(id.EntryID(), "T")
	e.IsStarred = v
	return &e, f.opErr
}
func (f *fakeES) Tags(context.Context) (models.Tags, error) { return f.tags, f.opErr }
func (f *fakeES) Sync(context.Context) (int, error)         { return f.synced, f.opErr }
func (f *fakeES) Status(context.Context) (*services.SyncStatus, error) {
	return f.status, f.opErr
}

func testEntry(id models.ID, title string) models.Entry {
	url := "https://example.org/" + strings.ToLower(title)
	return models.Entry{ID: id, Title: &title, URL: &url}
}

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func newTestApp(t *testing.T, es *fakeES, ss *fakeSession, r *bufio.Reader) (*App, *bytes.Buffer) {
	t.Helper()
	if r == nil {
		r = readerFromLines()
	}
	var out bytes.Buffer
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:         cfg,
		sessionService: ss,
		entryService:   es,
		logger:         logging.NewNop(),
		reader:         r,
		out:            &out,
	}, &out
}
