package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/wallabag/internal/client/client"
	"github.com/dmitrijs2005/wallabag/internal/client/models"
	"github.com/dmitrijs2005/wallabag/internal/client/repositories/entries"
	"github.com/dmitrijs2005/wallabag/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wallabag/internal/common"
	"github.com/dmitrijs2005/wallabag/internal/logging"
)

// Cache is the local store the entry service reads from and writes to.
// *repomanager.Store implements it.
type Cache interface {
	Entries() entries.Repository
	Metadata() metadata.Repository
	InTx(ctx context.Context, fn func(ctx context.Context, e entries.Repository, md metadata.Repository) error) error
}

// SyncStatus describes the cache relative to the last successful sync.
type SyncStatus struct {
	Synced     bool
	LastSyncAt time.Time
	// LastTotal is how many entries the last sync brought; Cached is how
	// many are in the cache now.
	LastTotal int
	Cached    int
}

// EntryService is what the CLI does with entries. Reads come from the
// cache; writes go to the server first and are mirrored into the cache.
type EntryService interface {
	Sync(ctx context.Context) (int, error)
	List(ctx context.Context, q entries.EntryQuery) (models.Entries, error)
	Get(ctx context.Context, id models.Identifier) (*models.Entry, error)
	Add(ctx context.Context, url string, tags []string) (*models.Entry, error)
	Delete(ctx context.Context, id models.Identifier) (*models.Entry, error)
	SetArchived(ctx context.Context, id models.Identifier, archived bool) (*models.Entry, error)
	SetStarred(ctx context.Context, id models.Identifier, starred bool) (*models.Entry, error)
	Tags(ctx context.Context) (models.Tags, error)
	Status(ctx context.Context) (*SyncStatus, error)
}

type entryService struct {
	client client.Client
	cache  Cache
	logger logging.Logger
	now    func() time.Time
}

func NewEntryService(c client.Client, cache Cache, logger logging.Logger) EntryService {
	return &entryService{client: c, cache: cache, logger: logger, now: time.Now}
}

// Sync replaces the cache with every entry on the server. The cache and the
// sync metadata change together or not at all.
func (s *entryService) Sync(ctx context.Context) (int, error) {
	items, err := s.client.GetEntries(ctx, client.EntriesFilter{})
	if err != nil {
		return 0, fmt.Errorf("fetch entries: %w", err)
	}

	at := s.now()
	err = s.cache.InTx(ctx, func(ctx context.Context, er entries.Repository, md metadata.Repository) error {
		if err := er.ReplaceAll(ctx, items); err != nil {
			return err
		}
		if err := metadata.SetTime(ctx, md, metadata.KeyLastSyncAt, at); err != nil {
			return err
		}
		return metadata.SetInt(ctx, md, metadata.KeyLastSyncTotal, len(items))
	})
	if err != nil {
		return 0, fmt.Errorf("store entries: %w", err)
	}

	s.logger.Info(ctx, "sync finished", "entries", len(items))
	return len(items), nil
}

func (s *entryService) List(ctx context.Context, q entries.EntryQuery) (models.Entries, error) {
	return s.cache.Entries().GetAll(ctx, q)
}

// Get serves from the cache and falls back to the server for entries the
// cache has not seen yet.
func (s *entryService) Get(ctx context.Context, id models.Identifier) (*models.Entry, error) {
	e, err := s.cache.Entries().GetByID(ctx, id.EntryID())
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	e, err = s.client.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, e)
	return e, nil
}

func (s *entryService) Add(ctx context.Context, url string, tags []string) (*models.Entry, error) {
	e, err := s.client.CreateEntry(ctx, client.NewEntry{URL: url, Tags: tags})
	if err != nil {
		return nil, err
	}
	s.remember(ctx, e)
	return e, nil
}

// Delete removes the entry on the server and returns it as it was. An entry
// missing from the cache is not an error.
func (s *entryService) Delete(ctx context.Context, id models.Identifier) (*models.Entry, error) {
	e, err := s.client.DeleteEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Entries().DeleteByID(ctx, e.ID); err != nil && !errors.Is(err, common.ErrNotFound) {
		s.logger.Warn(ctx, "cache delete failed", "id", e.ID, "error", err)
	}
	return e, nil
}

func (s *entryService) SetArchived(ctx context.Context, id models.Identifier, archived bool) (*models.Entry, error) {
	return s.update(ctx, id, client.EntryPatch{Archived: &archived})
}

func (s *entryService) SetStarred(ctx context.Context, id models.Identifier, starred bool) (*models.Entry, error) {
	return s.update(ctx, id, client.EntryPatch{Starred: &starred})
}

func (s *entryService) update(ctx context.Context, id models.Identifier, patch client.EntryPatch) (*models.Entry, error) {
	e, err := s.client.UpdateEntry(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, e)
	return e, nil
}

func (s *entryService) Tags(ctx context.Context) (models.Tags, error) {
	return s.client.GetTags(ctx)
}

func (s *entryService) Status(ctx context.Context) (*SyncStatus, error) {
	md := s.cache.Metadata()

	at, synced, err := metadata.GetTime(ctx, md, metadata.KeyLastSyncAt)
	if err != nil {
		return nil, err
	}
	total, _, err := metadata.GetInt(ctx, md, metadata.KeyLastSyncTotal)
	if err != nil {
		return nil, err
	}
	cached, err := s.cache.Entries().Count(ctx)
	if err != nil {
		return nil, err
	}
	return &SyncStatus{Synced: synced, LastSyncAt: at, LastTotal: total, Cached: cached}, nil
}

// remember mirrors a server answer into the cache. The server already has
// the change, so a cache failure is logged rather than returned.
func (s *entryService) remember(ctx context.Context, e *models.Entry) {
	if err := s.cache.Entries().CreateOrUpdate(ctx, e); err != nil {
		s.logger.Warn(ctx, "cache update failed", "id", e.ID, "error", err)
	}
}
