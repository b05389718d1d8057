// Package metadata keeps small key/value facts about the local cache, such
// as when it was last synchronized.
package metadata

import (
	"context"
)

// Keys written by the services layer.
const (
	KeyLastSyncAt    = "last_sync_at"
	KeyLastSyncTotal = "last_sync_total"
)

// Repository is a flat key/value store. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
