package metadata

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// SetTime stores t as RFC 3339 text in UTC.
func SetTime(ctx context.Context, r Repository, key string, t time.Time) error {
	return r.Set(ctx, key, []byte(t.UTC().Format(time.RFC3339Nano)))
}

// GetTime reads a value written by SetTime. ok is false when the key is
// missing.
func GetTime(ctx context.Context, r Repository, key string) (t time.Time, ok bool, err error) {
	raw, err := r.Get(ctx, key)
	if err != nil || raw == nil {
		return time.Time{}, false, err
	}
	t, err = time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("metadata[%s]: %w", key, err)
	}
	return t, true, nil
}

func SetInt(ctx context.Context, r Repository, key string, n int) error {
	return r.Set(ctx, key, []byte(strconv.Itoa(n)))
}

// GetInt reads a value written by SetInt. ok is false when the key is
// missing.
func GetInt(ctx context.Context, r Repository, key string) (n int, ok bool, err error) {
	raw, err := r.Get(ctx, key)
	if err != nil || raw == nil {
		return 0, false, err
	}
	n, err = strconv.Atoi(string(raw))
	if err != nil {
		return 0, false, fmt.Errorf("metadata[%s]: %w", key, err)
	}
	return n, true, nil
}
