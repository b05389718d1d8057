package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// entryObj returns a minimal valid entry in the service's wire form.
func entryObj(id int) map[string]any {
	return map[string]any{
		"id":           id,
		"created_at":   "2020-01-02T03:04:05+0000",
		"updated_at":   "2020-01-02T03:04:05+0000",
		"is_archived":  0,
		"is_public":    0,
		"is_starred":   0,
		"reading_time": 1,
		"tags":         []any{},
		"title":        "entry",
		"url":          "https://example.org/entry",
		"user_email":   "me@example.org",
		"user_id":      1,
		"user_name":    "me",
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// pageBody renders one listing page holding entries with the given ids.
func pageBody(t *testing.T, page, pages, limit, total int, ids ...int) []byte {
	t.Helper()
	items := make([]any, 0, len(ids))
	for _, id := range ids {
		items = append(items, entryObj(id))
	}
	return mustJSON(t, map[string]any{
		"page":      page,
		"pages":     pages,
		"limit":     limit,
		"total":     total,
		"_embedded": map[string]any{"items": items},
	})
}

// collection splits ids 1..total into pages of limit items.
func collection(t *testing.T, total, limit int) map[int][]byte {
	t.Helper()
	pages := (total + limit - 1) / limit
	out := make(map[int][]byte, pages)
	id := 1
	for p := 1; p <= pages; p++ {
		var ids []int
		for i := 0; i < limit && id <= total; i++ {
			ids = append(ids, id)
			id++
		}
		out[p] = pageBody(t, p, pages, limit, total, ids...)
	}
	return out
}
