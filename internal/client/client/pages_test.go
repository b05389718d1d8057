package client

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/wallabag/internal/client/models"
)

/*************
 * Fake page source
 *************/

type fakePages struct {
	mu     sync.Mutex
	bodies map[int][]byte
	errs   map[int]error
	calls  []int
	limits []int

	// onFetch runs after a page is recorded, before it is returned.
	onFetch func(page int)
}

func (f *fakePages) fetch(ctx context.Context, page, limit int) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, page)
	f.limits = append(f.limits, limit)
	f.mu.Unlock()

	if f.onFetch != nil {
		f.onFetch(page)
	}
	if err, ok := f.errs[page]; ok {
		return nil, err
	}
	body, ok := f.bodies[page]
	if !ok {
		return nil, fmt.Errorf("no such page %d", page)
	}
	return body, nil
}

func ids(es models.Entries) []models.ID {
	out := make([]models.ID, 0, len(es))
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}

func seq(n int) []models.ID {
	out := make([]models.ID, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.ID(i))
	}
	return out
}

func TestFetchAll_ThreePagesInOrder(t *testing.T) {
	f := &fakePages{bodies: collection(t, 7, 3)}

	got, err := FetchAll(context.Background(), f.fetch, 3)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, f.calls)
	assert.Equal(t, []int{3, 3, 3}, f.limits)
	assert.Equal(t, seq(7), ids(got))
}

func TestFetchAll_SinglePage(t *testing.T) {
	f := &fakePages{bodies: collection(t, 2, 30)}

	got, err := FetchAll(context.Background(), f.fetch, 30)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, f.calls)
	assert.Equal(t, seq(2), ids(got))
}

func TestFetchAll_EmptyCollection(t *testing.T) {
	tests := []struct {
		name         string
		pages, total int
	}{
		{"no pages", 0, 0},
		{"zero pages reported", 0, 4},
		{"zero total reported", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakePages{bodies: map[int][]byte{1: pageBody(t, 1, tt.pages, 30, tt.total)}}

			got, err := FetchAll(context.Background(), f.fetch, 30)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Empty(t, got)
			assert.Equal(t, []int{1}, f.calls)
		})
	}
}

func TestFetchAll_DefaultPageSize(t *testing.T) {
	f := &fakePages{bodies: collection(t, 1, DefaultPageSize)}

	_, err := FetchAll(context.Background(), f.fetch, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{DefaultPageSize}, f.limits)
}

func TestFetchAll_LaterPageFailsToDecode(t *testing.T) {
	f := &fakePages{bodies: collection(t, 7, 3)}
	f.bodies[2] = []byte(`{"limit":3,"page":2}`)

	got, err := FetchAll(context.Background(), f.fetch, 3)
	require.Error(t, err)
	assert.Nil(t, got, "no partial result")

	var abort *AggregationAbort
	require.ErrorAs(t, err, &abort)
	assert.Equal(t, 2, abort.Page)
	assert.ErrorIs(t, err, models.ErrDecode)
	assert.Equal(t, []int{1, 2}, f.calls, "page 3 is never requested")
}

func TestFetchAll_LaterPageHasInvalidItem(t *testing.T) {
	f := &fakePages{bodies: collection(t, 6, 3)}
	bad := entryObj(5)
	bad["is_starred"] = 7
	f.bodies[2] = mustJSON(t, map[string]any{
		"page": 2, "pages": 2, "limit": 3, "total": 6,
		"_embedded": map[string]any{"items": []any{entryObj(4), bad, entryObj(6)}},
	})

	got, err := FetchAll(context.Background(), f.fetch, 3)
	assert.Nil(t, got)

	var de *models.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, models.InvalidBoolean, de.Kind)
	assert.Equal(t, "is_starred", de.Field)

	var abort *AggregationAbort
	require.ErrorAs(t, err, &abort)
	assert.Equal(t, 2, abort.Page)
}

func TestFetchAll_FirstPageFailsToDecode(t *testing.T) {
	f := &fakePages{bodies: map[int][]byte{1: []byte(`{"page":1,"pages":1,"total":1}`)}}

	got, err := FetchAll(context.Background(), f.fetch, 3)
	assert.Nil(t, got)

	var de *models.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "limit", de.Field)

	var abort *AggregationAbort
	assert.False(t, errors.As(err, &abort), "page 1 decode failures are not aborts")
}

func TestFetchAll_ZeroLimitWithItems(t *testing.T) {
	f := &fakePages{bodies: map[int][]byte{1: pageBody(t, 1, 1, 0, 1, 1)}}

	_, err := FetchAll(context.Background(), f.fetch, 3)
	var de *models.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, models.MissingOrInvalidField, de.Kind)
	assert.Equal(t, "limit", de.Field)
}

func TestFetchAll_ItemCountMismatch(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		body  func(t *testing.T) []byte
		calls []int
	}{
		{
			name:  "short middle page",
			page:  2,
			body:  func(t *testing.T) []byte { return pageBody(t, 2, 3, 3, 7, 4, 5) },
			calls: []int{1, 2},
		},
		{
			name:  "long last page",
			page:  3,
			body:  func(t *testing.T) []byte { return pageBody(t, 3, 3, 3, 7, 7, 8) },
			calls: []int{1, 2, 3},
		},
		{
			name:  "short first page",
			page:  1,
			body:  func(t *testing.T) []byte { return pageBody(t, 1, 3, 3, 7, 1, 2) },
			calls: []int{1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakePages{bodies: collection(t, 7, 3)}
			f.bodies[tt.page] = tt.body(t)

			got, err := FetchAll(context.Background(), f.fetch, 3)
			assert.Nil(t, got)
			require.ErrorIs(t, err, ErrUnexpectedItemCount)

			var abort *AggregationAbort
			require.ErrorAs(t, err, &abort)
			assert.Equal(t, tt.page, abort.Page)
			assert.Equal(t, tt.calls, f.calls)
		})
	}
}

func TestFetchAll_PageNumberMismatch(t *testing.T) {
	f := &fakePages{bodies: collection(t, 9, 3)}
	f.bodies[2] = f.bodies[3]

	got, err := FetchAll(context.Background(), f.fetch, 3)
	assert.Nil(t, got)
	require.ErrorIs(t, err, ErrUnexpectedPage)
}

func TestFetchAll_FirstPageBoundsTheWalk(t *testing.T) {
	f := &fakePages{bodies: collection(t, 6, 3)}
	// Page 2 claims the collection grew; the walk still stops at page 2.
	f.bodies[2] = pageBody(t, 2, 5, 3, 15, 4, 5, 6)

	got, err := FetchAll(context.Background(), f.fetch, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, f.calls)
	assert.Equal(t, seq(6), ids(got))
}

func TestFetchAll_TransportErrorAborts(t *testing.T) {
	f := &fakePages{
		bodies: collection(t, 9, 3),
		errs: map[int]error{
			2: &TransportError{Method: "GET", Path: "/api/entries.json", StatusCode: 503, Err: ErrUnavailable},
		},
	}

	got, err := FetchAll(context.Background(), f.fetch, 3)
	assert.Nil(t, got)
	require.ErrorIs(t, err, ErrUnavailable)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 503, te.StatusCode)
	assert.Contains(t, err.Error(), "page 2")
	assert.Equal(t, []int{1, 2}, f.calls, "no retry, no further pages")
}

func TestFetchAll_ConcurrentMatchesSequential(t *testing.T) {
	bodies := collection(t, 50, 4)

	seqSrc := &fakePages{bodies: bodies}
	want, err := FetchAll(context.Background(), seqSrc.fetch, 4)
	require.NoError(t, err)

	conSrc := &fakePages{bodies: bodies}
	got, err := FetchAll(context.Background(), conSrc.fetch, 4, WithConcurrency(4))
	require.NoError(t, err)

	assert.Equal(t, seq(50), ids(got))
	assert.Equal(t, ids(want), ids(got))

	calls := append([]int(nil), conSrc.calls...)
	sort.Ints(calls)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}, calls)
	assert.Equal(t, 1, conSrc.calls[0], "page 1 always goes first")
}

func TestFetchAll_ConcurrentFailureDiscardsEverything(t *testing.T) {
	f := &fakePages{bodies: collection(t, 20, 2)}
	f.bodies[7] = []byte(`not json`)

	got, err := FetchAll(context.Background(), f.fetch, 2, WithConcurrency(3))
	assert.Nil(t, got)

	var abort *AggregationAbort
	require.ErrorAs(t, err, &abort)
	assert.Equal(t, 7, abort.Page)
}

func TestFetchAll_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakePages{bodies: collection(t, 3, 1)}
	got, err := FetchAll(ctx, f.fetch, 1)
	assert.Nil(t, got)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.calls)
}

func TestFetchAll_CancelledMidWalk(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &fakePages{bodies: collection(t, 5, 1)}
	f.onFetch = func(page int) {
		if page == 2 {
			cancel()
		}
	}

	got, err := FetchAll(ctx, f.fetch, 1)
	assert.Nil(t, got)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{1, 2}, f.calls)
}

func TestBounds_Expected(t *testing.T) {
	b := bounds{limit: 3, total: 7, pages: 3}
	assert.Equal(t, int64(3), b.expected(1))
	assert.Equal(t, int64(3), b.expected(2))
	assert.Equal(t, int64(1), b.expected(3))
}
