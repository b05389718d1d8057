package client

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/wallabag/internal/client/models"
	"github.com/dmitrijs2005/wallabag/internal/logging"
)

// DefaultPageSize is used when FetchAll is given a page size below 1.
const DefaultPageSize = 30

const maxPrealloc = 10_000

// PageFetcher performs one listing request and returns the raw page
// envelope. Pages are numbered from 1.
type PageFetcher func(ctx context.Context, page, limit int) ([]byte, error)

type aggregateOptions struct {
	workers int
	logger  logging.Logger
}

// AggregateOption configures FetchAll.
type AggregateOption func(*aggregateOptions)

// WithConcurrency fetches pages 2..N with up to n requests in flight once
// the first page has reported the page count. n <= 1 means sequential.
func WithConcurrency(n int) AggregateOption {
	return func(o *aggregateOptions) { o.workers = n }
}

// WithPageLogger logs every fetched page at debug level.
func WithPageLogger(l logging.Logger) AggregateOption {
	return func(o *aggregateOptions) { o.logger = l }
}

// bounds is what the first page says the whole collection looks like.
type bounds struct {
	limit int64
	total int64
	pages int
}

// expected returns how many items page n must hold.
func (b bounds) expected(n int) int64 {
	rest := b.total - int64(n-1)*b.limit
	return min(b.limit, rest)
}

// prealloc caps the result capacity so a bogus total cannot force a huge
// allocation up front.
func (b bounds) prealloc() int64 {
	return min(b.total, maxPrealloc)
}

func (b bounds) check(n int, p *models.Page) error {
	if int(p.Page) != n {
		return fmt.Errorf("%w: asked for %d, got %d", ErrUnexpectedPage, n, p.Page)
	}
	if want := b.expected(n); int64(len(p.Items)) != want {
		return fmt.Errorf("%w: page %d has %d items, want %d", ErrUnexpectedItemCount, n, len(p.Items), want)
	}
	return nil
}

// FetchAll walks a paginated listing and returns every item in server
// order: page by page, and within a page as sent.
//
// The page count reported by page 1 is the stopping bound; later pages
// cannot extend it. Any failure discards what was gathered so far:
// errors from fetch on any page are returned wrapped with the page number,
// a page 1 that fails to decode returns its *models.DecodeError, and
// unusable later pages return *AggregationAbort. FetchAll never retries.
func FetchAll(ctx context.Context, fetch PageFetcher, pageSize int, opts ...AggregateOption) (models.Entries, error) {
	o := aggregateOptions{workers: 1, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fetch(ctx, 1, pageSize)
	if err != nil {
		return nil, fmt.Errorf("page 1: %w", err)
	}
	first, err := models.DecodePage(data)
	if err != nil {
		return nil, fmt.Errorf("page 1: %w", err)
	}

	if first.Pages == 0 || first.Total == 0 {
		o.logger.Debug(ctx, "empty collection", "pages", first.Pages, "total", first.Total)
		return models.Entries{}, nil
	}
	if first.Limit == 0 {
		return nil, fmt.Errorf("page 1: %w", &models.DecodeError{Kind: models.MissingOrInvalidField, Field: "limit"})
	}

	b := bounds{limit: int64(first.Limit), total: int64(first.Total), pages: int(first.Pages)}
	if err := b.check(1, first); err != nil {
		return nil, &AggregationAbort{Page: 1, Err: err}
	}
	o.logger.Debug(ctx, "page fetched", "page", 1, "pages", b.pages, "total", b.total, "items", len(first.Items))

	if b.pages == 1 {
		return first.Items, nil
	}

	if o.workers > 1 {
		rest, err := fetchConcurrently(ctx, fetch, pageSize, b, o)
		if err != nil {
			return nil, err
		}
		return append(first.Items, rest...), nil
	}

	out := make(models.Entries, 0, b.prealloc())
	out = append(out, first.Items...)
	for n := 2; n <= b.pages; n++ {
		items, err := fetchPage(ctx, fetch, n, pageSize, b, o.logger)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

// fetchConcurrently fetches pages 2..b.pages with a bounded worker pool and
// concatenates them in page order once all have arrived.
func fetchConcurrently(ctx context.Context, fetch PageFetcher, pageSize int, b bounds, o aggregateOptions) (models.Entries, error) {
	// keyed by page so a bogus page count cannot force a huge allocation
	var mu sync.Mutex
	slots := make(map[int]models.Entries)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for n := 2; n <= b.pages && gctx.Err() == nil; n++ {
		g.Go(func() error {
			items, err := fetchPage(gctx, fetch, n, pageSize, b, o.logger)
			if err != nil {
				return err
			}
			mu.Lock()
			slots[n] = items
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// the loop stops early when the caller cancels
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(models.Entries, 0, b.prealloc())
	for n := 2; n <= b.pages; n++ {
		out = append(out, slots[n]...)
	}
	return out, nil
}

func fetchPage(ctx context.Context, fetch PageFetcher, n, pageSize int, b bounds, log logging.Logger) (models.Entries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fetch(ctx, n, pageSize)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", n, err)
	}
	p, err := models.DecodePage(data)
	if err != nil {
		return nil, &AggregationAbort{Page: n, Err: err}
	}
	if err := b.check(n, p); err != nil {
		return nil, &AggregationAbort{Page: n, Err: err}
	}
	log.Debug(ctx, "page fetched", "page", n, "pages", b.pages, "items", len(p.Items))
	return p.Items, nil
}
