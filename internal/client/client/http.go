package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/wallabag/internal/client/models"
	"github.com/dmitrijs2005/wallabag/internal/common"
	"github.com/dmitrijs2005/wallabag/internal/logging"
)

// maxBodySize bounds every response body read by HTTPClient.
const maxBodySize = 32 << 20

// HTTPClient talks to the wallabag REST API. It is safe for concurrent use.
type HTTPClient struct {
	baseURL  *url.URL
	http     *http.Client
	limiter  *rate.Limiter
	logger   logging.Logger
	pageSize int
	workers  int

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (transport, timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithRateLimit paces requests to at most rps per second. rps <= 0 disables
// pacing.
func WithRateLimit(rps float64) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// WithPageSize sets the perPage value used by GetEntries.
func WithPageSize(n int) Option {
	return func(c *HTTPClient) { c.pageSize = n }
}

// WithWorkers sets how many listing pages GetEntries fetches at once after
// the first one.
func WithWorkers(n int) Option {
	return func(c *HTTPClient) { c.workers = n }
}

// NewWallabagClient returns a client for the instance at endpointURL
// authenticating with the given access token.
func NewWallabagClient(endpointURL, token string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(endpointURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: server url: %v", common.ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: server url %q must be http(s)://host", common.ErrInvalidConfig, endpointURL)
	}

	c := &HTTPClient{
		baseURL:  u,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   logging.NewNop(),
		pageSize: DefaultPageSize,
		workers:  1,
		token:    token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetToken replaces the access token used by subsequent requests.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/version", nil, nil)
	return err
}

func (c *HTTPClient) GetEntries(ctx context.Context, filter EntriesFilter) (models.Entries, error) {
	base := filter.values()
	fetch := func(ctx context.Context, page, limit int) ([]byte, error) {
		q := maps.Clone(base)
		q.Set("page", strconv.Itoa(page))
		q.Set("perPage", strconv.Itoa(limit))
		return c.do(ctx, http.MethodGet, "/api/entries.json", q, nil)
	}
	return FetchAll(ctx, fetch, c.pageSize, WithConcurrency(c.workers), WithPageLogger(c.logger))
}

func (c *HTTPClient) GetEntry(ctx context.Context, id models.Identifier) (*models.Entry, error) {
	body, err := c.do(ctx, http.MethodGet, entryPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return models.DecodeEntry(body)
}

func (c *HTTPClient) CreateEntry(ctx context.Context, e NewEntry) (*models.Entry, error) {
	if e.URL == "" {
		return nil, fmt.Errorf("%w: entry url is empty", ErrRejected)
	}
	body, err := c.do(ctx, http.MethodPost, "/api/entries.json", nil, e.values())
	if err != nil {
		return nil, err
	}
	return models.DecodeEntry(body)
}

func (c *HTTPClient) UpdateEntry(ctx context.Context, id models.Identifier, patch EntryPatch) (*models.Entry, error) {
	body, err := c.do(ctx, http.MethodPatch, entryPath(id), nil, patch.values())
	if err != nil {
		return nil, err
	}
	return models.DecodeEntry(body)
}

// DeleteEntry deletes the entry and returns it as it was just before
// deletion. The response carries no id, so the returned entry takes the
// id of the request.
func (c *HTTPClient) DeleteEntry(ctx context.Context, id models.Identifier) (*models.Entry, error) {
	body, err := c.do(ctx, http.MethodDelete, entryPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return models.DecodeDeletedEntry(body, id)
}

func (c *HTTPClient) GetTags(ctx context.Context) (models.Tags, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/tags.json", nil, nil)
	if err != nil {
		return nil, err
	}
	return models.DecodeTags(body)
}

// do performs one request and returns the body of a 2xx response. Every
// other outcome is a *TransportError.
func (c *HTTPClient) do(ctx context.Context, method, path string, query, form url.Values) ([]byte, error) {
	fail := func(code int, err error) error {
		return &TransportError{Method: method, Path: path, StatusCode: code, Err: err}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fail(0, err)
		}
	}

	u := c.baseURL.JoinPath(path)
	u.RawQuery = query.Encode()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fail(0, err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", common.UserAgent)
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if tok := c.accessToken(); tok != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+tok)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		if errors.Is(err, context.Canceled) {
			return nil, fail(0, err)
		}
		return nil, fail(0, errors.Join(ErrUnavailable, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	c.logger.Debug(ctx, "request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"bytes", len(data),
		"elapsed", time.Since(start),
	)
	if err != nil {
		return nil, fail(resp.StatusCode, errors.Join(ErrUnavailable, err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fail(resp.StatusCode, statusError(resp.StatusCode))
	}
	if len(data) > maxBodySize {
		return nil, fail(resp.StatusCode, fmt.Errorf("%w: response body exceeds %d bytes", ErrRejected, maxBodySize))
	}
	return data, nil
}

func entryPath(id models.Identifier) string {
	return fmt.Sprintf("/api/entries/%d.json", id.EntryID())
}

// intBool renders a boolean the way the API expects it in requests.
func intBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (f EntriesFilter) values() url.Values {
	q := url.Values{}
	if f.Archived != nil {
		q.Set("archive", intBool(*f.Archived))
	}
	if f.Starred != nil {
		q.Set("starred", intBool(*f.Starred))
	}
	if len(f.Tags) > 0 {
		q.Set("tags", strings.Join(f.Tags, ","))
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if f.Order != "" {
		q.Set("order", f.Order)
	}
	if f.Since != nil {
		q.Set("since", strconv.FormatInt(f.Since.Unix(), 10))
	}
	return q
}

func (e NewEntry) values() url.Values {
	q := url.Values{"url": {e.URL}}
	if e.Title != nil {
		q.Set("title", *e.Title)
	}
	if len(e.Tags) > 0 {
		q.Set("tags", strings.Join(e.Tags, ","))
	}
	if e.Archived != nil {
		q.Set("archive", intBool(*e.Archived))
	}
	if e.Starred != nil {
		q.Set("starred", intBool(*e.Starred))
	}
	return q
}

func (p EntryPatch) values() url.Values {
	q := url.Values{}
	if p.Title != nil {
		q.Set("title", *p.Title)
	}
	if p.Tags != nil {
		q.Set("tags", strings.Join(*p.Tags, ","))
	}
	if p.Archived != nil {
		q.Set("archive", intBool(*p.Archived))
	}
	if p.Starred != nil {
		q.Set("starred", intBool(*p.Starred))
	}
	if p.Public != nil {
		q.Set("public", intBool(*p.Public))
	}
	return q
}
