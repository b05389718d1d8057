package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/wallabag/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRejected     = errors.New("request rejected")

	// ErrUnexpectedItemCount: a page held a different number of items than
	// the first page's limit and total imply.
	ErrUnexpectedItemCount = errors.New("unexpected item count")
	// ErrUnexpectedPage: the server answered with a different page number
	// than the one requested.
	ErrUnexpectedPage = errors.New("unexpected page number")
)

// TransportError is any failure of a request/response exchange: network
// errors, timeouts and non-2xx statuses. It unwraps to one of the sentinel
// errors above (or common.ErrNotFound) and to the underlying cause.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: %d %s: %v", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AggregationAbort reports that a listing could not be assembled because a
// page after the first one was unusable. No partial result accompanies it.
type AggregationAbort struct {
	Page int
	Err  error
}

func (e *AggregationAbort) Error() string {
	return fmt.Sprintf("aggregation aborted at page %d: %v", e.Page, e.Err)
}

func (e *AggregationAbort) Unwrap() error { return e.Err }

// statusError maps an HTTP status to a sentinel error.
func statusError(code int) error {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return common.ErrNotFound
	case code == http.StatusTooManyRequests, code >= 500:
		return ErrUnavailable
	default:
		return ErrRejected
	}
}
