// Package common contains shared constants and sentinel errors used across
// the wallabag client components.
package common

const (
	// UserAgent identifies the client to the wallabag server.
	UserAgent = "wallabag-cli/1.0 (+https://github.com/dmitrijs2005/wallabag)"

	// RequestIDHeaderName carries a per-request id that is also logged.
	RequestIDHeaderName = "X-Request-Id"

	// AuthorizationHeaderName carries the bearer access token.
	AuthorizationHeaderName = "Authorization"
)
