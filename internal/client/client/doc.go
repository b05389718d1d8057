// Package client talks to a wallabag server over its REST API.
//
// # Overview
//
// The package provides:
//  1. The Client interface used by the services layer.
//  2. HTTPClient, its net/http implementation: bearer token, request ids,
//     request pacing and mapping of HTTP statuses to sentinel errors.
//  3. FetchAll, which walks a paginated entry listing and returns either
//     every entry in server order or an error, never a partial result.
//
// # Error Handling
//
// Transport failures are *TransportError values wrapping one of
// ErrUnavailable, ErrUnauthorized or ErrRejected. A listing that stops after
// page 1 is reported as *AggregationAbort; ErrUnexpectedItemCount and
// ErrUnexpectedPage mark pages that contradict the first one. Body decoding
// errors are *models.DecodeError.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
