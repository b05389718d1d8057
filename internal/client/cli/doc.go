// Package cli provides the interactive wallabag command-line client.
//
// It wires configuration, the local entry cache, API services, and an
// interactive REPL that keeps working from the cache while the server is
// unreachable. Typical flow: pick an access token (configured, remembered or
// prompted), start a background connectivity watcher, and execute user
// commands.
//
// Key features:
//   - List / Show cached entries (archived, starred, by tag)
//   - Add, Delete, Archive and Star entries on the server
//   - Sync the whole collection into the cache
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
