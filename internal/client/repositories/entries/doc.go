// Package entries is the local cache of wallabag entries.
//
// Each row keeps a few indexed columns used for filtering and ordering
// (archived, starred, created_at) next to a payload column holding the
// canonical JSON of the whole entry, so that reading a row back yields
// exactly the entry that was written.
//
// Two implementations share the Repository contract: SQLiteRepository for
// the default on-disk cache and PostgresRepository for a shared cache. Both
// work over dbx.DBTX, so they can be bound to a *sql.DB or to a *sql.Tx.
package entries
