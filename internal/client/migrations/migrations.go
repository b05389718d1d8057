// Package migrations embeds the goose migrations of the local entry cache,
// one directory per SQL dialect.
package migrations

import "embed"

// Dialect directories inside Migrations.
const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
