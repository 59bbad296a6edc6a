// Package migrations embeds the SQL migration files for the metadata
// store.
package migrations

import "embed"

// FS holds the migration files, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
