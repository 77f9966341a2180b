// Package migrations embeds the schema migration files for strm.db.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
