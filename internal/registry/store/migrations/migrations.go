// Package migrations embeds the registry's SQLite schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
