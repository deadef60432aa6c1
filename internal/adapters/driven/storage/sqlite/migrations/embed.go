// Package migrations embeds the numbered SQL migrations of the harvest database.
package migrations

import "embed"

// FS holds the *.up.sql and *.down.sql files.
//
//go:embed *.sql
var FS embed.FS
