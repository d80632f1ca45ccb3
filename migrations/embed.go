// Package migrations embeds the database migration scripts.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
