package migrations

import "embed"

// FS holds the SQL migrations of the price history schema.
//
//go:embed *.sql
var FS embed.FS
