// Package migrations embeds the SQL schema shared by the postgres and sqlite slot stores.
package migrations

import "embed"

// FS holds the numbered up/down migration files
//
//go:embed *.sql
var FS embed.FS
