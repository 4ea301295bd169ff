// Package migrations holds the ledger's SQL schema migrations. The files
// are compiled into binaries so the server and tests can migrate without a
// checkout on disk.
package migrations

import "embed"

// FS contains every *.up.sql and *.down.sql file in this directory
//
//go:embed *.sql
var FS embed.FS
