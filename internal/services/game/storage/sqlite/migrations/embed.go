// Package migrations contains embedded SQL migrations for the game store.
package migrations

import "embed"

// FS holds the game schema migrations.
//
//go:embed *.sql
var FS embed.FS
