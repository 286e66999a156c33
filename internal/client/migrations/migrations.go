// Package migrations embeds the SQLite schema migrations for the client's
// local store, applied by goose at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
