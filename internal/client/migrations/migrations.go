// Package migrations embeds the goose migrations of the client key store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
