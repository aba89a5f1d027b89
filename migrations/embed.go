// Package migrations embeds the SQL schema migrations so the binary can
// bootstrap a fresh database without external files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
