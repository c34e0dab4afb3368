// Package migrations embeds the SQL schema migrations applied by goose.
// Each dialect keeps its own directory with identically numbered files.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
