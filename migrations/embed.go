package migrations

import "embed"

// FS holds the SQL migrations of every supported backend, one directory each.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
