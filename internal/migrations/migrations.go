// Package migrations embeds the schema migrations, one directory per
// database driver, for golang-migrate's iofs source.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
