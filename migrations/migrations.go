// Package migrations embeds the SQL schema files shipped with the binary.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql
var files embed.FS

// SQLite returns the SQLite migrations rooted at their directory
func SQLite() fs.FS {
	sub, err := fs.Sub(files, "sqlite")
	if err != nil {
		// the directory is embedded above, so this can only be a build problem
		panic(err)
	}
	return sub
}
