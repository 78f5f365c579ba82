// Package appfs exposes the repo's embedded static files (database migrations).
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
