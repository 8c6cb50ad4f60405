// Package web embeds the single-page task client and serves it over HTTP.
// The client talks to the /api/tasks endpoints and re-fetches the full list
// after every mutation; the server list is its sole source of truth.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var assets embed.FS

// Handler serves the embedded client assets with index.html at the root.
func Handler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		// Unreachable for a correct embed directive.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
