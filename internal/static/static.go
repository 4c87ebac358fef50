package static

import (
	"embed"
	"net/http"
)

// Static assets embedded at build time
//
//go:embed *.css *.js
var assets embed.FS

// Handler serves the embedded assets. Mount it with the prefix stripped.
// Requests carrying a version query are cached for a year since the version
// changes with the content.
func Handler() http.Handler {
	files := http.FileServer(http.FS(assets))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "" {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		files.ServeHTTP(w, r)
	})
}
