package static

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"path"
	"sync"
)

// Prefix is where the site mounts Handler.
const Prefix = "/static/"

var (
	versionsOnce sync.Once
	versions     map[string]string
)

// Version returns a short content hash for the named asset, or an empty
// string when there is no such asset.
func Version(name string) string {
	versionsOnce.Do(func() {
		versions = make(map[string]string)
		entries, err := fs.ReadDir(assets, ".")
		if err != nil {
			return
		}
		for _, entry := range entries {
			data, err := assets.ReadFile(entry.Name())
			if err != nil {
				continue
			}
			sum := sha256.Sum256(data)
			versions[entry.Name()] = hex.EncodeToString(sum[:])[:12]
		}
	})
	return versions[name]
}

// AssetPath returns the URL for the named asset with its version attached so
// browsers refetch it whenever it changes.
func AssetPath(name string) string {
	p := path.Join(Prefix, name)
	if v := Version(name); v != "" {
		return p + "?v=" + v
	}
	return p
}
