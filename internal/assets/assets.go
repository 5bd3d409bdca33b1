package assets

import (
	"embed"
	"io/fs"
)

//go:embed site
var siteFS embed.FS

// Site is the default site served at "/", rooted at internal/assets/site.
var Site fs.FS

func init() {
	// Embed paths include the leading directory; strip it for serving at '/'.
	sub, err := fs.Sub(siteFS, "site")
	if err != nil {
		panic(err)
	}
	Site = sub
}
