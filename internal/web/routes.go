package web

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/splashpage/splash/internal/assets"
)

type APIV1Config struct {
	Field FieldSource
	Store StatusSource
}

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, cfg APIV1Config) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(cfg)))
}

// RegisterUI serves the site with its external links tagged for origin.
func RegisterUI(mux *http.ServeMux, staticDir, origin string) {
	mux.Handle("/", WithLinkTagging(origin, StaticUIHandler(staticDir)))
}

// NewDefaultMux builds the standard mux used by both the device and simulator:
// - /api/v1/* for the API
// - / for the site
func NewDefaultMux(staticDir string, cfg APIV1Config, origin string) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, cfg)
	RegisterUI(mux, staticDir, origin)
	return mux
}

// StaticUIHandler serves the embedded site, or staticDir when it is set.
// A staticDir that is not an existing directory serves 404s.
func StaticUIHandler(staticDir string) http.Handler {
	var fileServer http.Handler
	switch {
	case staticDir == "":
		fileServer = http.FileServer(http.FS(assets.Site))
	default:
		if st, err := os.Stat(staticDir); err != nil || !st.IsDir() {
			return http.NotFoundHandler()
		}
		fileServer = http.FileServer(http.Dir(staticDir))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Clean path to avoid oddities.
		r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
		fileServer.ServeHTTP(w, r)
	})
}
