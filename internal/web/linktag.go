package web

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"

	"github.com/splashpage/splash/internal/links"
)

// WithLinkTagging rewrites HTML pages served by next so that links leaving
// origin open in a new browsing context. An empty origin is derived from
// each request's scheme and Host.
//
// Only complete 200 text/html responses to GET are rewritten; everything
// else is passed through untouched. HEAD is answered from the same rewritten
// GET response so its Content-Length matches, with the body dropped.
func WithLinkTagging(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		// A partial body cannot be rewritten.
		inner := r.Clone(r.Context())
		inner.Method = http.MethodGet
		inner.Header.Del("Range")
		inner.Header.Del("If-Range")

		buf := &bufferedResponse{header: http.Header{}}
		next.ServeHTTP(buf, inner)

		body := buf.body.Bytes()
		if buf.statusCode() == http.StatusOK && isHTML(buf.header.Get("Content-Type")) {
			var out bytes.Buffer
			if _, err := links.TagHTML(bytes.NewReader(body), &out, requestOrigin(origin, r)); err == nil {
				body = out.Bytes()
			}
			buf.header.Set("Content-Length", strconv.Itoa(len(body)))
		}

		for k, v := range buf.header {
			w.Header()[k] = v
		}
		w.WriteHeader(buf.statusCode())
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(body)
	})
}

func requestOrigin(origin string, r *http.Request) string {
	if origin != "" {
		return origin
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "text/html"
}

type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) statusCode() int {
	if b.status == 0 {
		return http.StatusOK
	}
	return b.status
}
