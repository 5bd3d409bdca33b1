package web

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/splashpage/splash/internal/dots"
	"github.com/splashpage/splash/internal/render"
	"github.com/splashpage/splash/internal/state"
)

// FieldSource provides the running dot field. The app implements it.
type FieldSource interface {
	Snapshot() (dots.Snapshot, bool)
}

// StatusSource provides the shared app state. *state.Store implements it.
type StatusSource interface {
	Snapshot() state.State
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type viewportResponse struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type statusResponse struct {
	Phase         string           `json:"phase"`
	Viewport      viewportResponse `json:"viewport"`
	DisplayFrames uint64           `json:"displayFrames"`
	Mounted       bool             `json:"mounted"`
	FieldFrames   uint64           `json:"fieldFrames"`
	Particles     int              `json:"particles"`
	URL           string           `json:"url,omitempty"`
	Error         string           `json:"error,omitempty"`
}

func apiV1Router(cfg APIV1Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, cfg) })
	mux.HandleFunc("/field.svg", func(w http.ResponseWriter, r *http.Request) { handleFieldSVG(w, r, cfg.Field) })
	mux.HandleFunc("/field.png", func(w http.ResponseWriter, r *http.Request) { handleFieldPNG(w, r, cfg.Field) })
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusNotFound, "not_found", "not found")
	})
	return mux
}

func handleStatus(w http.ResponseWriter, r *http.Request, cfg APIV1Config) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	resp := statusResponse{Phase: state.BOOTING.String()}
	if cfg.Store != nil {
		st := cfg.Store.Snapshot()
		resp.Phase = st.Phase.String()
		resp.Viewport = viewportResponse{Width: st.Viewport.Width, Height: st.Viewport.Height}
		resp.DisplayFrames = st.Frames
		resp.URL = st.Network.URL
		resp.Error = st.Err
	}
	if cfg.Field != nil {
		if snap, ok := cfg.Field.Snapshot(); ok {
			resp.Mounted = true
			resp.FieldFrames = snap.Frames
			resp.Particles = len(snap.Particles)
			if cfg.Store == nil {
				resp.Viewport = viewportResponse{Width: snap.Width, Height: snap.Height}
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleFieldSVG(w http.ResponseWriter, r *http.Request, field FieldSource) {
	snap, ok := fieldSnapshot(w, r, field)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, snap); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	writeImage(w, "image/svg+xml", buf.Bytes())
}

func handleFieldPNG(w http.ResponseWriter, r *http.Request, field FieldSource) {
	snap, ok := fieldSnapshot(w, r, field)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.WritePNG(&buf, snap); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	writeImage(w, "image/png", buf.Bytes())
}

// fieldSnapshot validates the request and fetches the current frame. It
// writes the error response itself when it returns false.
func fieldSnapshot(w http.ResponseWriter, r *http.Request, field FieldSource) (dots.Snapshot, bool) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return dots.Snapshot{}, false
	}
	if field == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "no_field", "dot field not running")
		return dots.Snapshot{}, false
	}
	snap, ok := field.Snapshot()
	if !ok || len(snap.Particles) == 0 {
		writeAPIError(w, http.StatusServiceUnavailable, "no_field", "dot field not running")
		return dots.Snapshot{}, false
	}
	return snap, true
}

func writeImage(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
