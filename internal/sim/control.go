// Package sim drives the dot field outside the device: it owns the page the
// simulator renders and exposes debug endpoints to poke at it.
package sim

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/splashpage/splash/internal/dots"
	"github.com/splashpage/splash/internal/page"
)

const maxViewport = 8192

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Control owns the simulated page and its running animation. Mutations are
// posted to the page so they run on the refresh goroutine.
type Control struct {
	Page     *page.Page
	Animator *dots.Animator
	Logger   logger

	anim atomic.Pointer[dots.Animation]
}

func NewControl(p *page.Page, animator *dots.Animator) *Control {
	if animator == nil {
		animator = dots.NewAnimator()
	}
	return &Control{Page: p, Animator: animator}
}

// Start mounts the first animation. It must run before the refresh loop.
func (c *Control) Start() *dots.Animation {
	c.restart()
	return c.anim.Load()
}

func (c *Control) restart() {
	if c.Logger != nil {
		c.Animator.Logger = c.Logger
	}
	if old := c.anim.Swap(c.Animator.Start(c.Page)); old != nil {
		old.Stop()
	}
}

// Reset replaces the running animation with a freshly seeded one on the next
// refresh.
func (c *Control) Reset() { c.Page.Post(c.restart) }

// Stop ends the running animation. It is safe from any goroutine.
func (c *Control) Stop() {
	if anim := c.anim.Load(); anim != nil {
		anim.Stop()
	}
}

// Resize changes the viewport on the next refresh.
func (c *Control) Resize(width, height int) error {
	if width <= 0 || height <= 0 || width > maxViewport || height > maxViewport {
		return fmt.Errorf("invalid viewport %dx%d", width, height)
	}
	c.Page.Post(func() { c.Page.Resize(width, height) })
	return nil
}

func (c *Control) Animation() *dots.Animation { return c.anim.Load() }

// Snapshot implements web.FieldSource.
func (c *Control) Snapshot() (dots.Snapshot, bool) {
	anim := c.anim.Load()
	if anim == nil || !anim.Mounted() {
		return dots.Snapshot{}, false
	}
	return anim.Snapshot(), true
}

// RegisterEndpoints adds the /sim/ debug routes to mux.
func (c *Control) RegisterEndpoints(mux *http.ServeMux) {
	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		c.Reset()
		writeSimJSON(w, http.StatusAccepted, map[string]any{"ok": true})
	})

	mux.HandleFunc("/sim/stop", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		c.Stop()
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/sim/resize", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeSimError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := c.Resize(req.Width, req.Height); err != nil {
			writeSimError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeSimJSON(w, http.StatusAccepted, map[string]any{"ok": true, "width": req.Width, "height": req.Height})
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"ok": false, "error": message})
}
