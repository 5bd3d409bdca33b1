// Package page is an in-process stand-in for a browser window and document:
// it owns the viewport, named mounting elements, resize notifications and the
// display-refresh queue that animations schedule their frames on.
package page

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/splashpage/splash/internal/dots"
)

// Page implements dots.Host.
//
// Resize and Tick must be driven from one goroutine; registration methods
// may be called from anywhere.
type Page struct {
	mu         sync.Mutex
	width      int
	height     int
	containers map[string]*Container
	handlers   []*resizeHandler
	frames     []func()
	tasks      []func()
	ticks      uint64
}

type resizeHandler struct {
	fn func()
}

func New(width, height int) *Page {
	return &Page{width: width, height: height, containers: map[string]*Container{}}
}

// AddContainer registers a mounting element. Surfaces appended to it are
// created by newSurface.
func (p *Page) AddContainer(id string, newSurface func() dots.Surface) *Container {
	c := &Container{id: id, newSurface: newSurface}
	p.mu.Lock()
	p.containers[id] = c
	p.mu.Unlock()
	return c
}

// Container returns the element registered under id. The result is a nil
// interface when there is none.
func (p *Page) Container(id string) dots.Container {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.containers[id]
	if !ok {
		return nil
	}
	return c
}

// Lookup is like Container but returns the concrete element.
func (p *Page) Lookup(id string) (*Container, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.containers[id]
	return c, ok
}

func (p *Page) ViewportSize() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height
}

func (p *Page) OnResize(fn func()) func() {
	h := &resizeHandler{fn: fn}
	p.mu.Lock()
	p.handlers = append(p.handlers, h)
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, existing := range p.handlers {
			if existing == h {
				p.handlers = append(p.handlers[:i], p.handlers[i+1:]...)
				return
			}
		}
	}
}

func (p *Page) RequestFrame(fn func()) {
	p.mu.Lock()
	p.frames = append(p.frames, fn)
	p.mu.Unlock()
}

// Resize changes the viewport and notifies resize handlers in registration
// order. Setting the current size again is not a change.
func (p *Page) Resize(width, height int) {
	p.mu.Lock()
	if p.width == width && p.height == height {
		p.mu.Unlock()
		return
	}
	p.width = width
	p.height = height
	handlers := make([]*resizeHandler, len(p.handlers))
	copy(handlers, p.handlers)
	p.mu.Unlock()

	for _, h := range handlers {
		h.fn()
	}
}

// Post queues fn to run on the refresh goroutine at the start of the next
// Tick, before frame callbacks. Other goroutines use it to resize the page.
func (p *Page) Post(fn func()) {
	p.mu.Lock()
	p.tasks = append(p.tasks, fn)
	p.mu.Unlock()
}

// Tick is one display refresh: it runs posted tasks, then the frame
// callbacks that were queued before it started, and returns how many frame
// callbacks ran. Callbacks requested while the tick runs wait for the next
// one.
func (p *Page) Tick() int {
	p.mu.Lock()
	tasks := p.tasks
	p.tasks = nil
	p.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}

	p.mu.Lock()
	pending := p.frames
	p.frames = nil
	p.ticks++
	p.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Pending returns the number of frame callbacks waiting for the next tick.
func (p *Page) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

func (p *Page) Ticks() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticks
}

// RunConfig controls the headless refresh loop.
type RunConfig struct {
	Hz    int
	Ticks uint64 // stop after this many ticks; 0 runs until ctx is done
}

// Run drives Tick from a ticker until ctx is cancelled or cfg.Ticks refreshes
// have happened.
func (p *Page) Run(ctx context.Context, cfg RunConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid refresh rate: %d hz", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var n uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			p.Tick()
			n++
			if cfg.Ticks > 0 && n >= cfg.Ticks {
				return nil
			}
		}
	}
}

// Container is a mounting element on a Page.
type Container struct {
	id         string
	newSurface func() dots.Surface

	mu       sync.Mutex
	surfaces []dots.Surface
}

func (c *Container) ID() string { return c.id }

// AppendSurface creates a surface and attaches it as the last child.
func (c *Container) AppendSurface() dots.Surface {
	s := c.newSurface()
	c.mu.Lock()
	c.surfaces = append(c.surfaces, s)
	c.mu.Unlock()
	return s
}

// RemoveSurface detaches s. Surfaces the container does not hold are ignored.
func (c *Container) RemoveSurface(s dots.Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, have := range c.surfaces {
		if have == s {
			c.surfaces = append(c.surfaces[:i], c.surfaces[i+1:]...)
			return
		}
	}
}

// Surfaces returns the attached surfaces in attach order.
func (c *Container) Surfaces() []dots.Surface {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]dots.Surface, len(c.surfaces))
	copy(out, c.surfaces)
	return out
}
