package render

import (
	"context"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"

	"github.com/splashpage/splash/internal/state"
)

const defaultFBDevice = "/dev/fb0"

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	// Device is the framebuffer path; empty means /dev/fb0.
	Device string
	// FPS is the display refresh rate of RunLoop; 0 means 60.
	FPS int

	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
	Debug bool

	fbDev   *fb.Device
	drawer  *CanvasDrawer
	running atomic.Bool

	mu      sync.Mutex
	current Screen
}

func NewFBRenderer() *FBRenderer { return &FBRenderer{} }

func (r *FBRenderer) Start(ctx context.Context) error {
	path := r.Device
	if path == "" {
		path = defaultFBDevice
	}
	dev, err := fb.Open(path)
	if err != nil {
		return err
	}
	r.fbDev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", path, bounds.Dx(), bounds.Dy())
	}

	r.drawer = NewCanvasDrawer(CanvasWidth, CanvasHeight)
	if err := r.drawer.FontError(); err != nil && r.Logger != nil {
		r.Logger.Errorf("fb", "truetype parse failed, using basicfont: %v", err)
	}

	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return nil
}

// SetScreen sets the current logical screen to be drawn.
func (r *FBRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.mu.Unlock()
}

// RedrawWithState draws the current screen and pushes it to the framebuffer.
func (r *FBRenderer) RedrawWithState(snap state.State) {
	r.mu.Lock()
	screen := r.current
	r.mu.Unlock()
	if !r.running.Load() || screen == nil || r.fbDev == nil {
		return
	}
	r.drawer.FillBackground()
	screen.Draw(r.drawer, snap)
	_ = blitToFB(r.fbDev, r.drawer.Canvas())
}

// RunLoop is the display refresh: every tick it advances frames, then
// redraws, until the context is done.
func (r *FBRenderer) RunLoop(ctx context.Context, store *state.Store, frames FrameSource) {
	fps := r.FPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	lastLog := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if frames != nil {
				frames.Tick()
			}
			store.AddFrame()
			snap := store.Snapshot()
			r.RedrawWithState(snap)
			if r.Logger != nil && r.Debug && time.Since(lastLog) > time.Second {
				r.Logger.Infof("fb", "heartbeat frame=%d phase=%s", snap.Frames, snap.Phase)
				lastLog = time.Now()
			}
		}
	}
}

// Helper: blit canvas to framebuffer via nearest-neighbor scaling.
func blitToFB(dev *fb.Device, canvas *image.RGBA) error {
	if dev == nil {
		return nil
	}
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	cw, ch := canvas.Bounds().Dx(), canvas.Bounds().Dy()
	for y := 0; y < fbHeight; y++ {
		sy := (y * ch) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * cw) / fbWidth
			pixel := canvas.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
	return nil
}
