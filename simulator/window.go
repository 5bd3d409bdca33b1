package main

import (
	"context"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/splashpage/splash/internal/dots"
	"github.com/splashpage/splash/internal/page"
	"github.com/splashpage/splash/internal/render"
	"github.com/splashpage/splash/internal/sim"
)

// ebitenSurface is a dots.Surface on an offscreen ebiten image.
type ebitenSurface struct {
	img           *ebiten.Image
	width, height int
}

func (s *ebitenSurface) Size() (int, int) { return s.width, s.height }

func (s *ebitenSurface) SetSize(width, height int) {
	if s.img != nil && s.width == width && s.height == height {
		return
	}
	if s.img != nil {
		s.img.Deallocate()
	}
	s.width, s.height = width, height
	s.img = ebiten.NewImage(max(width, 1), max(height, 1))
}

func (s *ebitenSurface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

func (s *ebitenSurface) FillCircle(x, y, r float64, fill color.NRGBA) {
	if s.img == nil {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), fill, true)
}

// windowHost runs the page inside an ebiten window: window layout changes
// are viewport resizes and every Update is one display refresh.
type windowHost struct {
	page    *page.Page
	control *sim.Control
	ctx     context.Context

	mu            sync.Mutex
	width, height int
}

func newWindowHost(p *page.Page) *windowHost {
	w, h := p.ViewportSize()
	return &windowHost{page: p, width: w, height: h}
}

func (wh *windowHost) newSurface() dots.Surface { return &ebitenSurface{} }

func (wh *windowHost) Run(ctx context.Context, control *sim.Control) error {
	wh.ctx = ctx
	wh.control = control
	ebiten.SetWindowTitle("splash simulator")
	ebiten.SetWindowSize(wh.width, wh.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(wh)
}

func (wh *windowHost) Update() error {
	if wh.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyF4) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		wh.control.Reset()
	}
	wh.page.Tick()
	return nil
}

func (wh *windowHost) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	anim := wh.control.Animation()
	if anim == nil {
		return
	}
	if s, ok := anim.Surface().(*ebitenSurface); ok && s.img != nil {
		screen.DrawImage(s.img, nil)
	}
}

func (wh *windowHost) Layout(outsideWidth, outsideHeight int) (int, int) {
	wh.mu.Lock()
	changed := outsideWidth != wh.width || outsideHeight != wh.height
	wh.width, wh.height = outsideWidth, outsideHeight
	wh.mu.Unlock()
	if changed {
		wh.page.Post(func() { wh.page.Resize(outsideWidth, outsideHeight) })
	}
	return outsideWidth, outsideHeight
}
