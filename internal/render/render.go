package render

import (
	"context"
	"image"
	"image/color"

	"github.com/splashpage/splash/internal/state"
)

type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	SetScreen(screen Screen)
	RunLoop(ctx context.Context, store *state.Store, frames FrameSource)
	RedrawWithState(snap state.State)
}

type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(r Drawer, s state.State)
}

// FrameSource is advanced once per display refresh, before the screen is
// redrawn. page.Page implements it.
type FrameSource interface {
	Tick() int
}

// Stub implementations
type NoopRenderer struct{}

func (n *NoopRenderer) Start(ctx context.Context) error { return nil }
func (n *NoopRenderer) Stop() error                     { return nil }
func (n *NoopRenderer) SetScreen(screen Screen)         {}
func (n *NoopRenderer) RunLoop(ctx context.Context, store *state.Store, frames FrameSource) {
	<-ctx.Done()
}
func (n *NoopRenderer) RedrawWithState(snap state.State) {}

// Drawer is an abstraction the renderer provides to screens to draw primitives
// without exposing low-level framebuffer details.
type Drawer interface {
	// Size returns the logical canvas size (in pixels) that screens draw into.
	Size() (width int, height int)

	FillBackground()

	// DrawLayer composites a full-canvas layer (such as the dot field) over
	// what has been drawn so far.
	DrawLayer(img image.Image)

	DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode)

	// DrawTextCentered draws one line of text centred horizontally with its
	// baseline at y.
	DrawTextCentered(text string, y int, style TextStyle)
}

// TextStyle describes how to render text.
type TextStyle struct {
	Color color.Color
	Size  int // font size in points; 0 means renderer default
}

type ScaleMode int

const (
	ScaleModeFit ScaleMode = iota
	ScaleModeStretch
)
