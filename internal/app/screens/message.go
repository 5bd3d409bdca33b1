package screens

import (
	"context"

	"github.com/splashpage/splash/internal/render"
	"github.com/splashpage/splash/internal/state"
)

// MessageScreen shows a single line of text, e.g. while shutting down.
type MessageScreen struct {
	Text string
}

func (MessageScreen) Start(ctx context.Context) error { return nil }
func (MessageScreen) Stop() error                     { return nil }

func (m MessageScreen) Draw(drawer render.Drawer, currentState state.State) {
	drawer.FillBackground()
	_, height := drawer.Size()
	drawer.DrawTextCentered(m.Text, height/2, render.TextStyle{Color: render.Foreground})
}
