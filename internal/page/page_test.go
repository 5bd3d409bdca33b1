package page

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/splashpage/splash/internal/dots"
)

type sizedSurface struct {
	width, height int
	draws         int
}

func (s *sizedSurface) Size() (int, int)          { return s.width, s.height }
func (s *sizedSurface) SetSize(width, height int) { s.width, s.height = width, height }
func (s *sizedSurface) Clear()                    {}
func (s *sizedSurface) FillCircle(x, y, r float64, fill color.NRGBA) {
	s.draws++
}

func newSurface() dots.Surface { return &sizedSurface{} }

func TestContainerMissingIsNilInterface(t *testing.T) {
	p := New(10, 10)
	if c := p.Container("nope"); c != nil {
		t.Fatalf("expected nil container, got %#v", c)
	}
}

func TestResizeNotifiesInOrder(t *testing.T) {
	p := New(800, 600)
	var calls []string
	p.OnResize(func() { calls = append(calls, "a") })
	remove := p.OnResize(func() { calls = append(calls, "b") })
	p.OnResize(func() { calls = append(calls, "c") })

	p.Resize(400, 300)
	remove()
	p.Resize(200, 100)
	p.Resize(200, 100)

	want := []string{"a", "b", "c", "a", "c"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
	if w, h := p.ViewportSize(); w != 200 || h != 100 {
		t.Fatalf("viewport = %dx%d, want 200x100", w, h)
	}
}

func TestTickRunsOnlyQueuedFrames(t *testing.T) {
	p := New(10, 10)
	runs := 0
	var loop func()
	loop = func() {
		runs++
		p.RequestFrame(loop)
	}
	p.RequestFrame(loop)

	if n := p.Tick(); n != 1 {
		t.Fatalf("expected 1 callback, got %d", n)
	}
	if runs != 1 || p.Pending() != 1 {
		t.Fatalf("expected the re-request to wait, runs=%d pending=%d", runs, p.Pending())
	}
	p.Tick()
	if runs != 2 {
		t.Fatalf("expected 2 runs after 2 ticks, got %d", runs)
	}
}

func TestAnimationOnPage(t *testing.T) {
	p := New(800, 600)
	c := p.AddContainer(dots.MountID, newSurface)

	anim := dots.NewAnimator().Start(p)
	defer anim.Stop()

	surfaces := c.Surfaces()
	if len(surfaces) != 1 {
		t.Fatalf("expected one surface, got %d", len(surfaces))
	}
	s := surfaces[0].(*sizedSurface)

	for i := 0; i < 3; i++ {
		p.Tick()
	}
	if s.draws != 3*70 {
		t.Fatalf("expected %d circle draws, got %d", 3*70, s.draws)
	}

	p.Resize(400, 300)
	if s.width != 400 || s.height != 300 {
		t.Fatalf("expected surface to follow viewport, got %dx%d", s.width, s.height)
	}

	anim.Stop()
	p.Tick()
	if p.Pending() != 0 {
		t.Fatalf("expected frame loop to end after stop, pending=%d", p.Pending())
	}
}

func TestRestartKeepsOneSurface(t *testing.T) {
	p := New(800, 600)
	c := p.AddContainer(dots.MountID, newSurface)
	animator := dots.NewAnimator()

	anim := animator.Start(p)
	for i := 0; i < 5; i++ {
		p.Tick()
		next := animator.Start(p)
		anim.Stop()
		anim = next
	}
	p.Tick()

	surfaces := c.Surfaces()
	if len(surfaces) != 1 {
		t.Fatalf("expected one surface after restarts, got %d", len(surfaces))
	}
	if surfaces[0] != anim.Surface() {
		t.Fatal("expected the live animation's surface to be the one attached")
	}

	anim.Stop()
	if n := len(c.Surfaces()); n != 0 {
		t.Fatalf("expected stop to detach the surface, got %d attached", n)
	}
}

func TestRemoveSurfaceIgnoresUnknown(t *testing.T) {
	p := New(10, 10)
	c := p.AddContainer(dots.MountID, newSurface)
	c.AppendSurface()
	c.RemoveSurface(newSurface())
	if n := len(c.Surfaces()); n != 1 {
		t.Fatalf("expected unknown surface to be ignored, got %d attached", n)
	}
}

func TestRunStopsAfterTicks(t *testing.T) {
	p := New(10, 10)
	runs := 0
	var loop func()
	loop = func() {
		runs++
		p.RequestFrame(loop)
	}
	p.RequestFrame(loop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Run(ctx, RunConfig{Hz: 1000, Ticks: 5}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if runs != 5 || p.Ticks() != 5 {
		t.Fatalf("expected 5 runs and ticks, got %d and %d", runs, p.Ticks())
	}
}

func TestRunHonoursContext(t *testing.T) {
	p := New(10, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Run(ctx, RunConfig{Hz: 60}); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPostRunsBeforeFrames(t *testing.T) {
	p := New(800, 600)
	var order []string
	p.RequestFrame(func() {
		w, _ := p.ViewportSize()
		order = append(order, "frame")
		if w != 400 {
			t.Errorf("frame saw width %d, want 400", w)
		}
	})
	p.Post(func() {
		order = append(order, "task")
		p.Resize(400, 300)
	})

	p.Tick()
	if len(order) != 2 || order[0] != "task" || order[1] != "frame" {
		t.Fatalf("order = %v", order)
	}
	p.Tick()
	if len(order) != 2 {
		t.Fatalf("expected tasks to run once, got %v", order)
	}
}
