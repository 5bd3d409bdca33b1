package dots

import (
	"image/color"
	"math/rand/v2"
	"reflect"
	"testing"
)

type recordingSurface struct {
	width, height int
	clears        int
	circles       []circle
}

type circle struct {
	x, y, r float64
	fill    color.NRGBA
}

func (s *recordingSurface) Size() (int, int)          { return s.width, s.height }
func (s *recordingSurface) SetSize(width, height int) { s.width, s.height = width, height }
func (s *recordingSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
}
func (s *recordingSurface) FillCircle(x, y, r float64, fill color.NRGBA) {
	s.circles = append(s.circles, circle{x, y, r, fill})
}

func seeded(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }

func TestNewFieldSeedsWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	f := NewField(cfg, 800, 600, seeded(1))

	if f.Len() != 70 {
		t.Fatalf("expected 70 particles, got %d", f.Len())
	}
	for i, p := range f.Particles() {
		if p.X < 0 || p.X >= 800 || p.Y < 0 || p.Y >= 600 {
			t.Fatalf("particle %d outside viewport: (%v, %v)", i, p.X, p.Y)
		}
		if p.VX < -0.18 || p.VX >= 0.18 || p.VY < -0.18 || p.VY >= 0.18 {
			t.Fatalf("particle %d velocity out of range: (%v, %v)", i, p.VX, p.VY)
		}
		if p.R < 2.1 || p.R >= 3.3 {
			t.Fatalf("particle %d radius out of range: %v", i, p.R)
		}
	}
}

func TestParticleBounce(t *testing.T) {
	tests := []struct {
		name   string
		p      Particle
		wantVX float64
		wantVY float64
	}{
		{"past right edge", Particle{X: 801, Y: 300, VX: 0.2, VY: 0}, -0.2, 0},
		{"past left edge", Particle{X: -0.1, Y: 300, VX: -0.1, VY: 0}, 0.1, 0},
		{"past bottom edge", Particle{X: 10, Y: 600, VX: 0, VY: 0.1}, 0, -0.1},
		{"past top edge", Particle{X: 10, Y: 0.05, VX: 0, VY: -0.1}, 0, 0.1},
		{"near the edge is inside", Particle{X: 799.5, Y: 300, VX: 0.25, VY: 0}, 0.25, 0},
		{"interior", Particle{X: 400, Y: 300, VX: 0.15, VY: -0.15}, 0.15, -0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.p
			p.Advance(800, 600)
			if p.VX != tt.wantVX || p.VY != tt.wantVY {
				t.Errorf("velocity = (%v, %v), want (%v, %v)", p.VX, p.VY, tt.wantVX, tt.wantVY)
			}
			if p.X != tt.p.X+tt.p.VX || p.Y != tt.p.Y+tt.p.VY {
				t.Errorf("position = (%v, %v), want unclamped advance", p.X, p.Y)
			}
		})
	}
}

func TestStepBouncesAgainstSurfaceWidth(t *testing.T) {
	f := NewFieldFrom([]Particle{{X: 801, Y: 10, VX: 0.2, VY: 0, R: 2.5}}, DefaultConfig().Fill)
	s := &recordingSurface{width: 800, height: 600}

	f.Step(s)

	if got := f.Particles()[0].VX; got != -0.2 {
		t.Fatalf("expected vx=-0.2 after step, got %v", got)
	}
}

func TestStepDrawsBeforeAdvancing(t *testing.T) {
	start := []Particle{
		{X: 10, Y: 20, VX: 0.1, VY: 0.1, R: 2.2},
		{X: 30, Y: 40, VX: -0.1, VY: 0.1, R: 3.0},
	}
	fill := DefaultConfig().Fill
	f := NewFieldFrom(start, fill)
	s := &recordingSurface{width: 100, height: 100}

	f.Step(s)

	if s.clears != 1 {
		t.Fatalf("expected one clear per frame, got %d", s.clears)
	}
	if len(s.circles) != 2 {
		t.Fatalf("expected 2 circles, got %d", len(s.circles))
	}
	for i, c := range s.circles {
		if c.x != start[i].X || c.y != start[i].Y || c.r != start[i].R {
			t.Errorf("circle %d drawn at (%v, %v, r=%v), want pre-advance %+v", i, c.x, c.y, c.r, start[i])
		}
		if c.fill != fill {
			t.Errorf("circle %d fill = %v, want %v", i, c.fill, fill)
		}
	}
}

func TestStepIsDeterministic(t *testing.T) {
	a := NewField(DefaultConfig(), 640, 480, seeded(7))
	b := NewFieldFrom(a.Particles(), a.Fill())

	sa := &recordingSurface{width: 640, height: 480}
	sb := &recordingSurface{width: 640, height: 480}
	for i := 0; i < 500; i++ {
		a.Step(sa)
	}
	for i := 0; i < 500; i++ {
		b.Step(sb)
	}

	if !reflect.DeepEqual(a.Particles(), b.Particles()) {
		t.Fatal("expected identical state after the same number of steps")
	}
}

func TestStepUsesResizedBounds(t *testing.T) {
	// Inside 800x600 but past the right edge of 400x300.
	f := NewFieldFrom([]Particle{{X: 400, Y: 100, VX: 0.1, VY: 0, R: 2.5}}, DefaultConfig().Fill)
	s := &recordingSurface{width: 800, height: 600}

	s.SetSize(400, 300)
	f.Step(s)

	if got := f.Particles()[0].VX; got != -0.1 {
		t.Fatalf("expected bounce against the new width, vx=%v", got)
	}
}

func TestDefaultsFillZeroConfig(t *testing.T) {
	f := NewField(Config{}, 10, 10, seeded(3))
	if f.Len() != 70 {
		t.Fatalf("expected default count 70, got %d", f.Len())
	}
	if f.Fill() != DefaultConfig().Fill {
		t.Fatalf("expected default fill, got %v", f.Fill())
	}
}
