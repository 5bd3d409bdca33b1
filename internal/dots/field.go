package dots

import (
	"image/color"
	"math/rand/v2"
)

// Particle is a single moving dot. Velocities are in pixels per frame.
type Particle struct {
	X, Y   float64
	VX, VY float64
	R      float64
}

// Advance moves the particle by one velocity step and reflects each velocity
// component whose coordinate left [0, width] or [0, height]. The position is
// not clamped, so a particle may overshoot by up to one step.
func (p *Particle) Advance(width, height float64) {
	p.X += p.VX
	p.Y += p.VY
	if p.X < 0 || p.X > width {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > height {
		p.VY = -p.VY
	}
}

// Config controls the population and look of a dot field.
type Config struct {
	Count int

	// MaxSpeed bounds each velocity component to [-MaxSpeed, MaxSpeed).
	MaxSpeed float64

	// Radii are drawn from [MinRadius, MinRadius+RadiusSpread).
	MinRadius    float64
	RadiusSpread float64

	Fill color.NRGBA
}

// DefaultConfig returns the stock splash background: 70 translucent white dots.
func DefaultConfig() Config {
	return Config{
		Count:        70,
		MaxSpeed:     0.18,
		MinRadius:    2.1,
		RadiusSpread: 1.2,
		Fill:         color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 148}, // 0.58 alpha
	}
}

func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg.Count <= 0 {
		cfg.Count = def.Count
	}
	if cfg.MaxSpeed <= 0 {
		cfg.MaxSpeed = def.MaxSpeed
	}
	if cfg.MinRadius <= 0 {
		cfg.MinRadius = def.MinRadius
	}
	if cfg.RadiusSpread < 0 {
		cfg.RadiusSpread = def.RadiusSpread
	}
	if cfg.Fill == (color.NRGBA{}) {
		cfg.Fill = def.Fill
	}
	return cfg
}

// Field owns a fixed set of particles. Its cardinality never changes after
// NewField returns.
type Field struct {
	particles []Particle
	fill      color.NRGBA
}

// NewField seeds cfg.Count particles uniformly across a width x height area.
// A nil rng uses a randomly seeded source.
func NewField(cfg Config, width, height int, rng *rand.Rand) *Field {
	cfg = cfg.withDefaults()
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	particles := make([]Particle, cfg.Count)
	for i := range particles {
		particles[i] = Particle{
			X:  rng.Float64() * float64(width),
			Y:  rng.Float64() * float64(height),
			VX: (rng.Float64() - 0.5) * 2 * cfg.MaxSpeed,
			VY: (rng.Float64() - 0.5) * 2 * cfg.MaxSpeed,
			R:  cfg.MinRadius + rng.Float64()*cfg.RadiusSpread,
		}
	}
	return &Field{particles: particles, fill: cfg.Fill}
}

// NewFieldFrom builds a field from explicit particles, mostly for replaying a
// snapshot. The slice is copied.
func NewFieldFrom(particles []Particle, fill color.NRGBA) *Field {
	cp := make([]Particle, len(particles))
	copy(cp, particles)
	return &Field{particles: cp, fill: fill}
}

func (f *Field) Len() int { return len(f.particles) }

// Fill returns the colour dots are painted with.
func (f *Field) Fill() color.NRGBA { return f.fill }

// Particles returns a copy of the particle set in insertion order.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Step renders one frame onto s: the surface is cleared, then every particle
// is drawn at its current position and advanced, bouncing against the
// surface size as it is right now.
func (f *Field) Step(s Surface) {
	s.Clear()
	width, height := s.Size()
	for i := range f.particles {
		p := &f.particles[i]
		s.FillCircle(p.X, p.Y, p.R, f.fill)
		p.Advance(float64(width), float64(height))
	}
}

// Draw paints the particles without advancing them.
func (f *Field) Draw(s Surface) {
	s.Clear()
	for _, p := range f.particles {
		s.FillCircle(p.X, p.Y, p.R, f.fill)
	}
}
