package dots

import (
	"image/color"
	"math/rand/v2"
	"sync"
	"sync/atomic"
)

// MountID is the id of the page element the background attaches to.
const MountID = "splash-background"

// Animator creates dot field animations on a Host.
type Animator struct {
	Config  Config
	MountID string

	// Rand seeds particle placement. Nil means a fresh random source.
	Rand   *rand.Rand
	Logger Logger
}

func NewAnimator() *Animator {
	return &Animator{Config: DefaultConfig(), MountID: MountID, Logger: noopLogger{}}
}

// Animation is a running dot field. It is the only handle to the frame loop;
// Stop ends it.
type Animation struct {
	host   Host
	logger Logger

	mu        sync.Mutex
	container Container
	surface   Surface
	field   *Field
	frames  uint64

	stopped  atomic.Bool
	unresize func()
	stopOnce sync.Once
}

// Snapshot is a point-in-time copy of an animation, safe to use from any
// goroutine.
type Snapshot struct {
	Width     int
	Height    int
	Frames    uint64
	Particles []Particle
	Fill      color.NRGBA
}

// Start mounts a drawing surface in the host's background container, seeds
// the particles and schedules the first frame.
//
// When the container is missing nothing is drawn and the returned animation
// is already stopped; this is not an error.
func (a *Animator) Start(host Host) *Animation {
	logger := a.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	anim := &Animation{host: host, logger: logger}

	id := a.MountID
	if id == "" {
		id = MountID
	}
	container := host.Container(id)
	if container == nil {
		logger.Infof("dots", "mount %q not found, background disabled", id)
		anim.stopped.Store(true)
		return anim
	}

	anim.container = container
	anim.surface = container.AppendSurface()
	anim.resize()
	anim.unresize = host.OnResize(anim.resize)

	width, height := anim.surface.Size()
	cfg := a.Config.withDefaults()
	anim.field = NewField(cfg, width, height, a.Rand)
	logger.Infof("dots", "seeded %d dots on %dx%d", anim.field.Len(), width, height)

	host.RequestFrame(anim.frame)
	return anim
}

func (anim *Animation) resize() {
	width, height := anim.host.ViewportSize()
	anim.mu.Lock()
	anim.surface.SetSize(width, height)
	anim.mu.Unlock()
}

func (anim *Animation) frame() {
	if anim.stopped.Load() {
		return
	}
	anim.mu.Lock()
	anim.field.Step(anim.surface)
	anim.frames++
	anim.mu.Unlock()

	if anim.stopped.Load() {
		return
	}
	anim.host.RequestFrame(anim.frame)
}

// Stop ends the frame loop and detaches the resize handler. When the
// container supports it the drawing surface is removed as well, so a
// restarted field never stacks a second layer. A frame already queued on the
// host becomes a no-op. Stop is safe to call more than once.
func (anim *Animation) Stop() {
	anim.stopOnce.Do(func() {
		anim.stopped.Store(true)
		if anim.unresize != nil {
			anim.unresize()
		}
		if d, ok := anim.container.(Detacher); ok && anim.surface != nil {
			d.RemoveSurface(anim.surface)
		}
	})
}

func (anim *Animation) Stopped() bool { return anim.stopped.Load() }

// Mounted reports whether a drawing surface was attached.
func (anim *Animation) Mounted() bool { return anim.surface != nil }

// Surface returns the attached drawing surface, or nil when unmounted.
func (anim *Animation) Surface() Surface { return anim.surface }

func (anim *Animation) Frames() uint64 {
	anim.mu.Lock()
	defer anim.mu.Unlock()
	return anim.frames
}

// Snapshot copies the current surface size and particle state. An unmounted
// animation yields a zero snapshot.
func (anim *Animation) Snapshot() Snapshot {
	if anim.surface == nil {
		return Snapshot{}
	}
	anim.mu.Lock()
	defer anim.mu.Unlock()
	width, height := anim.surface.Size()
	return Snapshot{
		Width:     width,
		Height:    height,
		Frames:    anim.frames,
		Particles: anim.field.Particles(),
		Fill:      anim.field.Fill(),
	}
}
