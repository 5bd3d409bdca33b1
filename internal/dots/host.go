package dots

import "image/color"

// Surface is a bitmap the field is painted onto. Its pixel size tracks the
// viewport.
type Surface interface {
	Size() (width int, height int)
	SetSize(width, height int)
	Clear()
	FillCircle(x, y, r float64, fill color.NRGBA)
}

// Container is a mounting element that drawing surfaces can be attached to.
type Container interface {
	AppendSurface() Surface
}

// Detacher is implemented by containers that can drop a surface they handed
// out. Animation.Stop uses it when available.
type Detacher interface {
	RemoveSurface(s Surface)
}

// Host is the environment an animation runs in: it provides the mount point,
// the viewport and the display-refresh scheduler.
//
// Frame and resize callbacks are expected to be invoked from a single
// goroutine, one at a time.
type Host interface {
	// Container returns the element with the given id, or nil when the page
	// has none.
	Container(id string) Container

	ViewportSize() (width int, height int)

	// OnResize registers fn to run after every viewport size change. The
	// returned function unregisters it.
	OnResize(fn func()) (remove func())

	// RequestFrame schedules fn to run once, on the next display refresh.
	RequestFrame(fn func())
}

// Logger matches the component logger used across the app.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}
