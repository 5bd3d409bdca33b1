package render

import (
	"image"
	"image/color"
	"math"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
)

// CanvasSurface is a dots.Surface backed by an in-memory 2D canvas. Drawing
// goes through the HTML5-style canvas API of the software backend.
type CanvasSurface struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
}

func NewCanvasSurface(width, height int) *CanvasSurface {
	width, height = atLeastOne(width), atLeastOne(height)
	backend := softwarebackend.New(width, height)
	return &CanvasSurface{backend: backend, cv: canvas.New(backend)}
}

func (s *CanvasSurface) Size() (int, int) { return s.cv.Width(), s.cv.Height() }

// SetSize resizes the backing bitmap. Like a canvas element, resizing
// discards the current contents.
func (s *CanvasSurface) SetSize(width, height int) {
	width, height = atLeastOne(width), atLeastOne(height)
	if w, h := s.Size(); w == width && h == height {
		return
	}
	s.backend.SetSize(width, height)
}

func (s *CanvasSurface) Clear() {
	w, h := s.Size()
	s.cv.ClearRect(0, 0, float64(w), float64(h))
}

func (s *CanvasSurface) FillCircle(x, y, r float64, fill color.NRGBA) {
	// Numeric components; the canvas only parses integer alpha in rgba() strings.
	s.cv.SetFillStyle(fill.R, fill.G, fill.B, fill.A)
	s.cv.BeginPath()
	s.cv.Arc(x, y, r, 0, math.Pi*2, false)
	s.cv.Fill()
}

// Image returns the backing bitmap. It is reallocated by SetSize.
func (s *CanvasSurface) Image() *image.RGBA { return s.backend.Image }

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
