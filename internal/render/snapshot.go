package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/splashpage/splash/internal/dots"
)

var errEmptySnapshot = errors.New("snapshot has no drawing surface")

// WriteSVG writes one frame of the dot field as an SVG document. Coordinates
// are rounded to whole pixels.
func WriteSVG(w io.Writer, snap dots.Snapshot) error {
	if snap.Width <= 0 || snap.Height <= 0 {
		return errEmptySnapshot
	}
	canvas := svg.New(w)
	canvas.Start(snap.Width, snap.Height)
	canvas.Rect(0, 0, snap.Width, snap.Height, "fill:"+cssHex(Background))
	style := fmt.Sprintf("fill:rgb(%d,%d,%d);fill-opacity:%.2f", snap.Fill.R, snap.Fill.G, snap.Fill.B, float64(snap.Fill.A)/255)
	canvas.Gstyle(style)
	for _, p := range snap.Particles {
		canvas.Circle(round(p.X), round(p.Y), round(p.R))
	}
	canvas.Gend()
	canvas.End()
	return nil
}

// RenderSnapshot rasterises a frame over the background colour.
func RenderSnapshot(snap dots.Snapshot) (*image.RGBA, error) {
	if snap.Width <= 0 || snap.Height <= 0 {
		return nil, errEmptySnapshot
	}
	surface := NewCanvasSurface(snap.Width, snap.Height)
	dots.NewFieldFrom(snap.Particles, snap.Fill).Draw(surface)

	out := image.NewRGBA(image.Rect(0, 0, snap.Width, snap.Height))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), surface.Image(), image.Point{}, draw.Over)
	return out, nil
}

// WritePNG encodes a rasterised frame as PNG.
func WritePNG(w io.Writer, snap dots.Snapshot) error {
	img, err := RenderSnapshot(snap)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func cssHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func round(v float64) int { return int(math.Round(v)) }
