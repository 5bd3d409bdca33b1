package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/splashpage/splash/internal/dots"
)

func TestCanvasSurfaceResize(t *testing.T) {
	s := NewCanvasSurface(800, 600)
	if w, h := s.Size(); w != 800 || h != 600 {
		t.Fatalf("Size() = %dx%d, want 800x600", w, h)
	}

	s.SetSize(400, 300)
	if w, h := s.Size(); w != 400 || h != 300 {
		t.Fatalf("Size() after resize = %dx%d, want 400x300", w, h)
	}
	if b := s.Image().Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("image bounds = %v, want 400x300", b)
	}
}

func TestCanvasSurfaceFillCircle(t *testing.T) {
	s := NewCanvasSurface(40, 40)
	s.FillCircle(20, 20, 6, dots.DefaultConfig().Fill)

	centre := s.Image().RGBAAt(20, 20)
	if centre.A < 120 || centre.A > 180 {
		t.Fatalf("expected partial alpha near 0.58 at the centre, got %v", centre)
	}
	if a := int(centre.A) - 3; int(centre.R) < a || int(centre.G) < a || int(centre.B) < a {
		t.Fatalf("expected a white dot, got %v", centre)
	}
	if a := s.Image().RGBAAt(2, 2).A; a != 0 {
		t.Fatalf("expected transparent corner, alpha=%d", a)
	}

	s.Clear()
	if a := s.Image().RGBAAt(20, 20).A; a != 0 {
		t.Fatalf("expected cleared surface, alpha=%d", a)
	}
}

func TestCanvasSurfaceChangesFill(t *testing.T) {
	s := NewCanvasSurface(40, 40)
	s.FillCircle(10, 10, 4, dots.DefaultConfig().Fill)
	s.FillCircle(30, 30, 4, color.NRGBA{R: 255, A: 255})
	s.FillCircle(10, 30, 4, color.NRGBA{B: 255, A: 128})

	red := s.Image().RGBAAt(30, 30)
	if red.R < 200 || red.G > 40 || red.B > 40 {
		t.Fatalf("expected opaque red, got %v", red)
	}
	blue := s.Image().RGBAAt(10, 30)
	if blue.B < 60 || blue.R > 40 || blue.A > 200 {
		t.Fatalf("expected translucent blue, got %v", blue)
	}
}

func testSnapshot() dots.Snapshot {
	return dots.Snapshot{
		Width:  64,
		Height: 48,
		Particles: []dots.Particle{
			{X: 16, Y: 16, R: 3},
			{X: 40, Y: 30, R: 2.5},
		},
		Fill: dots.DefaultConfig().Fill,
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, testSnapshot()); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	if n := strings.Count(out, "<circle"); n != 2 {
		t.Fatalf("expected 2 circles, got %d\n%s", n, out)
	}
	if !strings.Contains(out, "fill-opacity:0.58") {
		t.Fatalf("expected translucent fill in\n%s", out)
	}
}

func TestWriteSVGEmpty(t *testing.T) {
	if err := WriteSVG(&bytes.Buffer{}, dots.Snapshot{}); err == nil {
		t.Fatal("expected error for empty snapshot")
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, testSnapshot()); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("bounds = %v, want 64x48", b)
	}

	bg := color.RGBAModel.Convert(img.At(60, 4)).(color.RGBA)
	if bg != Background {
		t.Fatalf("corner = %v, want background %v", bg, Background)
	}
	dot := color.RGBAModel.Convert(img.At(16, 16)).(color.RGBA)
	// White at alpha 148 over #1b263b.
	if dot.R < 140 || dot.G < 140 || dot.B < 150 || dot.R > 235 {
		t.Fatalf("expected a translucent white dot over the background, got %v", dot)
	}
}

func TestCanvasDrawerComposes(t *testing.T) {
	d := NewCanvasDrawer(100, 100)
	d.FillBackground()
	if got := d.Canvas().RGBAAt(50, 50); got != Background {
		t.Fatalf("background = %v, want %v", got, Background)
	}

	layer := image.NewRGBA(image.Rect(0, 0, 100, 100))
	layer.SetRGBA(10, 10, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	d.DrawLayer(layer)
	if got := d.Canvas().RGBAAt(10, 10); got.R != 255 {
		t.Fatalf("expected layer pixel composited, got %v", got)
	}
	if got := d.Canvas().RGBAAt(50, 50); got != Background {
		t.Fatalf("transparent layer pixel changed canvas: %v", got)
	}
}

func TestFitRect(t *testing.T) {
	got := fitRect(image.Rect(0, 0, 10, 5), image.Rect(0, 0, 100, 100))
	if want := image.Rect(0, 25, 100, 75); got != want {
		t.Fatalf("fitRect() = %v, want %v", got, want)
	}
}

func TestGenerateQRCodeImage(t *testing.T) {
	img, err := GenerateQRCodeImage("", 0)
	if img != nil || err != nil {
		t.Fatalf("expected (nil, nil) for empty payload, got (%v, %v)", img, err)
	}

	img, err = GenerateQRCodeImage("https://example.com", 128)
	if err != nil {
		t.Fatalf("GenerateQRCodeImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 {
		t.Fatalf("expected 128px code, got %v", b)
	}
}
