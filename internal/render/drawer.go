package render

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

const defaultTextSize = 48

// CanvasDrawer implements Drawer on an offscreen RGBA canvas.
type CanvasDrawer struct {
	canvas *image.RGBA

	fontOnce sync.Once
	ttFont   *truetype.Font
	faces    map[int]font.Face
	fontErr  error
}

func NewCanvasDrawer(width, height int) *CanvasDrawer {
	return &CanvasDrawer{canvas: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Canvas returns the composed frame.
func (d *CanvasDrawer) Canvas() *image.RGBA { return d.canvas }

func (d *CanvasDrawer) Size() (int, int) {
	b := d.canvas.Bounds()
	return b.Dx(), b.Dy()
}

func (d *CanvasDrawer) FillBackground() {
	draw.Draw(d.canvas, d.canvas.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)
}

func (d *CanvasDrawer) DrawLayer(img image.Image) {
	if img == nil {
		return
	}
	if img.Bounds().Size() == d.canvas.Bounds().Size() {
		draw.Draw(d.canvas, d.canvas.Bounds(), img, img.Bounds().Min, draw.Over)
		return
	}
	xdraw.ApproxBiLinear.Scale(d.canvas, d.canvas.Bounds(), img, img.Bounds(), xdraw.Over, nil)
}

func (d *CanvasDrawer) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil || rect.Empty() {
		return
	}
	dst := rect
	if mode == ScaleModeFit {
		dst = fitRect(img.Bounds(), rect)
	}
	xdraw.NearestNeighbor.Scale(d.canvas, dst, img, img.Bounds(), xdraw.Over, nil)
}

func (d *CanvasDrawer) DrawTextCentered(text string, y int, style TextStyle) {
	if text == "" {
		return
	}
	c := style.Color
	if c == nil {
		c = color.RGBA{R: Foreground.R, G: Foreground.G, B: Foreground.B, A: 255}
	}
	w, _ := d.Size()

	dc := gg.NewContextForRGBA(d.canvas)
	dc.SetFontFace(d.face(style.Size))
	dc.SetColor(c)
	dc.DrawStringAnchored(text, float64(w)/2, float64(y), 0.5, 0)
}

// FontError reports why the caption font fell back to basicfont, if it did.
func (d *CanvasDrawer) FontError() error {
	d.loadFont()
	return d.fontErr
}

func (d *CanvasDrawer) loadFont() {
	d.fontOnce.Do(func() {
		d.faces = map[int]font.Face{}
		d.ttFont, d.fontErr = truetype.Parse(goregular.TTF)
	})
}

func (d *CanvasDrawer) face(size int) font.Face {
	d.loadFont()
	if d.ttFont == nil {
		return basicfont.Face7x13
	}
	if size <= 0 {
		size = defaultTextSize
	}
	if f, ok := d.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(d.ttFont, &truetype.Options{Size: float64(size), DPI: 96, Hinting: font.HintingFull})
	d.faces[size] = f
	return f
}

// fitRect returns the largest rectangle with src's aspect ratio centred in dst.
func fitRect(src, dst image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 {
		return image.Rectangle{}
	}
	dw, dh := dst.Dx(), dst.Dy()
	w, h := dw, sh*dw/sw
	if h > dh {
		w, h = sw*dh/sh, dh
	}
	x := dst.Min.X + (dw-w)/2
	y := dst.Min.Y + (dh-h)/2
	return image.Rect(x, y, x+w, y+h)
}
