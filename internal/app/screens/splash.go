package screens

import (
	"context"
	"image"
	"sync"

	"github.com/splashpage/splash/internal/render"
	"github.com/splashpage/splash/internal/render/layout"
	"github.com/splashpage/splash/internal/state"
)

const (
	footerHeightPx = 300
	footerInsetPx  = 40
	titleSizePt    = 48
	urlSizePt      = 20
)

// SplashScreen draws the animated dot field behind a caption and a QR code
// pointing at the site.
type SplashScreen struct {
	Title string
	// URL is encoded as a QR code in the bottom-right corner. When empty the
	// network URL from state is used instead.
	URL string
	// Layer returns the current dot field frame, or nil when there is none.
	Layer  func() image.Image
	Logger Logger

	mu     sync.Mutex
	qr     image.Image
	qrText string
}

func NewSplashScreen(title, url string, layer func() image.Image, logger Logger) *SplashScreen {
	return &SplashScreen{Title: title, URL: url, Layer: layer, Logger: logger}
}

func (s *SplashScreen) Start(ctx context.Context) error { return nil }
func (s *SplashScreen) Stop() error                     { return nil }

func (s *SplashScreen) Draw(drawer render.Drawer, st state.State) {
	drawer.FillBackground()
	if s.Layer != nil {
		if img := s.Layer(); img != nil {
			drawer.DrawLayer(img)
		}
	}

	width, height := drawer.Size()
	canvas := image.Rect(0, 0, width, height)
	_, footer := layout.SplitHorizontal(canvas, height-footerHeightPx)

	url := s.URL
	if url == "" {
		url = st.Network.URL
	}
	if qr := s.qrFor(url); qr != nil {
		box := layout.FitSquare(layout.Inset(footer, footerInsetPx))
		box = layout.AnchorBottomRight(layout.Inset(footer, footerInsetPx), box.Dx(), box.Dy())
		drawer.DrawImageInRect(qr, box, render.ScaleModeFit)
	}

	if s.Title != "" {
		drawer.DrawTextCentered(s.Title, height/2, render.TextStyle{Color: render.Foreground, Size: titleSizePt})
	}
	if url != "" {
		drawer.DrawTextCentered(url, height/2+titleSizePt*2, render.TextStyle{Color: render.Foreground, Size: urlSizePt})
	}
	if st.Phase == state.ERROR && st.Err != "" {
		drawer.DrawTextCentered(st.Err, footer.Min.Y, render.TextStyle{Color: render.Foreground, Size: urlSizePt})
	}
}

// qrFor caches the QR image for the last URL seen.
func (s *SplashScreen) qrFor(url string) image.Image {
	if url == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.qr != nil && s.qrText == url {
		return s.qr
	}
	img, err := render.GenerateQRCodeImage(url, 0)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Errorf("screen", "qr code: %v", err)
		}
		return nil
	}
	s.qr, s.qrText = img, url
	return img
}
