package render

import (
	"fmt"
	"image"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// GenerateQRCodeImage returns a QR code for payload in the splash palette:
// background-coloured modules on a foreground-coloured quiet zone.
// If payload is empty, it returns (nil, nil).
func GenerateQRCodeImage(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr %q: %w", payload, err)
	}
	qrCode.ForegroundColor = Background
	qrCode.BackgroundColor = Foreground

	return qrCode.Image(sizePx), nil
}
