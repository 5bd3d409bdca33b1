package render

import "image/color"

// Global render configuration for colors and logical canvas.
var (
	// Foreground is used for captions; Background sits behind the dot layer.
	Foreground = color.RGBA{R: 0xF4, G: 0xF1, B: 0xEA, A: 0xFF} // #f4f1ea
	Background = color.RGBA{R: 0x1B, G: 0x26, B: 0x3B, A: 0xFF} // #1b263b

	// Logical canvas size; scaled to framebuffer.
	CanvasWidth  = 1920
	CanvasHeight = 1080
)
