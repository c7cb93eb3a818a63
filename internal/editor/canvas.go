package editor

import (
	"image/color"

	"github.com/vk/gategrid/internal/geom"
)

// Canvas is the drawing target of Render. Coordinates are screen pixels.
type Canvas interface {
	Size() (width, height int)
	Fill(c color.Color)
	Line(a, b geom.Point, width float64, c color.Color)
	// Polygon fills the closed outline pts and strokes its contour.
	Polygon(pts []geom.Point, fill, stroke color.Color, width float64)
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

// Palette.
var (
	BackgroundColor = rgb(0x0a0a0a)
	GridColor       = rgb(0x1a1a1a)
	CursorColor     = rgb(0xecf0f1)
	GateFillColor   = rgb(0x37cdbe)
	GateStrokeColor = rgb(0x27a89b)
	IOStrokeColor   = rgb(0x636e72)
	HighColor       = rgb(0x27ae60)
	LowColor        = rgb(0xe74c3c)
	ConnectionColor = rgb(0xecf0f1)
)

// Stroke widths in pixels, and the connection cross half-size in world
// units.
const (
	gateStrokeWidth       = 7
	wireWidth             = 5
	connectionStrokeWidth = 5
	gridWidth             = 1
	connectionSize        = 0.15
)
