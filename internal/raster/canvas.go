// Package raster implements editor.Canvas on an in-memory image so frames
// can be written to PNG files.
package raster

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/vk/gategrid/internal/editor"
	"github.com/vk/gategrid/internal/geom"
)

// Canvas draws into a gg.Context.
type Canvas struct {
	dc *gg.Context
}

var _ editor.Canvas = (*Canvas)(nil)

// New creates a canvas of the given size in pixels.
func New(width, height int) *Canvas {
	return &Canvas{dc: gg.NewContext(width, height)}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

// Fill paints the whole canvas.
func (c *Canvas) Fill(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

// Line strokes a straight segment.
func (c *Canvas) Line(a, b geom.Point, width float64, col color.Color) {
	c.dc.SetLineWidth(width)
	c.dc.SetColor(col)
	c.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	c.dc.Stroke()
}

// Polygon fills and strokes a closed outline. Outlines with fewer than
// three points are ignored.
func (c *Canvas) Polygon(pts []geom.Point, fill, stroke color.Color, width float64) {
	if len(pts) < 3 {
		return
	}
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()

	c.dc.SetColor(fill)
	c.dc.FillPreserve()
	c.dc.SetLineWidth(width)
	c.dc.SetColor(stroke)
	c.dc.Stroke()
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the image to path.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// EncodePNG writes the image to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}
