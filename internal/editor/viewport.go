package editor

import (
	"math"

	"github.com/vk/gategrid/internal/config"
	"github.com/vk/gategrid/internal/geom"
)

// Viewport maps world coordinates (grid units) to screen pixels with a
// uniform scale and a translation.
type Viewport struct {
	// Scale is the zoom level; 1.0 shows Subdivisions grid rows.
	Scale float64
	// Offset is the screen position of the world origin.
	Offset geom.Point
	Width  int
	Height int

	settings config.EditorSettings
}

// NewViewport creates a centred viewport of the given size.
func NewViewport(settings config.EditorSettings, width, height int) Viewport {
	v := Viewport{Width: width, Height: height, settings: settings}
	v.Center()
	return v
}

// GridUnit is the size of one world unit in pixels.
func (v *Viewport) GridUnit() float64 {
	return float64(v.Height) / (v.settings.Subdivisions / v.Scale)
}

// Project converts a world point to screen space.
func (v *Viewport) Project(p geom.Point) geom.Point {
	return v.Offset.Add(p.Scale(v.GridUnit()))
}

// Unproject converts a screen point to world space.
func (v *Viewport) Unproject(p geom.Point) geom.Point {
	unit := v.GridUnit()
	if unit == 0 {
		return geom.Point{}
	}
	return p.Sub(v.Offset).Scale(1 / unit)
}

// Snap converts a screen point to the nearest world grid intersection.
func (v *Viewport) Snap(p geom.Point) geom.Point {
	return v.Unproject(p).Round()
}

// Visible reports whether a screen point lies inside the viewport.
func (v *Viewport) Visible(p geom.Point) bool {
	return p.X >= 0 && p.X < float64(v.Width) && p.Y >= 0 && p.Y < float64(v.Height)
}

// Pan moves the world by a screen-space delta.
func (v *Viewport) Pan(delta geom.Point) {
	v.Offset = v.Offset.Add(delta)
}

// Zoom adds delta to the scale, clamped to the configured bounds.
func (v *Viewport) Zoom(delta float64) {
	v.Scale = math.Max(v.settings.MinZoom, math.Min(v.settings.MaxZoom, v.Scale+delta))
}

// Center resets the scale to 1 and puts the world origin in the middle of
// the viewport.
func (v *Viewport) Center() {
	v.Scale = 1
	v.Offset = geom.Pt(float64(v.Width)/2, float64(v.Height)/2)
}

// Resize updates the viewport dimensions. The offset is kept.
func (v *Viewport) Resize(width, height int) {
	v.Width, v.Height = width, height
}

// ShowGrid reports whether grid lines are drawn at the current scale.
func (v *Viewport) ShowGrid() bool {
	return v.Scale > v.settings.GridThreshold
}
