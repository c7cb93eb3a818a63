package editor

import (
	"image/color"
	"math"

	"github.com/vk/gategrid/internal/circuit"
	"github.com/vk/gategrid/internal/gate"
	"github.com/vk/gategrid/internal/geom"
)

// Render draws one frame: background, grid, gates and wires in traversal
// order, connection points, the wire being laid and the cursor. The
// viewport follows the canvas size.
func (c *Controller) Render(canvas Canvas) {
	if w, h := canvas.Size(); w != c.view.Width || h != c.view.Height {
		c.view.Resize(w, h)
		c.viewChanged()
	}
	f := c.frame()

	canvas.Fill(BackgroundColor)
	if c.view.ShowGrid() {
		c.drawGrid(canvas)
	}

	for _, e := range f.elements {
		switch v := e.(type) {
		case *circuit.GateNode:
			c.drawGate(canvas, v)
		case *circuit.WireEdge:
			c.drawWire(canvas, v)
		}
	}
	for _, p := range f.points {
		if c.gateVisible(p.gate) {
			c.drawConnection(canvas, p.world)
		}
	}

	if c.anchor != nil {
		c.drawPreview(canvas)
	}
	if c.pointerPresent {
		c.drawCursor(canvas)
	}
}

func (c *Controller) drawGrid(canvas Canvas) {
	unit := c.view.GridUnit()
	width, height := float64(c.view.Width), float64(c.view.Height)
	if unit <= 0 || height <= 0 {
		return
	}
	rows := c.settings.Subdivisions / c.view.Scale
	cols := rows * width / height

	xOff := math.Mod(c.view.Offset.X, unit)
	yOff := math.Mod(c.view.Offset.Y, unit)

	for n := 0.0; n < cols+2; n++ {
		x := xOff + n*unit
		canvas.Line(geom.Pt(x, yOff-unit), geom.Pt(x, height), gridWidth, GridColor)
	}
	for n := 0.0; n < rows+1; n++ {
		y := yOff + n*unit
		canvas.Line(geom.Pt(xOff-unit, y), geom.Pt(xOff+width+unit, y), gridWidth, GridColor)
	}
}

// gateVisible reports whether any outline point of the gate is on screen.
func (c *Controller) gateVisible(n *circuit.GateNode) bool {
	for _, p := range n.Outline() {
		if c.view.Visible(c.view.Project(p)) {
			return true
		}
	}
	return false
}

func signalColor(high bool) color.Color {
	if high {
		return HighColor
	}
	return LowColor
}

func (c *Controller) drawGate(canvas Canvas, n *circuit.GateNode) {
	outline := n.Outline()
	if len(outline) < 3 || !c.gateVisible(n) {
		return
	}

	var fill, stroke color.Color = GateFillColor, GateStrokeColor
	if n.Kind == gate.Source || n.Kind == gate.Sink {
		fill, stroke = signalColor(c.signals.Gate(n.ID())), IOStrokeColor
	}

	pts := make([]geom.Point, len(outline))
	for i, p := range outline {
		pts[i] = c.view.Project(p)
	}
	canvas.Polygon(pts, fill, stroke, gateStrokeWidth)
}

func (c *Controller) drawWire(canvas Canvas, w *circuit.WireEdge) {
	col := signalColor(c.signals.Wire(w))
	line := w.Polyline()
	for i := 1; i < len(line); i++ {
		canvas.Line(c.view.Project(line[i-1]), c.view.Project(line[i]), wireWidth, col)
	}
}

func (c *Controller) drawConnection(canvas Canvas, p geom.Point) {
	canvas.Line(
		c.view.Project(geom.Pt(p.X-connectionSize, p.Y)),
		c.view.Project(geom.Pt(p.X+connectionSize, p.Y)),
		connectionStrokeWidth, ConnectionColor)
	canvas.Line(
		c.view.Project(geom.Pt(p.X, p.Y-connectionSize)),
		c.view.Project(geom.Pt(p.X, p.Y+connectionSize)),
		connectionStrokeWidth, ConnectionColor)
}

// drawPreview draws the wire being laid up to the snapped cursor, green
// when it can be committed there and red otherwise.
func (c *Controller) drawPreview(canvas Canvas) {
	line := append(append([]geom.Point(nil), c.anchor.path...), c.view.Snap(c.pointer))
	col := signalColor(c.canCommit)
	for i := 1; i < len(line); i++ {
		canvas.Line(c.view.Project(line[i-1]), c.view.Project(line[i]), wireWidth, col)
	}
}

func (c *Controller) drawCursor(canvas Canvas) {
	p := c.view.Project(c.view.Snap(c.pointer))
	unit := c.view.GridUnit()
	canvas.Line(geom.Pt(p.X, p.Y-unit), geom.Pt(p.X, p.Y+unit), gridWidth, CursorColor)
	canvas.Line(geom.Pt(p.X-unit, p.Y), geom.Pt(p.X+unit, p.Y), gridWidth, CursorColor)
}
