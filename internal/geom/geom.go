// Package geom holds the 2D primitives shared by the gate catalog, the graph
// and the editor: world/screen points, polygon containment and segment
// distance.
package geom

import "math"

// epsilon is the tolerance used when comparing coordinates.
const epsilon = 1e-9

// Point is a 2D coordinate. Depending on context it is either in world space
// (grid units) or in screen space (pixels).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p multiplied by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Round snaps p to the nearest integer grid intersection.
func (p Point) Round() Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}

// Eq reports whether p and q are the same point within epsilon.
func (p Point) Eq(q Point) bool {
	return math.Abs(p.X-q.X) < epsilon && math.Abs(p.Y-q.Y) < epsilon
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Offset translates every point of poly by origin.
func Offset(poly []Point, origin Point) []Point {
	out := make([]Point, len(poly))
	for i, p := range poly {
		out[i] = p.Add(origin)
	}
	return out
}

// InPolygon reports whether p lies inside the closed polygon poly using the
// even-odd rule. Polygons with fewer than three points contain nothing.
func InPolygon(p Point, poly []Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			crossX := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// SegmentDistance returns the shortest distance from p to the segment a-b.
func SegmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq < epsilon {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Scale(t)))
}
