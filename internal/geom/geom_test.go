package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInPolygon(t *testing.T) {
	triangle := []Point{Pt(0, 2), Pt(3, 0), Pt(0, -2)}

	testCases := []struct {
		name   string
		point  Point
		poly   []Point
		inside bool
	}{
		{name: "centre of triangle", point: Pt(1, 0), poly: triangle, inside: true},
		{name: "right of the tip", point: Pt(3.5, 0), poly: triangle, inside: false},
		{name: "above the triangle", point: Pt(1, 2), poly: triangle, inside: false},
		{name: "left of the base", point: Pt(-0.5, 0), poly: triangle, inside: false},
		{name: "degenerate polygon", point: Pt(0, 0), poly: []Point{Pt(-1, 0), Pt(1, 0)}, inside: false},
		{name: "offset polygon", point: Pt(11, 5), poly: Offset(triangle, Pt(10, 5)), inside: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.inside, InPolygon(tc.point, tc.poly))
		})
	}
}

func TestSegmentDistance(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)

	assert.InDelta(t, 5.0, SegmentDistance(Pt(5, 5), a, b), 1e-9)
	assert.InDelta(t, 0.0, SegmentDistance(Pt(7, 0), a, b), 1e-9)
	assert.InDelta(t, 5.0, SegmentDistance(Pt(13, 4), a, b), 1e-9, "beyond the end clamps to b")
	assert.InDelta(t, 5.0, SegmentDistance(Pt(3, 4), a, a), 1e-9, "degenerate segment is a point")
}

func TestPointHelpers(t *testing.T) {
	assert.True(t, Pt(1.4, -2.6).Round().Eq(Pt(1, -3)))
	assert.True(t, Pt(1, 2).Add(Pt(3, 4)).Eq(Pt(4, 6)))
	assert.True(t, Pt(1, 2).Sub(Pt(3, 4)).Eq(Pt(-2, -2)))
	assert.True(t, Pt(1, 2).Scale(2).Eq(Pt(2, 4)))
	assert.False(t, Pt(0, 0).Eq(Pt(0, 0.001)))
}
