package editor

import (
	"github.com/vk/gategrid/internal/circuit"
	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/portid"
)

// connectionPoint is one input or output slot of a gate, in world space.
type connectionPoint struct {
	gate  *circuit.GateNode
	slot  int
	dir   portid.Direction
	world geom.Point
}

func (p connectionPoint) address() portid.Address {
	return portid.New(p.gate.ID(), p.dir, p.slot)
}

// wireSegment is one straight piece of a drawn wire, in screen space.
type wireSegment struct {
	wire *circuit.WireEdge
	a, b geom.Point
}

// frameCache holds what one frame draws: the traversal order with each
// element once, every connection point and every wire segment. It is
// rebuilt lazily after the graph, the viewport or a gate position changes.
type frameCache struct {
	valid    bool
	elements []circuit.Element
	gates    []*circuit.GateNode
	points   []connectionPoint
	segments []wireSegment
}

func (f *frameCache) invalidate() { f.valid = false }

func (c *Controller) frame() *frameCache {
	f := &c.cache
	if f.valid {
		return f
	}

	f.elements, f.gates, f.points, f.segments = nil, nil, nil, nil

	circuit.TraverseOnce(c.graph.Sinks(), func(e circuit.Element) {
		f.elements = append(f.elements, e)

		switch v := e.(type) {
		case *circuit.GateNode:
			f.gates = append(f.gates, v)
			for i := range v.Spec.InputSlots() {
				f.points = append(f.points, connectionPoint{gate: v, slot: i, dir: portid.In, world: v.InputPoint(i)})
			}
			for i := range v.Spec.OutputSlots() {
				f.points = append(f.points, connectionPoint{gate: v, slot: i, dir: portid.Out, world: v.OutputPoint(i)})
			}
		case *circuit.WireEdge:
			line := v.Polyline()
			for i := 1; i < len(line); i++ {
				f.segments = append(f.segments, wireSegment{
					wire: v,
					a:    c.view.Project(line[i-1]),
					b:    c.view.Project(line[i]),
				})
			}
		}
	})

	f.valid = true
	return f
}

// connectionAt returns the first connection point at a world position.
func (c *Controller) connectionAt(world geom.Point) (connectionPoint, bool) {
	for _, p := range c.frame().points {
		if p.world.Eq(world) {
			return p, true
		}
	}
	return connectionPoint{}, false
}

// gateAt returns the first visible gate, in traversal order, whose outline
// contains a world position.
func (c *Controller) gateAt(world geom.Point) (*circuit.GateNode, bool) {
	for _, n := range c.frame().gates {
		if c.gateVisible(n) && geom.InPolygon(world, n.Outline()) {
			return n, true
		}
	}
	return nil, false
}

// wireAt returns the first wire with a segment within tolerance pixels of
// a screen position.
func (c *Controller) wireAt(screen geom.Point, tolerance float64) (*circuit.WireEdge, bool) {
	for _, s := range c.frame().segments {
		if geom.SegmentDistance(screen, s.a, s.b) <= tolerance {
			return s.wire, true
		}
	}
	return nil, false
}
