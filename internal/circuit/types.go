package circuit

import (
	"github.com/vk/gategrid/internal/gate"
	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/model"
)

// Element is either a *GateNode or a *WireEdge. It is what Traverse hands to
// its visitor.
type Element interface {
	element()
}

// GateNode is a gate record linked into the graph.
type GateNode struct {
	// Record is the gate as stored by the backend. The editor mutates
	// Record.Position while dragging.
	Record model.Gate
	Spec   *gate.Spec
	Kind   gate.Kind

	// Inputs and Outputs are keyed exactly 0..n-1 where n is the slot count
	// of the gate type. A nil value marks an unconnected slot.
	Inputs  map[int]*WireEdge
	Outputs map[int]*WireEdge
}

func (*GateNode) element() {}

// ID returns the gate record id.
func (n *GateNode) ID() string { return n.Record.ID }

// Position returns the gate origin in world units.
func (n *GateNode) Position() geom.Point { return n.Record.Position }

// Outline returns the gate geometry translated to its position.
func (n *GateNode) Outline() []geom.Point {
	return geom.Offset(n.Spec.Geometry(), n.Record.Position)
}

// InputPoint returns the world position of input slot i.
func (n *GateNode) InputPoint(i int) geom.Point {
	return n.Record.Position.Add(n.Spec.InputSlots()[i])
}

// OutputPoint returns the world position of output slot i.
func (n *GateNode) OutputPoint(i int) geom.Point {
	return n.Record.Position.Add(n.Spec.OutputSlots()[i])
}

// Endpoint is one end of a wire.
type Endpoint struct {
	Slot int
	Gate *GateNode
}

// WireEdge is a wire record linked into the graph.
type WireEdge struct {
	Record model.Wire
	Source Endpoint
	Target Endpoint
	// Path holds the intermediate waypoints, in world units.
	Path []geom.Point
}

func (*WireEdge) element() {}

// ID returns the wire record id.
func (w *WireEdge) ID() string { return w.Record.ID }

// Polyline returns the full drawn route of the wire: the source output
// point, the stored path, then the target input point. Stored paths that
// already include the endpoints are not duplicated.
func (w *WireEdge) Polyline() []geom.Point {
	start := w.Source.Gate.OutputPoint(w.Source.Slot)
	end := w.Target.Gate.InputPoint(w.Target.Slot)

	pts := make([]geom.Point, 0, len(w.Path)+2)
	pts = append(pts, start)
	for _, p := range w.Path {
		if !p.Eq(pts[len(pts)-1]) {
			pts = append(pts, p)
		}
	}
	if !end.Eq(pts[len(pts)-1]) {
		pts = append(pts, end)
	}
	return pts
}

// Graph is the linked, validated form of one scene.
type Graph struct {
	gates []*GateNode
	byID  map[string]*GateNode
	wires []*WireEdge
	sinks []*GateNode
}

// Empty returns a graph with no gates.
func Empty() *Graph {
	return &Graph{byID: make(map[string]*GateNode)}
}

// Gates returns every gate in record order.
func (g *Graph) Gates() []*GateNode { return g.gates }

// Wires returns every wire in record order.
func (g *Graph) Wires() []*WireEdge { return g.wires }

// Sinks returns the traversal roots in record order.
func (g *Graph) Sinks() []*GateNode { return g.sinks }

// Gate looks up a gate by id.
func (g *Graph) Gate(id string) (*GateNode, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// IsEmpty reports whether the graph holds no gates.
func (g *Graph) IsEmpty() bool { return len(g.gates) == 0 }
