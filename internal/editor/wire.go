package editor

import (
	"context"
	"slices"

	"github.com/vk/gategrid/internal/circuit"
	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/model"
	"github.com/vk/gategrid/internal/portid"
	"github.com/vk/gategrid/internal/scenestore"
)

// anchorState is a wire being laid. path starts at the anchor point and
// holds every waypoint placed so far, in world units.
type anchorState struct {
	point connectionPoint
	path  []geom.Point
}

// accepts reports whether p would terminate the wire: opposite direction
// and a different gate.
func (a *anchorState) accepts(p connectionPoint) bool {
	return p.dir != a.point.dir && p.gate.ID() != a.point.gate.ID()
}

// retarget points the anchor at the same slot of the new graph.
func (a *anchorState) retarget(graph *circuit.Graph) bool {
	n, ok := graph.Gate(a.point.gate.ID())
	if !ok {
		return false
	}
	slots := n.Spec.OutputSlots()
	if a.point.dir == portid.In {
		slots = n.Spec.InputSlots()
	}
	if a.point.slot >= len(slots) {
		return false
	}
	a.point.gate = n
	return true
}

// follow moves the anchor, and the start of the path, to the slot's current
// position after its gate moved.
func (a *anchorState) follow() {
	n := a.point.gate
	if a.point.dir == portid.In {
		a.point.world = n.InputPoint(a.point.slot)
	} else {
		a.point.world = n.OutputPoint(a.point.slot)
	}
	a.path[0] = a.point.world
}

// anchorMoved re-anchors the wire being laid when n is its gate.
func (c *Controller) anchorMoved(n *circuit.GateNode) {
	if c.anchor != nil && c.anchor.point.gate == n {
		c.anchor.follow()
	}
}

func (c *Controller) updateCanCommit() {
	if c.anchor == nil {
		c.canCommit = false
		return
	}
	p, ok := c.connectionAt(c.view.Snap(c.pointer))
	c.canCommit = ok && c.anchor.accepts(p)
}

func (c *Controller) primaryPress(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	world := c.view.Snap(c.pointer)
	hit, onPoint := c.connectionAt(world)

	if c.anchor == nil {
		if onPoint {
			c.anchor = &anchorState{point: hit, path: []geom.Point{hit.world}}
			logger.Debug("Wire anchored.", "port", hit.address().String())
			c.updateCanCommit()
			return
		}
		c.toggleSourceAt(ctx, c.view.Unproject(c.pointer))
		return
	}

	if onPoint {
		if c.anchor.accepts(hit) {
			c.commitWire(ctx, hit)
		}
		return
	}
	c.anchor.path = append(c.anchor.path, world)
}

// commitWire sends the anchored wire to the store, oriented from output to
// input.
func (c *Controller) commitWire(ctx context.Context, end connectionPoint) {
	start := c.anchor.point
	path := append(slices.Clone(c.anchor.path), end.world)

	source, target := start, end
	if start.dir == portid.In {
		source, target = end, start
		slices.Reverse(path)
	}

	wire := model.Wire{
		SourceGate: source.gate.ID(),
		SourceSlot: source.slot,
		TargetGate: target.gate.ID(),
		TargetSlot: target.slot,
		Path:       path,
		SceneID:    c.sceneID,
	}
	c.anchor = nil
	c.canCommit = false

	ctxlog.FromContext(ctx).Debug("Committing wire.",
		"source", source.address().String(), "target", target.address().String(), "waypoints", len(path))
	c.request(ctx, scenestore.OpCreateWire, func(ctx context.Context) error {
		return c.store.CreateWire(ctx, wire)
	}, c.reload, nil)
}

func (c *Controller) cancelWire(ctx context.Context) {
	if c.anchor == nil {
		return
	}
	ctxlog.FromContext(ctx).Debug("Wire cancelled.", "port", c.anchor.point.address().String())
	c.anchor = nil
	c.canCommit = false
}

func (c *Controller) deleteWireAtPointer(ctx context.Context) {
	w, ok := c.wireAt(c.pointer, c.settings.DeleteTolerance)
	if !ok {
		return
	}
	id := w.ID()
	ctxlog.FromContext(ctx).Debug("Deleting wire.", "wire_id", id)
	c.request(ctx, scenestore.OpDeleteWire, func(ctx context.Context) error {
		return c.store.DeleteWire(ctx, id)
	}, c.reload, nil)
}

// toggleSourceAt flips the held value of the source gate under a world
// position, if any.
func (c *Controller) toggleSourceAt(ctx context.Context, world geom.Point) {
	n, ok := c.gateAt(world)
	if !ok || !n.Spec.Held() {
		return
	}
	c.latches.Toggle(n)
	c.signals = c.evaluator.EvaluateAll(c.graph)
	ctxlog.FromContext(ctx).Debug("Source toggled.", "gate_id", n.ID(), "value", c.signals.Gate(n.ID()))
}
