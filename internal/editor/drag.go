package editor

import (
	"context"

	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/vk/gategrid/internal/scenestore"
)

func (c *Controller) startDrag(ctx context.Context) {
	n, ok := c.gateAt(c.view.Unproject(c.pointer))
	if !ok {
		return
	}
	c.drag = &dragState{node: n, origin: n.Record.Position}
	ctxlog.FromContext(ctx).Debug("Drag started.", "gate_id", n.ID())
}

// endDrag commits the dragged gate's position. On failure the gate is
// moved back to where the drag started, unless it has moved since.
func (c *Controller) endDrag(ctx context.Context) {
	d := c.drag
	c.drag = nil

	id, origin, pos := d.node.ID(), d.origin, d.node.Record.Position
	ctxlog.FromContext(ctx).Debug("Drag ended.", "gate_id", id, "x", pos.X, "y", pos.Y)

	c.request(ctx, scenestore.OpUpdateGatePosition, func(ctx context.Context) error {
		return c.store.UpdateGatePosition(ctx, id, pos)
	}, nil, func(ctx context.Context) {
		n, ok := c.graph.Gate(id)
		if !ok || !n.Record.Position.Eq(pos) {
			return
		}
		n.Record.Position = origin
		c.anchorMoved(n)
		c.cache.invalidate()
		c.updateCanCommit()
	})
}
