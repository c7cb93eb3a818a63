package editor

import (
	"context"
	"errors"

	"github.com/vk/gategrid/internal/circuit"
	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/vk/gategrid/internal/metrics"
	"github.com/vk/gategrid/internal/model"
	"github.com/vk/gategrid/internal/scenestore"
	"golang.org/x/sync/errgroup"
)

// request runs call on a worker goroutine. Its outcome is queued and
// handled on the UI goroutine: onSuccess on success, otherwise onFailure
// followed by a report.
func (c *Controller) request(ctx context.Context, op string, call func(context.Context) error, onSuccess, onFailure func(context.Context)) {
	c.begin()
	go func() {
		defer c.end()
		err := call(ctx)
		c.enqueue(func(ctx context.Context) {
			logger := ctxlog.FromContext(ctx)
			if err != nil {
				err = scenestore.Wrap(op, err)
				logger.Error("Backend request failed.", "op", op, "error", err)
				if onFailure != nil {
					onFailure(ctx)
				}
				c.reporter.Report(ctx, err)
				return
			}
			logger.Debug("Backend request succeeded.", "op", op)
			if onSuccess != nil {
				onSuccess(ctx)
			}
		})
	}()
}

// reload fetches the scene on a worker goroutine and queues a rebuild.
func (c *Controller) reload(ctx context.Context) {
	c.begin()
	go func() {
		defer c.end()
		gates, wires, err := c.fetch(ctx)
		c.enqueue(func(ctx context.Context) {
			if err != nil {
				c.reporter.Report(ctx, err)
				return
			}
			_ = c.rebuild(ctx, gates, wires)
		})
	}()
}

// fetch lists gates and wires concurrently.
func (c *Controller) fetch(ctx context.Context) ([]model.Gate, []model.Wire, error) {
	var (
		gates []model.Gate
		wires []model.Wire
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		gates, err = c.store.ListGates(gctx, c.sceneID)
		return scenestore.Wrap(scenestore.OpListGates, err)
	})
	g.Go(func() error {
		var err error
		wires, err = c.store.ListWires(gctx, c.sceneID)
		return scenestore.Wrap(scenestore.OpListWires, err)
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return gates, wires, nil
}

func (c *Controller) begin() {
	c.mu.Lock()
	c.inflight++
	c.mu.Unlock()
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if c.inflight > 0 {
		return
	}
	for _, ch := range c.idle {
		close(ch)
	}
	c.idle = nil
}

// whenIdle returns a channel closed once no request is in flight.
func (c *Controller) whenIdle() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan struct{})
	if c.inflight == 0 {
		close(ch)
		return ch
	}
	c.idle = append(c.idle, ch)
	return ch
}

func (c *Controller) enqueue(fn func(context.Context)) {
	c.mu.Lock()
	c.completions = append(c.completions, fn)
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// Drain applies every queued completion and returns how many ran.
func (c *Controller) Drain(ctx context.Context) int {
	c.mu.Lock()
	pending := c.completions
	c.completions = nil
	c.mu.Unlock()

	for _, fn := range pending {
		fn(ctx)
	}
	return len(pending)
}

// Flush waits for every in-flight request, including the reloads they
// trigger, and applies their completions.
func (c *Controller) Flush(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.whenIdle():
		}
		if c.Drain(ctx) == 0 {
			return nil
		}
	}
}

// Run is the UI loop: it handles events and applies completions until ctx
// is done or events is closed, in which case it flushes and returns.
func (c *Controller) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return c.Flush(ctx)
			}
			c.Handle(ctx, ev)
		case <-c.notify:
			c.Drain(ctx)
		}
	}
}

// Load fetches the scene and rebuilds the graph on the calling goroutine.
// Fetch and build errors are reported and returned; on a build error the
// previous graph is kept.
func (c *Controller) Load(ctx context.Context) error {
	gates, wires, err := c.fetch(ctx)
	if err != nil {
		c.reporter.Report(ctx, err)
		return err
	}
	return c.rebuild(ctx, gates, wires)
}

// rebuild replaces the graph. A scene with no gates or no wires yields the
// empty graph without invoking the builder.
func (c *Controller) rebuild(ctx context.Context, gates []model.Gate, wires []model.Wire) error {
	logger := ctxlog.FromContext(ctx)

	if len(gates) == 0 || len(wires) == 0 {
		logger.Debug("Scene is empty, skipping graph build.", "gates", len(gates), "wires", len(wires))
		metrics.GraphBuilds.WithLabelValues(metrics.ResultEmpty).Inc()
		c.install(ctx, circuit.Empty())
		return nil
	}

	graph, err := circuit.Build(ctx, c.catalog, gates, wires)
	if err != nil {
		metrics.GraphBuilds.WithLabelValues(buildResult(err)).Inc()
		logger.Error("Graph build rejected, keeping previous graph.", "error", err)
		c.reporter.Report(ctx, err)
		return err
	}

	metrics.GraphBuilds.WithLabelValues(metrics.ResultSuccess).Inc()
	c.install(ctx, graph)
	return nil
}

func buildResult(err error) string {
	var dangling *circuit.DanglingWireError
	var oor *circuit.OutOfRangeConnectionError
	switch {
	case errors.As(err, &dangling):
		return metrics.ResultDangling
	case errors.As(err, &oor):
		return metrics.ResultRange
	default:
		return metrics.ResultError
	}
}

// install swaps in a new graph, resets source latches, re-evaluates and
// re-targets any in-progress drag or wire to the new nodes.
func (c *Controller) install(ctx context.Context, graph *circuit.Graph) {
	logger := ctxlog.FromContext(ctx)

	c.graph = graph
	c.latches.Reset()
	c.signals = c.evaluator.EvaluateAll(graph)

	feedback := circuit.FeedbackGates(graph)
	metrics.FeedbackGates.Set(float64(len(feedback)))
	if len(feedback) > 0 {
		logger.Warn("Graph contains feedback loops; cyclic inputs read as low.", "gates", feedback)
	}

	if c.drag != nil {
		if n, ok := graph.Gate(c.drag.node.ID()); ok {
			n.Record.Position = c.drag.node.Record.Position
			c.drag.node = n
		} else {
			c.drag = nil
		}
	}
	if c.anchor != nil && !c.anchor.retarget(graph) {
		logger.Debug("Anchor gate disappeared, cancelling wire.")
		c.anchor = nil
	}

	c.cache.invalidate()
	c.updateCanCommit()
	logger.Debug("Graph installed.", "gates", len(graph.Gates()), "wires", len(graph.Wires()), "sinks", len(graph.Sinks()))
}
