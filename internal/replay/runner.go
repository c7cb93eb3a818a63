package replay

import (
	"context"
	"fmt"

	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/vk/gategrid/internal/editor"
	"github.com/vk/gategrid/internal/geom"
)

// ExpectationError reports an expect step whose gate signal differed.
type ExpectationError struct {
	Step Step
	Got  bool
	// Missing is set when the gate is not in the graph.
	Missing bool
}

func (e *ExpectationError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s: expected gate '%s' to be %t, but it is not in the graph", e.Step.Range, e.Step.Gate, e.Step.Value)
	}
	return fmt.Sprintf("%s: expected gate '%s' to be %t, got %t", e.Step.Range, e.Step.Gate, e.Step.Value, e.Got)
}

// Run executes every step against c in order. It stops at the first failed
// expectation or when ctx is done.
func Run(ctx context.Context, c *editor.Controller, script *Script) error {
	logger := ctxlog.FromContext(ctx)

	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("Replaying step.", "index", i, "kind", step.Kind)
		if err := apply(ctx, c, step); err != nil {
			return err
		}
		if err := c.Flush(ctx); err != nil {
			return err
		}
	}
	logger.Info("Replay finished.", "steps", len(script.Steps))
	return nil
}

func apply(ctx context.Context, c *editor.Controller, step Step) error {
	switch step.Kind {
	case KindPress:
		p := screenPoint(c, step)
		c.Handle(ctx, editor.PointerMove{X: p.X, Y: p.Y})
		c.Handle(ctx, editor.PointerDown{Button: step.Button, X: p.X, Y: p.Y})
	case KindRelease:
		c.Handle(ctx, editor.PointerUp{Button: step.Button})
	case KindMove:
		p := screenPoint(c, step)
		c.Handle(ctx, editor.PointerMove{X: p.X, Y: p.Y})
	case KindKey:
		c.Handle(ctx, editor.Key{Name: step.Key})
	case KindWheel:
		c.Handle(ctx, editor.Wheel{DeltaY: step.Delta})
	case KindResize:
		c.Handle(ctx, editor.Resize{Width: step.Width, Height: step.Height})
	case KindLeave:
		c.Handle(ctx, editor.PointerLeave{})
	case KindEnter:
		c.Handle(ctx, editor.PointerEnter{})
	case KindAddGate:
		c.AddGate(ctx, step.GateType)
	case KindZoomIn:
		c.ZoomIn()
	case KindZoomOut:
		c.ZoomOut()
	case KindCenter:
		c.CenterView()
	case KindPin:
		c.Pin(step.Gate, step.Value)
	case KindExpect:
		if _, ok := c.Graph().Gate(step.Gate); !ok {
			return &ExpectationError{Step: step, Missing: true}
		}
		if got := c.Signals().Gate(step.Gate); got != step.Value {
			return &ExpectationError{Step: step, Got: got}
		}
	default:
		return fmt.Errorf("%s: unknown step '%s'", step.Range, step.Kind)
	}
	return nil
}

func screenPoint(c *editor.Controller, step Step) geom.Point {
	v := c.Viewport()
	return v.Project(step.At)
}
