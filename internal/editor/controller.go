package editor

import (
	"context"
	"sync"

	"github.com/vk/gategrid/internal/circuit"
	"github.com/vk/gategrid/internal/config"
	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/vk/gategrid/internal/gate"
	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/scenestore"
)

// Options configures a Controller.
type Options struct {
	// SceneID scopes every store call.
	SceneID string
	// Settings overrides config.DefaultEditorSettings when non-nil.
	Settings *config.EditorSettings
	// Reporter receives user-visible errors. Defaults to LogReporter.
	Reporter Reporter
	// Random seeds source gates without an initial signal. Defaults to a
	// fair coin.
	Random func() bool
}

type dragState struct {
	node   *circuit.GateNode
	origin geom.Point
}

// Controller maps input events onto graph mutations and renders frames.
// It must only be used from a single goroutine.
type Controller struct {
	store    scenestore.Store
	catalog  *gate.Catalog
	sceneID  string
	settings config.EditorSettings
	reporter Reporter

	view           Viewport
	pointer        geom.Point
	pointerPresent bool
	panning        bool
	drag           *dragState
	anchor         *anchorState
	canCommit      bool

	graph     *circuit.Graph
	latches   *circuit.Latches
	evaluator *circuit.Evaluator
	signals   circuit.Signals

	cache frameCache

	mu          sync.Mutex
	completions []func(context.Context)
	notify      chan struct{}
	inflight    int
	idle        []chan struct{}
}

// New creates a controller with an empty graph. Call Load to fetch the
// scene.
func New(store scenestore.Store, catalog *gate.Catalog, opts Options) *Controller {
	settings := *config.DefaultEditorSettings()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = LogReporter
	}
	latches := circuit.NewLatches(opts.Random)

	return &Controller{
		store:          store,
		catalog:        catalog,
		sceneID:        opts.SceneID,
		settings:       settings,
		reporter:       reporter,
		view:           NewViewport(settings, settings.Width, settings.Height),
		pointerPresent: true,
		graph:          circuit.Empty(),
		latches:        latches,
		evaluator:      circuit.NewEvaluator(latches),
		signals:        circuit.Signals{},
		notify:         make(chan struct{}, 1),
	}
}

// Graph returns the current graph. It is never nil.
func (c *Controller) Graph() *circuit.Graph { return c.graph }

// Signals returns the evaluated signals of the current graph.
func (c *Controller) Signals() circuit.Signals { return c.signals }

// Viewport returns a copy of the current viewport.
func (c *Controller) Viewport() Viewport { return c.view }

// CanCommit reports whether a primary press at the current pointer
// position would commit the wire being laid.
func (c *Controller) CanCommit() bool { return c.canCommit }

// Anchored reports whether a wire is being laid.
func (c *Controller) Anchored() bool { return c.anchor != nil }

// Dragging returns the id of the gate being dragged.
func (c *Controller) Dragging() (string, bool) {
	if c.drag == nil {
		return "", false
	}
	return c.drag.node.ID(), true
}

// Pin fixes the held value of a source gate and re-evaluates.
func (c *Controller) Pin(gateID string, v bool) {
	c.latches.Set(gateID, v)
	c.signals = c.evaluator.EvaluateAll(c.graph)
}

// Handle applies one input event.
func (c *Controller) Handle(ctx context.Context, ev Event) {
	switch e := ev.(type) {
	case PointerDown:
		c.pointerDown(ctx, e)
	case PointerUp:
		if e.Button == Middle {
			c.panning = false
		}
	case PointerMove:
		c.pointerMove(geom.Pt(e.X, e.Y))
	case Wheel:
		switch {
		case e.DeltaY > 0:
			c.view.Zoom(-c.settings.WheelStep)
		case e.DeltaY < 0:
			c.view.Zoom(c.settings.WheelStep)
		}
		c.viewChanged()
	case Key:
		c.key(ctx, e.Name)
	case Resize:
		c.view.Resize(e.Width, e.Height)
		c.viewChanged()
	case PointerLeave:
		c.pointerPresent = false
	case PointerEnter:
		c.pointerPresent = true
	default:
		ctxlog.FromContext(ctx).Warn("Ignoring unknown editor event.", "event", ev)
	}
}

func (c *Controller) pointerDown(ctx context.Context, e PointerDown) {
	c.pointer = geom.Pt(e.X, e.Y)

	if e.Button == Middle {
		c.panning = true
		return
	}
	// Any primary or secondary press ends a drag and is consumed by it.
	if c.drag != nil {
		c.endDrag(ctx)
		return
	}

	switch e.Button {
	case Primary:
		c.primaryPress(ctx)
	case Secondary:
		c.startDrag(ctx)
	}
}

func (c *Controller) pointerMove(p geom.Point) {
	delta := p.Sub(c.pointer)
	c.pointer = p

	if c.panning {
		c.view.Pan(delta)
		c.viewChanged()
	}
	if c.drag != nil {
		pos := c.view.Snap(p)
		if !pos.Eq(c.drag.node.Record.Position) {
			c.drag.node.Record.Position = pos
			c.anchorMoved(c.drag.node)
			c.cache.invalidate()
		}
	}
	c.updateCanCommit()
}

func (c *Controller) key(ctx context.Context, name string) {
	switch name {
	case KeyEscape:
		c.cancelWire(ctx)
	case KeyDelete, KeyBackspace, KeyX:
		c.deleteWireAtPointer(ctx)
	}
}

func (c *Controller) viewChanged() {
	c.cache.invalidate()
	c.updateCanCommit()
}

// ZoomIn increases the scale by the zoom step.
func (c *Controller) ZoomIn() {
	c.view.Zoom(c.settings.ZoomStep)
	c.viewChanged()
}

// ZoomOut decreases the scale by the zoom step.
func (c *Controller) ZoomOut() {
	c.view.Zoom(-c.settings.ZoomStep)
	c.viewChanged()
}

// CenterView resets the scale and puts the world origin at the centre.
func (c *Controller) CenterView() {
	c.view.Center()
	c.viewChanged()
}

// AddGate asks the store to create a gate of type tag at the grid point
// under the centre of the view. The graph is reloaded on success.
func (c *Controller) AddGate(ctx context.Context, tag string) {
	centre := geom.Pt(float64(c.view.Width)/2, float64(c.view.Height)/2)
	pos := c.view.Snap(centre)
	sceneID := c.sceneID

	ctxlog.FromContext(ctx).Debug("Adding gate.", "gate_type", tag, "x", pos.X, "y", pos.Y)
	c.request(ctx, scenestore.OpCreateGate, func(ctx context.Context) error {
		return c.store.CreateGate(ctx, sceneID, tag, pos)
	}, c.reload, nil)
}
