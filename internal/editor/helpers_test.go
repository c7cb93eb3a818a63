package editor

import (
	"context"
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gategrid/internal/config"
	"github.com/vk/gategrid/internal/gate"
	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/inmemoryscene"
	"github.com/vk/gategrid/internal/model"
	"github.com/vk/gategrid/internal/scenestore"
)

// With a 2000x1500 canvas one world unit is 100px and the world origin sits
// at (1000, 750), so world (x, y) is screen (1000+100x, 750+100y).
const (
	testWidth  = 2000
	testHeight = 1500
)

func screen(x, y float64) (float64, float64) {
	return 1000 + 100*x, 750 + 100*y
}

func press(b Button, x, y float64) PointerDown {
	sx, sy := screen(x, y)
	return PointerDown{Button: b, X: sx, Y: sy}
}

func move(x, y float64) PointerMove {
	sx, sy := screen(x, y)
	return PointerMove{X: sx, Y: sy}
}

type errorLog struct {
	mu   sync.Mutex
	errs []error
}

func (l *errorLog) Report(_ context.Context, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
}

func (l *errorLog) all() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]error(nil), l.errs...)
}

// fixture holds a controller over an in-memory scene:
//
//	A (INPUT @ 0,0, out 1,0) --w1--> B (NOT @ 3,0, in 3,0, out 6,0)
//	C (OUTPUT @ 8,0, in 7,0) unconnected
type fixture struct {
	ctx   context.Context
	store *inmemoryscene.Store
	ctrl  *Controller
	log   *errorLog
}

func fixtureGates() []model.Gate {
	return []model.Gate{
		{ID: "A", Type: gate.TagSource, Position: geom.Pt(0, 0), SceneID: "main"},
		{ID: "B", Type: gate.TagNot, Position: geom.Pt(3, 0), SceneID: "main"},
		{ID: "C", Type: gate.TagSink, Position: geom.Pt(8, 0), SceneID: "main"},
	}
}

func fixtureWires() []model.Wire {
	return []model.Wire{
		{ID: "w1", SourceGate: "A", SourceSlot: 0, TargetGate: "B", TargetSlot: 0, SceneID: "main"},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newSceneFixture(t, fixtureGates(), fixtureWires(), nil)
}

// newSceneFixture seeds an in-memory scene. wrap, when set, decorates the
// store the controller talks to.
func newSceneFixture(t *testing.T, gates []model.Gate, wires []model.Wire, wrap func(scenestore.Store) scenestore.Store) *fixture {
	t.Helper()

	store := inmemoryscene.New()
	store.Seed(gates, wires)

	var backend scenestore.Store = store
	if wrap != nil {
		backend = wrap(store)
	}

	settings := config.DefaultEditorSettings()
	settings.Width, settings.Height = testWidth, testHeight

	log := &errorLog{}
	ctrl := New(backend, gate.NewCatalog(), Options{
		SceneID:  "main",
		Settings: settings,
		Reporter: log,
		Random:   func() bool { return false },
	})

	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))
	return &fixture{ctx: ctx, store: store, ctrl: ctrl, log: log}
}

func (f *fixture) do(events ...Event) {
	for _, ev := range events {
		f.ctrl.Handle(f.ctx, ev)
	}
}

func (f *fixture) flush(t *testing.T) {
	t.Helper()
	require.NoError(t, f.ctrl.Flush(f.ctx))
}

func (f *fixture) storedWires(t *testing.T) []model.Wire {
	t.Helper()
	wires, err := f.store.ListWires(f.ctx, "main")
	require.NoError(t, err)
	return wires
}

// recordingCanvas records every draw call.
type recordingCanvas struct {
	width, height int
	fills         []color.Color
	lines         []recordedLine
	polygons      []recordedPolygon
}

type recordedLine struct {
	a, b  geom.Point
	width float64
	color color.Color
}

type recordedPolygon struct {
	pts    []geom.Point
	fill   color.Color
	stroke color.Color
}

func (r *recordingCanvas) Size() (int, int)   { return r.width, r.height }
func (r *recordingCanvas) Fill(c color.Color) { r.fills = append(r.fills, c) }

func (r *recordingCanvas) Line(a, b geom.Point, width float64, c color.Color) {
	r.lines = append(r.lines, recordedLine{a: a, b: b, width: width, color: c})
}

func (r *recordingCanvas) Polygon(pts []geom.Point, fill, stroke color.Color, width float64) {
	r.polygons = append(r.polygons, recordedPolygon{pts: pts, fill: fill, stroke: stroke})
}

func (r *recordingCanvas) linesOf(c color.Color, width float64) []recordedLine {
	var out []recordedLine
	for _, l := range r.lines {
		if l.color == c && l.width == width {
			out = append(out, l)
		}
	}
	return out
}
