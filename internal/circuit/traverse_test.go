package circuit

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gategrid/internal/gate"
	"github.com/vk/gategrid/internal/model"
)

func TestTraverse_Order(t *testing.T) {
	graph := mustBuild(t,
		[]model.Gate{g("S0", gate.TagSource), g("S1", gate.TagSource), g("A", gate.TagAnd), g("O", gate.TagSink)},
		[]model.Wire{
			w("w1", "S1", 0, "A", 1),
			w("w0", "S0", 0, "A", 0),
			w("w2", "A", 0, "O", 0),
		},
	)

	want := []string{"O", "wire:w2", "A", "wire:w0", "S0", "wire:w1", "S1"}
	if diff := cmp.Diff(want, trace(graph.Sinks())); diff != "" {
		t.Errorf("traversal mismatch (-want +got):\n%s", diff)
	}
}

func TestTraverse_FanInVisitedPerPath(t *testing.T) {
	graph := mustBuild(t,
		[]model.Gate{g("S", gate.TagSource), g("N", gate.TagNot), g("O", gate.TagOr)},
		[]model.Wire{
			w("a", "S", 0, "N", 0),
			w("x", "N", 0, "O", 0),
			w("y", "N", 0, "O", 1),
		},
	)

	want := []string{"O", "wire:x", "N", "wire:a", "S", "wire:y", "N", "wire:a", "S"}
	assert.Equal(t, want, trace(graph.Sinks()))
}

func TestTraverse_Deterministic(t *testing.T) {
	gates := []model.Gate{g("S", gate.TagSource), g("N", gate.TagNot), g("A", gate.TagAnd), g("T", gate.TagSource)}
	wires := []model.Wire{w("1", "S", 0, "N", 0), w("2", "N", 0, "A", 0), w("3", "T", 0, "A", 1)}

	first := trace(mustBuild(t, gates, wires).Sinks())
	second := trace(mustBuild(t, gates, wires).Sinks())
	assert.Equal(t, first, second)
}

func TestTraverse_FeedbackLoopTerminates(t *testing.T) {
	// X (OR) feeds Y (NOT) which feeds back into X.
	graph := mustBuild(t,
		[]model.Gate{g("S", gate.TagSource), g("X", gate.TagOr), g("Y", gate.TagNot)},
		[]model.Wire{
			w("s", "S", 0, "X", 0),
			w("xy", "X", 0, "Y", 0),
			w("yx", "Y", 0, "X", 1),
		},
	)
	x, _ := graph.Gate("X")

	seq := trace([]*GateNode{x})
	assert.Equal(t, []string{"X", "wire:s", "S", "wire:yx", "Y", "wire:xy"}, seq)
}

func TestTraverse_EmptyRoots(t *testing.T) {
	assert.Empty(t, trace(nil))
}

// ladder chains OR gates where both inputs of each stage read the previous
// stage's output, so the number of paths doubles per stage.
func ladder(stages int) ([]model.Gate, []model.Wire) {
	gates := []model.Gate{g("S", gate.TagSource)}
	var wires []model.Wire
	prev := "S"
	for i := 0; i < stages; i++ {
		id := fmt.Sprintf("L%d", i)
		gates = append(gates, g(id, gate.TagOr))
		wires = append(wires,
			w(id+"a", prev, 0, id, 0),
			w(id+"b", prev, 0, id, 1),
		)
		prev = id
	}
	return gates, wires
}

func TestTraverseOnce_VisitsEachElementOnce(t *testing.T) {
	gates, wires := ladder(40)
	graph := mustBuild(t, gates, wires)

	seen := make(map[Element]int)
	TraverseOnce(graph.Sinks(), func(e Element) { seen[e]++ })

	assert.Len(t, seen, len(gates)+len(wires))
	for e, n := range seen {
		assert.Equal(t, 1, n, "element %v visited more than once", e)
	}
}

func TestTraverseOnce_KeepsFirstVisitOrder(t *testing.T) {
	graph := mustBuild(t,
		[]model.Gate{g("S", gate.TagSource), g("N", gate.TagNot), g("O", gate.TagOr)},
		[]model.Wire{
			w("a", "S", 0, "N", 0),
			w("x", "N", 0, "O", 0),
			w("y", "N", 0, "O", 1),
		},
	)

	var seq []string
	TraverseOnce(graph.Sinks(), func(e Element) {
		switch v := e.(type) {
		case *GateNode:
			seq = append(seq, v.ID())
		case *WireEdge:
			seq = append(seq, "wire:"+v.ID())
		}
	})
	assert.Equal(t, []string{"O", "wire:x", "N", "wire:a", "S", "wire:y"}, seq)
}

func TestTraverse_SkipsGatesUnreachableFromSinks(t *testing.T) {
	// X and Y drive each other and nothing else, so neither is a sink and
	// no sink reads them.
	graph := mustBuild(t,
		[]model.Gate{g("X", gate.TagNot), g("Y", gate.TagNot), g("S", gate.TagSource), g("SINK", gate.TagSink)},
		[]model.Wire{
			w("xy", "X", 0, "Y", 0),
			w("yx", "Y", 0, "X", 0),
			w("s", "S", 0, "SINK", 0),
		},
	)
	require.Equal(t, []string{"SINK"}, ids(graph.Sinks()))

	want := []string{"SINK", "wire:s", "S"}
	assert.Equal(t, want, trace(graph.Sinks()))

	var once []string
	TraverseOnce(graph.Sinks(), func(e Element) {
		if n, ok := e.(*GateNode); ok {
			once = append(once, n.ID())
		}
	})
	assert.Equal(t, []string{"SINK", "S"}, once)
}
