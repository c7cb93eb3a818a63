package circuit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gategrid/internal/gate"
	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/model"
)

func g(id, tag string) model.Gate {
	return model.Gate{ID: id, Type: tag, Position: geom.Pt(0, 0)}
}

func w(id, from string, fromSlot int, to string, toSlot int) model.Wire {
	return model.Wire{ID: id, SourceGate: from, SourceSlot: fromSlot, TargetGate: to, TargetSlot: toSlot}
}

func mustBuild(t *testing.T, gates []model.Gate, wires []model.Wire) *Graph {
	t.Helper()
	graph, err := Build(context.Background(), gate.NewCatalog(), gates, wires)
	require.NoError(t, err)
	require.NotNil(t, graph)
	return graph
}

func ids(nodes []*GateNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID())
	}
	return out
}

// trace records the traversal order as gate ids and "wire:<id>" entries.
func trace(roots []*GateNode) []string {
	var seq []string
	Traverse(roots, func(e Element) {
		switch v := e.(type) {
		case *GateNode:
			seq = append(seq, v.ID())
		case *WireEdge:
			seq = append(seq, "wire:"+v.ID())
		}
	})
	return seq
}
