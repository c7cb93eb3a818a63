package circuit

import (
	"context"

	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/vk/gategrid/internal/gate"
	"github.com/vk/gategrid/internal/model"
)

const (
	directionInput  = "input"
	directionOutput = "output"
)

// Build links gate and wire records into a Graph. It fails atomically with
// *DanglingWireError or *OutOfRangeConnectionError; no partial graph is ever
// returned.
func Build(ctx context.Context, catalog *gate.Catalog, gates []model.Gate, wires []model.Wire) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "gates", len(gates), "wires", len(wires))

	graph := &Graph{
		gates: make([]*GateNode, 0, len(gates)),
		byID:  make(map[string]*GateNode, len(gates)),
		wires: make([]*WireEdge, 0, len(wires)),
	}

	// First pass: one shell per gate record.
	for _, rec := range gates {
		spec := catalog.Lookup(rec.Type)
		node := &GateNode{
			Record:  rec,
			Spec:    spec,
			Kind:    spec.Kind,
			Inputs:  make(map[int]*WireEdge, len(spec.InputSlots())),
			Outputs: make(map[int]*WireEdge, len(spec.OutputSlots())),
		}
		if _, dup := graph.byID[rec.ID]; dup {
			logger.Warn("Build: Duplicate gate id, later record wins.", "gate_id", rec.ID)
			for i, existing := range graph.gates {
				if existing.ID() == rec.ID {
					graph.gates = append(graph.gates[:i], graph.gates[i+1:]...)
					break
				}
			}
		}
		graph.byID[rec.ID] = node
		graph.gates = append(graph.gates, node)
	}

	// Second pass: link wires into slots.
	for _, rec := range wires {
		source, ok := graph.byID[rec.SourceGate]
		if !ok {
			return nil, &DanglingWireError{WireID: rec.ID, GateID: rec.SourceGate}
		}
		target, ok := graph.byID[rec.TargetGate]
		if !ok {
			return nil, &DanglingWireError{WireID: rec.ID, GateID: rec.TargetGate}
		}

		if n := len(source.Spec.OutputSlots()); rec.SourceSlot < 0 || rec.SourceSlot >= n {
			return nil, &OutOfRangeConnectionError{
				WireID: rec.ID, GateID: source.ID(), Slot: rec.SourceSlot, Direction: directionOutput, Expected: n,
			}
		}
		if n := len(target.Spec.InputSlots()); rec.TargetSlot < 0 || rec.TargetSlot >= n {
			return nil, &OutOfRangeConnectionError{
				WireID: rec.ID, GateID: target.ID(), Slot: rec.TargetSlot, Direction: directionInput, Expected: n,
			}
		}

		edge := &WireEdge{
			Record: rec,
			Source: Endpoint{Slot: rec.SourceSlot, Gate: source},
			Target: Endpoint{Slot: rec.TargetSlot, Gate: target},
			Path:   rec.ClonePath(),
		}

		if prev := source.Outputs[rec.SourceSlot]; prev != nil {
			logger.Debug("Build: Output slot fans out, later wire is recorded.",
				"gate_id", source.ID(), "slot", rec.SourceSlot, "previous_wire", prev.ID(), "wire", rec.ID)
		}
		if prev := target.Inputs[rec.TargetSlot]; prev != nil {
			logger.Warn("Build: Input slot claimed twice, later wire wins.",
				"gate_id", target.ID(), "slot", rec.TargetSlot, "previous_wire", prev.ID(), "wire", rec.ID)
		}
		source.Outputs[rec.SourceSlot] = edge
		target.Inputs[rec.TargetSlot] = edge
		graph.wires = append(graph.wires, edge)
	}
	logger.Debug("Build: Wire linking complete.", "wire_count", len(graph.wires))

	// Third pass: mark unconnected slots and collect sinks.
	for _, node := range graph.gates {
		fillAbsent(node.Inputs, len(node.Spec.InputSlots()))
		fillAbsent(node.Outputs, len(node.Spec.OutputSlots()))
		if isSink(node) {
			graph.sinks = append(graph.sinks, node)
		}
	}

	logger.Debug("Build: Graph construction successful.", "sink_count", len(graph.sinks))
	return graph, nil
}

func fillAbsent(slots map[int]*WireEdge, expected int) {
	for i := 0; i < expected; i++ {
		if _, ok := slots[i]; !ok {
			slots[i] = nil
		}
	}
}

// isSink reports whether a gate is a traversal root: it has no outputs, or
// at least one of them is unconnected.
func isSink(node *GateNode) bool {
	if len(node.Outputs) == 0 {
		return true
	}
	for _, w := range node.Outputs {
		if w == nil {
			return true
		}
	}
	return false
}
