package circuit

// Signals maps gate ids to their evaluated output.
type Signals map[string]bool

// Gate returns the evaluated output of a gate.
func (s Signals) Gate(id string) bool { return s[id] }

// Wire returns the signal carried by a wire, which is its source gate's
// output.
func (s Signals) Wire(w *WireEdge) bool { return s[w.Source.Gate.ID()] }

// Evaluator computes gate outputs.
type Evaluator struct {
	Latches *Latches
}

// NewEvaluator creates an evaluator reading source values from latches.
func NewEvaluator(latches *Latches) *Evaluator {
	return &Evaluator{Latches: latches}
}

// Evaluate returns the output of node. cache memoizes results for one pass;
// visiting holds the gates whose inputs are currently being computed. A gate
// met while visiting evaluates to false and is not cached. Unconnected
// inputs read as false.
func (e *Evaluator) Evaluate(node *GateNode, cache, visiting map[string]bool) bool {
	id := node.ID()
	if v, ok := cache[id]; ok {
		return v
	}
	if visiting[id] {
		return false
	}

	if node.Spec.Held() {
		v := e.Latches.Value(node)
		cache[id] = v
		return v
	}

	visiting[id] = true
	in := make([]bool, len(node.Inputs))
	for i := range in {
		if w := node.Inputs[i]; w != nil {
			in[i] = e.Evaluate(w.Source.Gate, cache, visiting)
		}
	}
	delete(visiting, id)

	v := node.Spec.Evaluate(in)
	cache[id] = v
	return v
}

// EvaluateAll evaluates every gate of the graph in one pass.
func (e *Evaluator) EvaluateAll(graph *Graph) Signals {
	cache := make(map[string]bool, len(graph.Gates()))
	visiting := make(map[string]bool)
	for _, n := range graph.Gates() {
		e.Evaluate(n, cache, visiting)
	}
	return Signals(cache)
}
