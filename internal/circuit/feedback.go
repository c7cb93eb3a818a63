package circuit

// FeedbackGates returns the ids of gates that lie on a directed cycle, in
// record order. Strongly connected components are found with a single
// depth-first search following wires from source to target.
func FeedbackGates(graph *Graph) []string {
	successors := make(map[*GateNode][]*GateNode)
	for _, w := range graph.Wires() {
		successors[w.Source.Gate] = append(successors[w.Source.Gate], w.Target.Gate)
	}

	index := make(map[*GateNode]int)
	low := make(map[*GateNode]int)
	onStack := make(map[*GateNode]bool)
	var stack []*GateNode
	onCycle := make(map[*GateNode]bool)
	next := 0

	var visit func(n *GateNode)
	visit = func(n *GateNode) {
		index[n] = next
		low[n] = next
		next++
		stack = append(stack, n)
		onStack[n] = true

		for _, succ := range successors[n] {
			if succ == n {
				onCycle[n] = true
			}
			if _, seen := index[succ]; !seen {
				visit(succ)
				low[n] = min(low[n], low[succ])
			} else if onStack[succ] {
				low[n] = min(low[n], index[succ])
			}
		}

		if low[n] != index[n] {
			return
		}
		// n is the root of a component; pop it.
		var component []*GateNode
		for {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[top] = false
			component = append(component, top)
			if top == n {
				break
			}
		}
		if len(component) > 1 {
			for _, c := range component {
				onCycle[c] = true
			}
		}
	}

	for _, n := range graph.Gates() {
		if _, seen := index[n]; !seen {
			visit(n)
		}
	}

	var ids []string
	for _, n := range graph.Gates() {
		if onCycle[n] {
			ids = append(ids, n.ID())
		}
	}
	return ids
}
