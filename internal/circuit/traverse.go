package circuit

// Traverse walks the graph depth-first from each root: the gate, then for
// each input slot in ascending order its wire (if connected) followed by the
// wire's source gate. Gates reachable along several paths are visited once
// per path. A gate already on the current path is not re-entered.
func Traverse(roots []*GateNode, visit func(Element)) {
	walk(roots, visit, false)
}

// TraverseOnce walks in the same order as Traverse but enters every gate at
// most once, so each gate and wire is visited exactly once. Gates shared by
// several paths keep the position of their first visit.
func TraverseOnce(roots []*GateNode, visit func(Element)) {
	walk(roots, visit, true)
}

func walk(roots []*GateNode, visit func(Element), once bool) {
	onPath := make(map[*GateNode]bool)
	entered := make(map[*GateNode]bool)

	var enter func(n *GateNode)
	enter = func(n *GateNode) {
		visit(n)
		onPath[n] = true
		entered[n] = true
		for i := 0; i < len(n.Inputs); i++ {
			w := n.Inputs[i]
			if w == nil {
				continue
			}
			visit(w)
			src := w.Source.Gate
			if onPath[src] || (once && entered[src]) {
				continue
			}
			enter(src)
		}
		delete(onPath, n)
	}

	for _, root := range roots {
		if once && entered[root] {
			continue
		}
		enter(root)
	}
}
