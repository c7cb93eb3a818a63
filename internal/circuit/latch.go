package circuit

import "math/rand/v2"

// Latches stores the held value of every source gate, keyed by gate id.
// Values are assigned on first read and kept until Reset.
type Latches struct {
	values map[string]bool
	pinned map[string]bool
	random func() bool
}

// NewLatches creates a latch store. A nil random falls back to a fair coin.
func NewLatches(random func() bool) *Latches {
	if random == nil {
		random = func() bool { return rand.IntN(2) == 1 }
	}
	return &Latches{
		values: make(map[string]bool),
		pinned: make(map[string]bool),
		random: random,
	}
}

// Value returns the held value of a source gate, assigning it if needed.
// The initial value is high when any outbound wire carries an initial
// signal, otherwise it is drawn from the random source.
func (l *Latches) Value(n *GateNode) bool {
	if v, ok := l.pinned[n.ID()]; ok {
		return v
	}
	if v, ok := l.values[n.ID()]; ok {
		return v
	}

	v := false
	seeded := false
	for i := 0; i < len(n.Outputs); i++ {
		if w := n.Outputs[i]; w != nil && w.Record.InitSignal {
			v, seeded = true, true
			break
		}
	}
	if !seeded {
		v = l.random()
	}
	l.values[n.ID()] = v
	return v
}

// Set pins a gate's value. Pinned values survive Reset.
func (l *Latches) Set(id string, v bool) {
	l.pinned[id] = v
}

// Toggle flips the held value of a source gate.
func (l *Latches) Toggle(n *GateNode) {
	v := !l.Value(n)
	if _, ok := l.pinned[n.ID()]; ok {
		l.pinned[n.ID()] = v
		return
	}
	l.values[n.ID()] = v
}

// Reset forgets every unpinned value.
func (l *Latches) Reset() {
	clear(l.values)
}
