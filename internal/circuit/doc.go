// Package circuit turns flat, unordered gate and wire records into a linked
// graph, walks it from its sinks and evaluates signals.
//
// # Why This Package Exists
//
// Records arrive from the backend as two independent lists. Nothing in them
// guarantees that a wire's endpoints exist or that its slot indices fit the
// gate type. Build is the single place where those guarantees are enforced:
// it either returns a fully linked Graph in which every expected slot is
// present (connected or explicitly absent), or it fails and returns nothing.
//
// # Traversal And Evaluation
//
// Roots of every walk are the sinks: gates with no outputs, or with at least
// one unconnected output. Traverse visits a gate, then each connected input
// wire in ascending slot order, then recurses into the wire's source gate.
// A gate already on the current recursion path is not re-entered, so
// feedback loops terminate while fan-in still revisits shared gates.
//
// The Evaluator computes each gate's output from its inputs with a per-pass
// cache. Cycles are broken by a visiting set: a gate met again while its own
// inputs are being computed reads as low. Source gates read their value
// from Latches instead of computing it.
package circuit
