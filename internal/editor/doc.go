// Package editor is the interactive core of the circuit editor: a
// controller that owns the viewport, the current graph and two small state
// machines, one for laying wires and one for dragging gates.
//
// # Why Editor Exists
//
// The host shell (a window, a test, or the replay command) only delivers
// input events and asks for frames. Everything between a pointer press and
// a backend mutation lives here: hit testing against the same graph that is
// drawn, deciding whether a wire can be committed, and rebuilding the graph
// once the backend acknowledges a change.
//
// # Threading Model
//
// A Controller is confined to one goroutine, the UI goroutine. Only the
// scene store calls run elsewhere. Their completions are queued and applied
// when the UI goroutine calls Drain, or automatically inside Run. A rebuild
// therefore always happens after the success of the request that caused
// it, never speculatively. Overlapping requests are not serialized.
//
// # Wire Laying
//
//	idle --primary on connection point--> anchored
//	anchored --primary on empty space--> anchored (+waypoint)
//	anchored --primary on opposite point of another gate--> idle (commit)
//	anchored --Escape--> idle (cancel)
//
// Committed wires are always oriented output to input. When the wire was
// started on an input, the waypoints are reversed.
package editor
