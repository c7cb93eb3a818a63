// Package replay drives an editor.Controller from an HCL input script.
//
// # Why Replay Exists
//
// The controller is headless: it needs a host shell to feed it pointer and
// key events. Replay is that shell for the CLI and for end-to-end tests. A
// script is a flat list of blocks executed top to bottom:
//
//	press    { at = [3, 0] }               # primary press at a world point
//	move     { at = [7, -2] }
//	press    { at = [8, 0], button = "secondary" }
//	release  { button = "middle" }
//	key      { name = "Escape" }
//	wheel    { delta = -1 }
//	resize   { width = 1280, height = 720 }
//	add_gate { type = "AND" }
//	zoom_in  {}
//	zoom_out {}
//	center   {}
//	leave    {}
//	enter    {}
//	pin      { gate = "A", value = true }
//	expect   { gate = "C", signal = true }
//
// World points are projected through the controller's viewport at the time
// the step runs, so a script stays valid across zoom and pan steps. After
// every step the runner flushes the controller, which makes backend round
// trips appear synchronous to the script.
package replay
