package circuit

import "fmt"

// DanglingWireError reports a wire whose source or target gate is missing.
type DanglingWireError struct {
	WireID string
	GateID string
}

func (e *DanglingWireError) Error() string {
	return fmt.Sprintf("wire '%s' references unknown gate '%s'", e.WireID, e.GateID)
}

// OutOfRangeConnectionError reports a wire claiming a slot the gate type
// does not have.
type OutOfRangeConnectionError struct {
	WireID    string
	GateID    string
	Slot      int
	Direction string
	Expected  int
}

func (e *OutOfRangeConnectionError) Error() string {
	return fmt.Sprintf("wire '%s' connects to %s slot %d of gate '%s', which has %d %s slots",
		e.WireID, e.Direction, e.Slot, e.GateID, e.Expected, e.Direction)
}
