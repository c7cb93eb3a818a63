package portid

import "fmt"

// Direction is the side of a gate a port belongs to.
type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == In {
		return Out
	}
	return In
}

// Address identifies one connection point of one gate.
type Address struct {
	Gate      string
	Direction Direction
	Slot      int
}

// New is shorthand for an Address literal.
func New(gate string, dir Direction, slot int) Address {
	return Address{Gate: gate, Direction: dir, Slot: slot}
}

// String serializes the Address into its canonical form.
func (a Address) String() string {
	return fmt.Sprintf("%s.%s[%d]", a.Gate, a.Direction, a.Slot)
}
