package editor

// Button identifies a pointer button.
type Button int

const (
	Primary Button = iota
	Middle
	Secondary
)

func (b Button) String() string {
	switch b {
	case Primary:
		return "primary"
	case Middle:
		return "middle"
	case Secondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Key names understood by the controller.
const (
	KeyEscape    = "Escape"
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
	KeyX         = "x"
)

// Event is an input event delivered by the host shell. Coordinates are in
// screen pixels.
type Event interface {
	event()
}

// PointerDown is a button press.
type PointerDown struct {
	Button Button
	X, Y   float64
}

// PointerUp is a button release.
type PointerUp struct {
	Button Button
}

// PointerMove reports a new pointer position.
type PointerMove struct {
	X, Y float64
}

// Wheel is a scroll notch. Positive DeltaY zooms out.
type Wheel struct {
	DeltaY float64
}

// Key is a key press.
type Key struct {
	Name string
}

// Resize reports new canvas dimensions.
type Resize struct {
	Width, Height int
}

// PointerLeave is sent when the pointer leaves the canvas.
type PointerLeave struct{}

// PointerEnter is sent when the pointer enters the canvas.
type PointerEnter struct{}

func (PointerDown) event()  {}
func (PointerUp) event()    {}
func (PointerMove) event()  {}
func (Wheel) event()        {}
func (Key) event()          {}
func (Resize) event()       {}
func (PointerLeave) event() {}
func (PointerEnter) event() {}
