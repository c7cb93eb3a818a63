package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/gategrid/internal/geom"
)

// Model is the unified, format-agnostic representation of the editor
// configuration: viewport/editor settings plus any custom gate definitions.
type Model struct {
	Editor *EditorSettings
	Gates  map[string]*GateDefinition
}

// NewModel returns an empty model carrying the default editor settings.
func NewModel() *Model {
	return &Model{
		Editor: DefaultEditorSettings(),
		Gates:  make(map[string]*GateDefinition),
	}
}

// EditorSettings tunes the interactive editor. Zero values in a loaded file
// mean "keep the default".
type EditorSettings struct {
	// MinZoom and MaxZoom clamp the viewport scale.
	MinZoom float64 `validate:"gt=0"`
	MaxZoom float64 `validate:"gtfield=MinZoom"`
	// WheelStep is the scale change per wheel notch.
	WheelStep float64 `validate:"gt=0"`
	// ZoomStep is the scale change of the ZoomIn/ZoomOut commands.
	ZoomStep float64 `validate:"gt=0"`
	// Subdivisions is the number of vertical grid cells at scale 1.0.
	Subdivisions float64 `validate:"gt=0"`
	// GridThreshold is the scale under which grid lines are not drawn.
	GridThreshold float64 `validate:"gte=0"`
	// DeleteTolerance is the pixel buffer used when hit-testing wires.
	DeleteTolerance float64 `validate:"gt=0"`
	// Width and Height are the initial canvas dimensions in pixels.
	Width  int `validate:"gt=0"`
	Height int `validate:"gt=0"`
}

// DefaultEditorSettings returns the settings used when no config file
// overrides them.
func DefaultEditorSettings() *EditorSettings {
	return &EditorSettings{
		MinZoom:         0.02,
		MaxZoom:         2.0,
		WheelStep:       0.03,
		ZoomStep:        0.5,
		Subdivisions:    15,
		GridThreshold:   0.1,
		DeleteTolerance: 10,
		Width:           1280,
		Height:          720,
	}
}

// Merge overlays every non-zero field of other onto s.
func (s *EditorSettings) Merge(other *EditorSettings) {
	if other == nil {
		return
	}
	if other.MinZoom != 0 {
		s.MinZoom = other.MinZoom
	}
	if other.MaxZoom != 0 {
		s.MaxZoom = other.MaxZoom
	}
	if other.WheelStep != 0 {
		s.WheelStep = other.WheelStep
	}
	if other.ZoomStep != 0 {
		s.ZoomStep = other.ZoomStep
	}
	if other.Subdivisions != 0 {
		s.Subdivisions = other.Subdivisions
	}
	if other.GridThreshold != 0 {
		s.GridThreshold = other.GridThreshold
	}
	if other.DeleteTolerance != 0 {
		s.DeleteTolerance = other.DeleteTolerance
	}
	if other.Width != 0 {
		s.Width = other.Width
	}
	if other.Height != 0 {
		s.Height = other.Height
	}
}

// --- Gate Definition Models ---

// GateDefinition is the format-agnostic representation of a custom gate
// manifest.
type GateDefinition struct {
	Type        string
	Description string
	// Geometry is the closed outline relative to the gate origin.
	Geometry []geom.Point
	// Inputs and Outputs are the connection point offsets, one per slot.
	Inputs  []geom.Point
	Outputs []geom.Point
	// Logic is evaluated with the variable `in` bound to a tuple of the
	// input signals and must yield a bool.
	Logic hcl.Expression
}
