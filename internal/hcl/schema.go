package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a configuration file may hold.
type fileRoot struct {
	Editors []*editorBlock `hcl:"editor,block"`
	Gates   []*gateBlock   `hcl:"gate,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// editorBlock mirrors config.EditorSettings. Omitted attributes decode to
// zero, which means "keep the default".
type editorBlock struct {
	MinZoom         float64 `hcl:"min_zoom,optional"`
	MaxZoom         float64 `hcl:"max_zoom,optional"`
	WheelStep       float64 `hcl:"wheel_step,optional"`
	ZoomStep        float64 `hcl:"zoom_step,optional"`
	Subdivisions    float64 `hcl:"subdivisions,optional"`
	GridThreshold   float64 `hcl:"grid_threshold,optional"`
	DeleteTolerance float64 `hcl:"delete_tolerance,optional"`
	Width           int     `hcl:"width,optional"`
	Height          int     `hcl:"height,optional"`
}

// gateBlock is a custom gate manifest.
type gateBlock struct {
	Type        string      `hcl:"type,label"`
	Description string      `hcl:"description,optional"`
	Geometry    [][]float64 `hcl:"geometry"`
	Inputs      [][]float64 `hcl:"inputs,optional"`
	Outputs     [][]float64 `hcl:"outputs,optional"`
	// Logic is kept unevaluated; it references `in`, which only exists at
	// evaluation time.
	Logic hcl.Expression `hcl:"logic"`
}
