package gate

import (
	"math"

	"github.com/vk/gategrid/internal/geom"
)

// Kind is the tagged variant of gate behaviour.
type Kind int

const (
	// Undefined is the kind of every unknown tag. It has no slots.
	Undefined Kind = iota
	// Source holds an externally stored signal (0 inputs, 1 output).
	Source
	// Sink mirrors its single input (1 input, 0 outputs).
	Sink
	Not
	And
	Or
	// Custom gates are defined in configuration files.
	Custom
)

// Builtin tags, as stored in gate records.
const (
	TagUndefined = "UNDEFINED"
	TagSource    = "INPUT"
	TagSink      = "OUTPUT"
	TagNot       = "NOT"
	TagAnd       = "AND"
	TagOr        = "OR"
)

func (k Kind) String() string {
	switch k {
	case Source:
		return "source"
	case Sink:
		return "sink"
	case Not:
		return "not"
	case And:
		return "and"
	case Or:
		return "or"
	case Custom:
		return "custom"
	default:
		return "undefined"
	}
}

// Spec describes one gate type: its outline, connection points and
// evaluation rule.
type Spec struct {
	Tag         string
	Kind        Kind
	Description string

	geometry []geom.Point
	inputs   []geom.Point
	outputs  []geom.Point
	logic    func(in []bool) bool
}

// Geometry returns the closed outline relative to the gate origin.
func (s *Spec) Geometry() []geom.Point { return s.geometry }

// InputSlots returns the offset of each input connection point. Its length
// is the expected input count.
func (s *Spec) InputSlots() []geom.Point { return s.inputs }

// OutputSlots returns the offset of each output connection point.
func (s *Spec) OutputSlots() []geom.Point { return s.outputs }

// Held reports whether the gate's signal is stored rather than computed.
// Held gates are evaluated through a latch store, not through Evaluate.
func (s *Spec) Held() bool { return s.Kind == Source }

// Evaluate applies the gate's boolean rule. in must be ordered by input slot.
func (s *Spec) Evaluate(in []bool) bool {
	if s.logic == nil {
		return false
	}
	return s.logic(in)
}

// signal returns in[i], treating missing entries as low.
func signal(in []bool, i int) bool {
	return i < len(in) && in[i]
}

// octagon returns a regular octagon of radius 1, matching the source and
// sink outline.
func octagon() []geom.Point {
	const n = 8
	da := 2 * math.Pi / n
	pts := make([]geom.Point, 0, n)
	for i := 1; i <= n; i++ {
		pts = append(pts, geom.Pt(math.Cos(da*float64(i)), math.Sin(da*float64(i))))
	}
	return pts
}

func triangle() []geom.Point {
	return []geom.Point{geom.Pt(0, 2), geom.Pt(3, 0), geom.Pt(0, -2)}
}

// builtinSpecs is the lookup table mapping each builtin tag to its
// geometry, slots and rule.
func builtinSpecs() map[string]*Spec {
	return map[string]*Spec{
		TagSource: {
			Tag:      TagSource,
			Kind:     Source,
			geometry: octagon(),
			outputs:  []geom.Point{geom.Pt(1, 0)},
		},
		TagSink: {
			Tag:      TagSink,
			Kind:     Sink,
			geometry: octagon(),
			inputs:   []geom.Point{geom.Pt(-1, 0)},
			logic:    func(in []bool) bool { return signal(in, 0) },
		},
		TagNot: {
			Tag:      TagNot,
			Kind:     Not,
			geometry: triangle(),
			inputs:   []geom.Point{geom.Pt(0, 0)},
			outputs:  []geom.Point{geom.Pt(3, 0)},
			logic:    func(in []bool) bool { return !signal(in, 0) },
		},
		TagOr: {
			Tag:      TagOr,
			Kind:     Or,
			geometry: triangle(),
			inputs:   []geom.Point{geom.Pt(0, 1), geom.Pt(0, -1)},
			outputs:  []geom.Point{geom.Pt(3, 0)},
			logic:    func(in []bool) bool { return signal(in, 0) || signal(in, 1) },
		},
		TagAnd: {
			Tag:  TagAnd,
			Kind: And,
			geometry: []geom.Point{
				geom.Pt(0, 2), geom.Pt(2, 2), geom.Pt(3, 0), geom.Pt(2, -2), geom.Pt(0, -2),
			},
			inputs:  []geom.Point{geom.Pt(0, 1), geom.Pt(0, -1)},
			outputs: []geom.Point{geom.Pt(3, 0)},
			logic:   func(in []bool) bool { return signal(in, 0) && signal(in, 1) },
		},
	}
}

// undefinedSpec is returned for unknown tags.
var undefinedSpec = &Spec{Tag: TagUndefined, Kind: Undefined}
