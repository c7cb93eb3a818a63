package replay

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/vk/gategrid/internal/editor"
	"github.com/vk/gategrid/internal/geom"
)

// Step kinds.
const (
	KindPress   = "press"
	KindRelease = "release"
	KindMove    = "move"
	KindKey     = "key"
	KindWheel   = "wheel"
	KindResize  = "resize"
	KindAddGate = "add_gate"
	KindZoomIn  = "zoom_in"
	KindZoomOut = "zoom_out"
	KindCenter  = "center"
	KindLeave   = "leave"
	KindEnter   = "enter"
	KindPin     = "pin"
	KindExpect  = "expect"
)

// Step is one decoded script block. Only the fields relevant to Kind are
// set.
type Step struct {
	Kind     string
	At       geom.Point
	Button   editor.Button
	Key      string
	Delta    float64
	Width    int
	Height   int
	GateType string
	Gate     string
	Value    bool
	Range    hcl.Range
}

// Script is an ordered list of steps.
type Script struct {
	Steps []Step
}

type pointBlock struct {
	At     []float64 `hcl:"at"`
	Button *string   `hcl:"button,optional"`
}

type releaseBlock struct {
	Button *string `hcl:"button,optional"`
}

type keyBlock struct {
	Name string `hcl:"name"`
}

type wheelBlock struct {
	Delta float64 `hcl:"delta"`
}

type resizeBlock struct {
	Width  int `hcl:"width"`
	Height int `hcl:"height"`
}

type addGateBlock struct {
	Type string `hcl:"type"`
}

type pinBlock struct {
	Gate  string `hcl:"gate"`
	Value bool   `hcl:"value"`
}

type expectBlock struct {
	Gate   string `hcl:"gate"`
	Signal bool   `hcl:"signal"`
}

type emptyBlock struct{}

// LoadFile reads and parses a script file.
func LoadFile(ctx context.Context, path string) (*Script, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading replay script.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes a script. Blocks keep their source order.
func Parse(src []byte, filename string) (*Script, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("script %s is not native HCL syntax", filename)
	}
	for _, attr := range body.Attributes {
		return nil, fmt.Errorf("%s: unexpected top-level attribute '%s'", attr.SrcRange, attr.Name)
	}

	script := &Script{Steps: make([]Step, 0, len(body.Blocks))}
	for _, block := range body.Blocks {
		if len(block.Labels) > 0 {
			return nil, fmt.Errorf("%s: '%s' blocks take no labels", block.DefRange(), block.Type)
		}
		step, err := decodeStep(block)
		if err != nil {
			return nil, err
		}
		script.Steps = append(script.Steps, step)
	}
	return script, nil
}

func decodeStep(block *hclsyntax.Block) (Step, error) {
	step := Step{Kind: block.Type, Range: block.DefRange()}
	var diags hcl.Diagnostics

	switch block.Type {
	case KindPress, KindMove:
		var b pointBlock
		diags = gohcl.DecodeBody(block.Body, nil, &b)
		if diags.HasErrors() {
			break
		}
		if len(b.At) != 2 {
			return step, fmt.Errorf("%s: 'at' must be an [x, y] pair", step.Range)
		}
		step.At = geom.Pt(b.At[0], b.At[1])
		if block.Type == KindMove && b.Button != nil {
			return step, fmt.Errorf("%s: 'move' takes no button", step.Range)
		}
		btn, err := parseButton(b.Button)
		if err != nil {
			return step, fmt.Errorf("%s: %w", step.Range, err)
		}
		step.Button = btn
	case KindRelease:
		var b releaseBlock
		diags = gohcl.DecodeBody(block.Body, nil, &b)
		if diags.HasErrors() {
			break
		}
		btn, err := parseButton(b.Button)
		if err != nil {
			return step, fmt.Errorf("%s: %w", step.Range, err)
		}
		step.Button = btn
	case KindKey:
		var b keyBlock
		diags = gohcl.DecodeBody(block.Body, nil, &b)
		step.Key = b.Name
	case KindWheel:
		var b wheelBlock
		diags = gohcl.DecodeBody(block.Body, nil, &b)
		step.Delta = b.Delta
	case KindResize:
		var b resizeBlock
		diags = gohcl.DecodeBody(block.Body, nil, &b)
		if !diags.HasErrors() && (b.Width <= 0 || b.Height <= 0) {
			return step, fmt.Errorf("%s: resize dimensions must be positive", step.Range)
		}
		step.Width, step.Height = b.Width, b.Height
	case KindAddGate:
		var b addGateBlock
		diags = gohcl.DecodeBody(block.Body, nil, &b)
		step.GateType = b.Type
	case KindPin:
		var b pinBlock
		diags = gohcl.DecodeBody(block.Body, nil, &b)
		step.Gate, step.Value = b.Gate, b.Value
	case KindExpect:
		var b expectBlock
		diags = gohcl.DecodeBody(block.Body, nil, &b)
		step.Gate, step.Value = b.Gate, b.Signal
	case KindZoomIn, KindZoomOut, KindCenter, KindLeave, KindEnter:
		var b emptyBlock
		diags = gohcl.DecodeBody(block.Body, nil, &b)
	default:
		return step, fmt.Errorf("%s: unknown step '%s'", step.Range, block.Type)
	}

	if diags.HasErrors() {
		return step, diags
	}
	return step, nil
}

func parseButton(name *string) (editor.Button, error) {
	if name == nil {
		return editor.Primary, nil
	}
	switch *name {
	case "primary":
		return editor.Primary, nil
	case "middle":
		return editor.Middle, nil
	case "secondary":
		return editor.Secondary, nil
	default:
		return editor.Primary, fmt.Errorf("unknown button '%s'", *name)
	}
}
