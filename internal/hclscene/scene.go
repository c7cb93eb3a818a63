package hclscene

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/model"
	"github.com/vk/gategrid/internal/portid"
	"github.com/zclconf/go-cty/cty"
)

// DefaultSceneID is used when a file does not name its scene.
const DefaultSceneID = "default"

// Scene is the content of a scene file.
type Scene struct {
	ID    string
	Gates []model.Gate
	Wires []model.Wire
}

type fileRoot struct {
	Scene  string       `hcl:"scene,optional"`
	Gates  []*gateBlock `hcl:"gate,block"`
	Wires  []*wireBlock `hcl:"wire,block"`
	Remain hcl.Body     `hcl:",remain"`
}

type gateBlock struct {
	ID       string    `hcl:"id,label"`
	Type     string    `hcl:"type"`
	Position []float64 `hcl:"position"`
}

type wireBlock struct {
	ID         string      `hcl:"id,label"`
	From       string      `hcl:"from"`
	To         string      `hcl:"to"`
	InitSignal bool        `hcl:"init_signal,optional"`
	Path       [][]float64 `hcl:"path,optional"`
}

// Load reads a scene file.
func Load(ctx context.Context, path string) (*Scene, error) {
	logger := ctxlog.FromContext(ctx)

	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, diags)
	}
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scene file %s: %w", path, diags)
	}

	scene := &Scene{ID: root.Scene}
	if scene.ID == "" {
		scene.ID = DefaultSceneID
	}

	for _, g := range root.Gates {
		pos, err := toPoint(g.Position)
		if err != nil {
			return nil, fmt.Errorf("gate '%s' position: %w", g.ID, err)
		}
		scene.Gates = append(scene.Gates, model.Gate{ID: g.ID, Type: g.Type, Position: pos, SceneID: scene.ID})
	}

	for _, w := range root.Wires {
		wire, err := translateWire(w, scene.ID)
		if err != nil {
			return nil, err
		}
		scene.Wires = append(scene.Wires, wire)
	}

	logger.Debug("Scene file loaded.", "path", path, "scene", scene.ID, "gates", len(scene.Gates), "wires", len(scene.Wires))
	return scene, nil
}

func translateWire(w *wireBlock, sceneID string) (model.Wire, error) {
	from, err := portid.Parse(w.From)
	if err != nil {
		return model.Wire{}, fmt.Errorf("wire '%s' from: %w", w.ID, err)
	}
	to, err := portid.Parse(w.To)
	if err != nil {
		return model.Wire{}, fmt.Errorf("wire '%s' to: %w", w.ID, err)
	}
	if from.Direction != portid.Out {
		return model.Wire{}, fmt.Errorf("wire '%s' must start at an output, got %s", w.ID, from)
	}
	if to.Direction != portid.In {
		return model.Wire{}, fmt.Errorf("wire '%s' must end at an input, got %s", w.ID, to)
	}

	var path []geom.Point
	for i, raw := range w.Path {
		p, err := toPoint(raw)
		if err != nil {
			return model.Wire{}, fmt.Errorf("wire '%s' path point %d: %w", w.ID, i, err)
		}
		path = append(path, p)
	}

	return model.Wire{
		ID:         w.ID,
		SourceGate: from.Gate,
		SourceSlot: from.Slot,
		TargetGate: to.Gate,
		TargetSlot: to.Slot,
		InitSignal: w.InitSignal,
		Path:       path,
		SceneID:    sceneID,
	}, nil
}

func toPoint(raw []float64) (geom.Point, error) {
	if len(raw) != 2 {
		return geom.Point{}, fmt.Errorf("expected an [x, y] pair, got %d values", len(raw))
	}
	return geom.Pt(raw[0], raw[1]), nil
}

// Encode renders a scene as HCL.
func Encode(scene *Scene) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("scene", cty.StringVal(scene.ID))

	for _, g := range scene.Gates {
		body.AppendNewline()
		blk := body.AppendNewBlock("gate", []string{g.ID}).Body()
		blk.SetAttributeValue("type", cty.StringVal(g.Type))
		blk.SetAttributeValue("position", pointVal(g.Position))
	}

	for _, w := range scene.Wires {
		body.AppendNewline()
		blk := body.AppendNewBlock("wire", []string{w.ID}).Body()
		blk.SetAttributeValue("from", cty.StringVal(portid.New(w.SourceGate, portid.Out, w.SourceSlot).String()))
		blk.SetAttributeValue("to", cty.StringVal(portid.New(w.TargetGate, portid.In, w.TargetSlot).String()))
		if w.InitSignal {
			blk.SetAttributeValue("init_signal", cty.True)
		}
		if len(w.Path) > 0 {
			pts := make([]cty.Value, len(w.Path))
			for i, p := range w.Path {
				pts[i] = pointVal(p)
			}
			blk.SetAttributeValue("path", cty.TupleVal(pts))
		}
	}

	return f.Bytes()
}

// Save writes a scene file.
func Save(ctx context.Context, path string, scene *Scene) error {
	if err := os.WriteFile(path, Encode(scene), 0o644); err != nil {
		return fmt.Errorf("failed to write scene file %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Scene file saved.", "path", path, "gates", len(scene.Gates), "wires", len(scene.Wires))
	return nil
}

func pointVal(p geom.Point) cty.Value {
	return cty.TupleVal([]cty.Value{cty.NumberFloatVal(p.X), cty.NumberFloatVal(p.Y)})
}
