package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/gategrid/internal/config"
	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/vk/gategrid/internal/geom"
)

func translateEditor(e *editorBlock) *config.EditorSettings {
	return &config.EditorSettings{
		MinZoom:         e.MinZoom,
		MaxZoom:         e.MaxZoom,
		WheelStep:       e.WheelStep,
		ZoomStep:        e.ZoomStep,
		Subdivisions:    e.Subdivisions,
		GridThreshold:   e.GridThreshold,
		DeleteTolerance: e.DeleteTolerance,
		Width:           e.Width,
		Height:          e.Height,
	}
}

// translateGate converts a gate block into the agnostic model.
func translateGate(ctx context.Context, g *gateBlock) (*config.GateDefinition, error) {
	logger := ctxlog.FromContext(ctx).With("gate_type", g.Type)
	logger.Debug("Translating HCL gate to internal config model.")

	geometry, err := toPoints(g.Geometry)
	if err != nil {
		return nil, fmt.Errorf("gate '%s' geometry: %w", g.Type, err)
	}
	inputs, err := toPoints(g.Inputs)
	if err != nil {
		return nil, fmt.Errorf("gate '%s' inputs: %w", g.Type, err)
	}
	outputs, err := toPoints(g.Outputs)
	if err != nil {
		return nil, fmt.Errorf("gate '%s' outputs: %w", g.Type, err)
	}

	var logic hcl.Expression
	if isExprDefined(g.Logic) {
		logic = g.Logic
	}

	return &config.GateDefinition{
		Type:        g.Type,
		Description: g.Description,
		Geometry:    geometry,
		Inputs:      inputs,
		Outputs:     outputs,
		Logic:       logic,
	}, nil
}

// toPoints converts `[[x, y], ...]` into points. Every entry must be a pair.
func toPoints(raw [][]float64) ([]geom.Point, error) {
	pts := make([]geom.Point, 0, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 {
			return nil, fmt.Errorf("point %d must be an [x, y] pair, got %d values", i, len(pair))
		}
		pts = append(pts, geom.Pt(pair[0], pair[1]))
	}
	return pts, nil
}

// isExprDefined reports whether an expression was actually written in the
// source. Omitted attributes may still decode to a zero-width expression.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}
