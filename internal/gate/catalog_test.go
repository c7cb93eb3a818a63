package gate

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gategrid/internal/config"
	"github.com/vk/gategrid/internal/geom"
)

func mustExpr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return expr
}

func TestLookupBuiltins(t *testing.T) {
	c := NewCatalog()

	testCases := []struct {
		tag     string
		kind    Kind
		inputs  int
		outputs int
	}{
		{tag: TagSource, kind: Source, inputs: 0, outputs: 1},
		{tag: TagSink, kind: Sink, inputs: 1, outputs: 0},
		{tag: TagNot, kind: Not, inputs: 1, outputs: 1},
		{tag: TagOr, kind: Or, inputs: 2, outputs: 1},
		{tag: TagAnd, kind: And, inputs: 2, outputs: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.tag, func(t *testing.T) {
			spec := c.Lookup(tc.tag)
			assert.Equal(t, tc.kind, spec.Kind)
			assert.Len(t, spec.InputSlots(), tc.inputs)
			assert.Len(t, spec.OutputSlots(), tc.outputs)
			assert.GreaterOrEqual(t, len(spec.Geometry()), 3)
		})
	}
}

func TestLookupUnknownTag(t *testing.T) {
	spec := NewCatalog().Lookup("FLUX_CAPACITOR")
	assert.Equal(t, Undefined, spec.Kind)
	assert.Empty(t, spec.InputSlots())
	assert.Empty(t, spec.OutputSlots())
	assert.False(t, spec.Evaluate([]bool{true}))
}

func TestEvaluateBuiltins(t *testing.T) {
	c := NewCatalog()

	testCases := []struct {
		name string
		tag  string
		in   []bool
		want bool
	}{
		{name: "not low", tag: TagNot, in: []bool{false}, want: true},
		{name: "not high", tag: TagNot, in: []bool{true}, want: false},
		{name: "and both high", tag: TagAnd, in: []bool{true, true}, want: true},
		{name: "and one low", tag: TagAnd, in: []bool{true, false}, want: false},
		{name: "and missing input", tag: TagAnd, in: []bool{true}, want: false},
		{name: "or one high", tag: TagOr, in: []bool{false, true}, want: true},
		{name: "or both low", tag: TagOr, in: []bool{false, false}, want: false},
		{name: "sink mirrors high", tag: TagSink, in: []bool{true}, want: true},
		{name: "sink mirrors low", tag: TagSink, in: []bool{false}, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Lookup(tc.tag).Evaluate(tc.in))
		})
	}
}

func TestSourceIsHeld(t *testing.T) {
	c := NewCatalog()
	assert.True(t, c.Lookup(TagSource).Held())
	assert.False(t, c.Lookup(TagNot).Held())
}

func xorDefinition(t *testing.T) *config.GateDefinition {
	return &config.GateDefinition{
		Type:     "XOR",
		Geometry: []geom.Point{geom.Pt(0, 2), geom.Pt(3, 0), geom.Pt(0, -2)},
		Inputs:   []geom.Point{geom.Pt(0, 1), geom.Pt(0, -1)},
		Outputs:  []geom.Point{geom.Pt(3, 0)},
		Logic:    mustExpr(t, "in[0] != in[1]"),
	}
}

func TestCustomGate(t *testing.T) {
	c := NewCatalog()
	model := config.NewModel()
	model.Gates["XOR"] = xorDefinition(t)

	c.PopulateFromModel(model)
	require.NoError(t, c.Validate(context.Background()))

	spec := c.Lookup("XOR")
	assert.Equal(t, Custom, spec.Kind)
	assert.Len(t, spec.InputSlots(), 2)
	assert.True(t, spec.Evaluate([]bool{true, false}))
	assert.False(t, spec.Evaluate([]bool{true, true}))
	assert.False(t, spec.Evaluate([]bool{false, false}))
	assert.Contains(t, c.Tags(), "XOR")
}

func TestCustomGateNonBoolLogicIsLow(t *testing.T) {
	c := NewCatalog()
	def := xorDefinition(t)
	def.Logic = mustExpr(t, `"not a bool"`)
	c.PopulateFromModel(&config.Model{Gates: map[string]*config.GateDefinition{"XOR": def}})
	require.NoError(t, c.Validate(context.Background()))

	assert.False(t, c.Lookup("XOR").Evaluate([]bool{true, false}))
}

func TestValidateRejectsBadDefinitions(t *testing.T) {
	c := NewCatalog()

	override := xorDefinition(t)
	override.Type = TagAnd

	flat := xorDefinition(t)
	flat.Type = "FLAT"
	flat.Geometry = flat.Geometry[:2]

	noLogic := xorDefinition(t)
	noLogic.Type = "NOLOGIC"
	noLogic.Logic = nil

	c.PopulateFromModel(&config.Model{Gates: map[string]*config.GateDefinition{
		TagAnd:    override,
		"FLAT":    flat,
		"NOLOGIC": noLogic,
	}})

	err := c.Validate(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "cannot override builtin gate")
	assert.ErrorContains(t, err, "at least 3 points")
	assert.ErrorContains(t, err, "logic expression is required")

	assert.Equal(t, And, c.Lookup(TagAnd).Kind, "builtin must survive")
	assert.Equal(t, Undefined, c.Lookup("FLAT").Kind)
}
