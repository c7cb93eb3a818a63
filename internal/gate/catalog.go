package gate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/gategrid/internal/config"
	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Catalog maps gate-type tags to their Spec. The builtin gates are always
// present; custom gates are added from configuration.
type Catalog struct {
	specs       map[string]*Spec
	definitions map[string]*config.GateDefinition
}

// NewCatalog creates a catalog holding only the builtin gates.
func NewCatalog() *Catalog {
	return &Catalog{
		specs:       builtinSpecs(),
		definitions: make(map[string]*config.GateDefinition),
	}
}

// Lookup resolves a tag. Unknown tags resolve to the UNDEFINED spec with zero
// slots; Lookup never fails.
func (c *Catalog) Lookup(tag string) *Spec {
	if s, ok := c.specs[tag]; ok {
		return s
	}
	return undefinedSpec
}

// Tags returns every known tag in sorted order.
func (c *Catalog) Tags() []string {
	tags := make([]string, 0, len(c.specs))
	for tag := range c.specs {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// PopulateFromModel copies the custom gate definitions of the config model
// into the catalog. Definitions are only turned into specs by Validate.
func (c *Catalog) PopulateFromModel(model *config.Model) {
	for tag, def := range model.Gates {
		c.definitions[tag] = def
	}
}

// Validate checks every custom definition and registers the valid ones. All
// problems are collected and returned together.
func (c *Catalog) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []error

	tags := make([]string, 0, len(c.definitions))
	for tag := range c.definitions {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		def := c.definitions[tag]
		if existing, ok := c.specs[tag]; ok && existing.Kind != Custom {
			errs = append(errs, fmt.Errorf("gate '%s': cannot override builtin gate", tag))
			continue
		}
		if len(def.Geometry) < 3 {
			errs = append(errs, fmt.Errorf("gate '%s': geometry needs at least 3 points, got %d", tag, len(def.Geometry)))
			continue
		}
		if def.Logic == nil {
			errs = append(errs, fmt.Errorf("gate '%s': logic expression is required", tag))
			continue
		}
		c.specs[tag] = newCustomSpec(logger.With("gate_type", tag), def)
		logger.Debug("Registered custom gate.", "gate_type", tag, "inputs", len(def.Inputs), "outputs", len(def.Outputs))
	}

	return errors.Join(errs...)
}

// newCustomSpec builds a Spec whose rule evaluates the definition's HCL
// expression.
func newCustomSpec(logger *slog.Logger, def *config.GateDefinition) *Spec {
	var once sync.Once
	expr := def.Logic
	return &Spec{
		Tag:         def.Type,
		Kind:        Custom,
		Description: def.Description,
		geometry:    def.Geometry,
		inputs:      def.Inputs,
		outputs:     def.Outputs,
		logic: func(in []bool) bool {
			out, err := evalLogic(expr, len(def.Inputs), in)
			if err != nil {
				once.Do(func() {
					logger.Warn("Custom gate logic failed, evaluating as low.", "error", err)
				})
				return false
			}
			return out
		},
	}
}

// evalLogic evaluates expr with `in` bound to a tuple of exactly n signals.
func evalLogic(expr hcl.Expression, n int, in []bool) (bool, error) {
	elems := make([]cty.Value, n)
	for i := range elems {
		elems[i] = cty.BoolVal(signal(in, i))
	}
	inVal := cty.EmptyTupleVal
	if n > 0 {
		inVal = cty.TupleVal(elems)
	}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"in": inVal},
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return false, diags
	}
	val, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("logic must yield a bool: %w", err)
	}
	if val.IsNull() || !val.IsKnown() {
		return false, fmt.Errorf("logic yielded an unknown or null value")
	}
	return val.True(), nil
}
