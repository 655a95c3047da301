package constraint

import (
	"testing"

	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/flow"
	"github.com/elisagaudchau/oemof/internal/pkg/lp"
	"gotest.tools/v3/assert"
)

func TestGradientSkipsFirstTimestep(t *testing.T) {
	g := transformerGraph(t, entity.TransformerSpec{Eta: []float64{0.58}, GradPosMax: 30})
	sp := newSpace(t, g, 3)

	gen := Gradient{Direction: Positive}
	assert.NilError(t, gen.Build(sp, g.ByArchetype(entity.Transformer)))

	assert.Assert(t, !hasRow(sp.Program(), "grad_pos(pp_gas,t0)"))
	assert.Assert(t, hasRow(sp.Program(), "grad_pos(pp_gas,t1)"))
	assert.Assert(t, hasRow(sp.Program(), "grad_pos(pp_gas,t2)"))

	grad, ok := sp.Series(flow.GradPos, "pp_gas")
	assert.Assert(t, ok)
	for _, v := range grad {
		assert.Equal(t, sp.Program().Col(v).Upper, 30.0)
	}
}

func TestGradientPositiveRowShape(t *testing.T) {
	g := transformerGraph(t, entity.TransformerSpec{Eta: []float64{0.58}, GradPosMax: 30})
	sp := newSpace(t, g, 2)

	gen := Gradient{Direction: Positive}
	assert.NilError(t, gen.Build(sp, g.ByArchetype(entity.Transformer)))

	w0, _ := sp.Flow("pp_gas", "bel", 0)
	w1, _ := sp.Flow("pp_gas", "bel", 1)
	grad, _ := sp.Series(flow.GradPos, "pp_gas")

	row := findRow(t, sp.Program(), "grad_pos(pp_gas,t1)")
	assert.Equal(t, row.Sense, lp.Le)
	assert.Equal(t, row.RHS, 0.0)
	assert.Equal(t, coeff(t, row, w1), 1.0)
	assert.Equal(t, coeff(t, row, w0), -1.0)
	assert.Equal(t, coeff(t, row, grad[1]), -1.0)
}

func TestGradientNegativeMirrorsStep(t *testing.T) {
	g := transformerGraph(t, entity.TransformerSpec{Eta: []float64{0.58}, GradNegMax: 20})
	sp := newSpace(t, g, 2)

	gen := Gradient{Direction: Negative}
	assert.NilError(t, gen.Build(sp, g.ByArchetype(entity.Transformer)))

	w0, _ := sp.Flow("pp_gas", "bel", 0)
	w1, _ := sp.Flow("pp_gas", "bel", 1)

	row := findRow(t, sp.Program(), "grad_neg(pp_gas,t1)")
	assert.Equal(t, coeff(t, row, w0), 1.0)
	assert.Equal(t, coeff(t, row, w1), -1.0)
}

func TestGradientDeclaresOnlySelectedDirection(t *testing.T) {
	g := transformerGraph(t, entity.TransformerSpec{Eta: []float64{0.58}, GradPosMax: 30, GradNegMax: 20})
	sp := newSpace(t, g, 2)

	gen := Gradient{Direction: Positive}
	assert.NilError(t, gen.Build(sp, g.ByArchetype(entity.Transformer)))

	_, ok := sp.Series(flow.GradPos, "pp_gas")
	assert.Assert(t, ok)
	_, ok = sp.Series(flow.GradNeg, "pp_gas")
	assert.Assert(t, !ok)
}

func TestGradientBothDirections(t *testing.T) {
	g := transformerGraph(t, entity.TransformerSpec{Eta: []float64{0.58}, GradPosMax: 30, GradNegMax: 20})
	sp := newSpace(t, g, 2)

	gen := Gradient{Direction: Both}
	assert.NilError(t, gen.Build(sp, g.ByArchetype(entity.Transformer)))

	assert.Assert(t, hasRow(sp.Program(), "grad_pos(pp_gas,t1)"))
	assert.Assert(t, hasRow(sp.Program(), "grad_neg(pp_gas,t1)"))
}
