package constraint

import (
	"testing"

	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/lp"
	"gotest.tools/v3/assert"
)

func TestOutputLimitSumsWholeHorizon(t *testing.T) {
	g := transformerGraph(t, entity.TransformerSpec{Eta: []float64{0.58}})
	rgas, _ := g.Node("rgas")
	rgas.Spec = entity.CommoditySpec{SumOutLimit: 100}
	sp := newSpace(t, g, 2)

	gen := OutputLimit{}
	assert.NilError(t, gen.Build(sp, g.ByArchetype(entity.Commodity)))

	row := findRow(t, sp.Program(), "sum_output_limit(rgas)")
	assert.Equal(t, row.Sense, lp.Le)
	assert.Equal(t, row.RHS, 100.0)

	w0, _ := sp.Flow("rgas", "bgas", 0)
	w1, _ := sp.Flow("rgas", "bgas", 1)
	assert.Equal(t, coeff(t, row, w0), 1.0)
	assert.Equal(t, coeff(t, row, w1), 1.0)
}

func TestOutputLimitSkipsUnlimited(t *testing.T) {
	g := transformerGraph(t, entity.TransformerSpec{Eta: []float64{0.58}})
	sp := newSpace(t, g, 2)

	gen := OutputLimit{}
	assert.NilError(t, gen.Build(sp, g.ByArchetype(entity.Commodity)))
	assert.Equal(t, sp.Program().NumRows(), 0)
}

func TestOutputLimitSkipsPinnedSum(t *testing.T) {
	g := transformerGraph(t, entity.TransformerSpec{Eta: []float64{0.58}})
	rgas, _ := g.Node("rgas")
	rgas.Spec = entity.CommoditySpec{SumOutLimit: 100}
	sp := newSpace(t, g, 2)

	assert.NilError(t, sp.FixFlow("rgas", "bgas", 0, 5))
	assert.NilError(t, sp.FixFlow("rgas", "bgas", 1, 5))

	gen := OutputLimit{}
	assert.NilError(t, gen.Build(sp, g.ByArchetype(entity.Commodity)))
	assert.Assert(t, !hasRow(sp.Program(), "sum_output_limit(rgas)"))
}
