package solver

import (
	"errors"
	"math"
	"testing"

	"github.com/elisagaudchau/oemof/internal/pkg/lp"
	"gotest.tools/v3/assert"
)

func near(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSimplexPicksCheapColumn(t *testing.T) {
	p := lp.NewProgram()
	x := p.AddCol("x", 0, math.Inf(1))
	y := p.AddCol("y", 0, math.Inf(1))
	p.SetCost(x, 1)
	p.SetCost(y, 2)
	p.AddEq("supply", lp.Single(x, 1).AddTerm(y, 1), lp.Const(10))

	res, err := Simplex{}.Solve(p)
	assert.NilError(t, err)
	assert.Equal(t, res.Status, Optimal)
	near(t, res.Value(x), 10)
	near(t, res.Value(y), 0)
	near(t, res.Objective, 10)
}

func TestSimplexHonorsUpperBound(t *testing.T) {
	p := lp.NewProgram()
	x := p.AddCol("x", 0, 4)
	y := p.AddCol("y", 0, math.Inf(1))
	p.SetCost(x, 1)
	p.SetCost(y, 2)
	p.AddEq("supply", lp.Single(x, 1).AddTerm(y, 1), lp.Const(10))

	res, err := Simplex{}.Solve(p)
	assert.NilError(t, err)
	near(t, res.Value(x), 4)
	near(t, res.Value(y), 6)
	near(t, res.Objective, 16)
}

func TestSimplexHonorsFixedColumn(t *testing.T) {
	p := lp.NewProgram()
	x := p.AddCol("x", 0, math.Inf(1))
	y := p.AddCol("y", 0, math.Inf(1))
	p.Fix(x, 3)
	p.SetCost(y, 1)
	p.AddEq("supply", lp.Single(x, 1).AddTerm(y, 1), lp.Const(10))

	res, err := Simplex{}.Solve(p)
	assert.NilError(t, err)
	near(t, res.Value(x), 3)
	near(t, res.Value(y), 7)
	near(t, res.Objective, 7)
}

func TestSimplexInfeasible(t *testing.T) {
	p := lp.NewProgram()
	x := p.AddCol("x", 0, 2)
	p.AddEq("demand", lp.Single(x, 1), lp.Const(5))

	res, err := Simplex{}.Solve(p)
	assert.Assert(t, errors.Is(err, ErrInfeasible))
	assert.Equal(t, res.Status, Infeasible)
}

func TestSimplexUnbounded(t *testing.T) {
	p := lp.NewProgram()
	x := p.AddCol("x", 0, math.Inf(1))
	p.SetCost(x, -1)

	res, err := Simplex{}.Solve(p)
	assert.Assert(t, errors.Is(err, ErrUnbounded))
	assert.Equal(t, res.Status, Unbounded)
}

func TestSimplexEmptyProgram(t *testing.T) {
	res, err := Simplex{}.Solve(lp.NewProgram())
	assert.NilError(t, err)
	assert.Equal(t, res.Status, Optimal)
	assert.Equal(t, res.Objective, 0.0)
}

func TestSimplexInequalityRow(t *testing.T) {
	p := lp.NewProgram()
	x := p.AddCol("x", 0, math.Inf(1))
	p.SetCost(x, -1)
	p.AddLe("cap", lp.Single(x, 1), lp.Const(7))

	res, err := Simplex{}.Solve(p)
	assert.NilError(t, err)
	near(t, res.Value(x), 7)
	near(t, res.Objective, -7)
}

func TestSimplexFullyPinnedProgram(t *testing.T) {
	p := lp.NewProgram()
	x := p.AddCol("x", 0, math.Inf(1))
	y := p.AddCol("y", 0, math.Inf(1))
	p.Fix(x, 4)
	p.Fix(y, 6)
	p.SetCost(x, 2)
	p.AddEq("balance", lp.Single(x, 1).AddTerm(y, 1), lp.Const(10))

	res, err := Simplex{}.Solve(p)
	assert.NilError(t, err)
	assert.Equal(t, res.Status, Optimal)
	near(t, res.Value(x), 4)
	near(t, res.Objective, 8)
}

func TestSimplexPinnedContradiction(t *testing.T) {
	p := lp.NewProgram()
	x := p.AddCol("x", 0, math.Inf(1))
	y := p.AddCol("y", 0, math.Inf(1))
	p.Fix(x, 4)
	p.Fix(y, 6)
	p.AddEq("balance", lp.Single(x, 1).AddTerm(y, 1), lp.Const(15))

	res, err := Simplex{}.Solve(p)
	assert.Assert(t, errors.Is(err, ErrInfeasible))
	assert.Equal(t, res.Status, Infeasible)
}
