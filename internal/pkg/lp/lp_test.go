package lp

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestAddCol(t *testing.T) {
	p := NewProgram()
	x := p.AddCol("x", 0, 10)
	y := p.AddCol("y", 0, 20)

	assert.Equal(t, p.NumCols(), 2)
	assert.Equal(t, p.Col(x).Name, "x")
	assert.Equal(t, p.Col(y).Upper, 20.0)
	assert.Equal(t, p.Col(x).Lower, 0.0)
}

func TestFixPinsBounds(t *testing.T) {
	p := NewProgram()
	x := p.AddCol("x", 0, 10)
	p.Fix(x, 4.5)

	col := p.Col(x)
	assert.Assert(t, col.Fixed)
	assert.Equal(t, col.Value, 4.5)
	assert.Equal(t, col.Lower, 4.5)
	assert.Equal(t, col.Upper, 4.5)
}

func TestExprAccumulatesTerms(t *testing.T) {
	e := NewExpr()
	e.AddTerm(VarID(0), 2.0)
	e.AddTerm(VarID(0), 3.0)
	e.AddTerm(VarID(2), -1.0)
	e.AddConst(7)

	terms := e.Terms()
	assert.Equal(t, len(terms), 2)
	assert.Equal(t, terms[0].Var, VarID(0))
	assert.Equal(t, terms[0].Coeff, 5.0)
	assert.Equal(t, terms[1].Var, VarID(2))
	assert.Equal(t, e.Constant(), 7.0)
}

func TestExprIsConstant(t *testing.T) {
	e := Const(3)
	assert.Assert(t, e.IsConstant())

	e.AddTerm(VarID(1), 2)
	assert.Assert(t, !e.IsConstant())

	// cancelled coefficients do not count as variable terms
	e.AddTerm(VarID(1), -2)
	assert.Assert(t, e.IsConstant())
}

func TestExprScaleAndSub(t *testing.T) {
	e := Single(VarID(0), 2).AddConst(1)
	e.Scale(3)
	assert.Equal(t, e.Constant(), 3.0)
	assert.Equal(t, e.Terms()[0].Coeff, 6.0)

	o := Single(VarID(0), 6)
	e.Sub(o)
	assert.Assert(t, e.IsConstant())
	assert.Equal(t, e.Constant(), 3.0)
}

func TestRowNormalization(t *testing.T) {
	p := NewProgram()
	x := p.AddCol("x", 0, 10)
	y := p.AddCol("y", 0, 10)

	// 2x + 1 == y + 4  normalizes to  2x - y == 3
	lhs := Single(x, 2).AddConst(1)
	rhs := Single(y, 1).AddConst(4)
	p.AddEq("r0", lhs, rhs)

	rows := p.Rows()
	assert.Equal(t, len(rows), 1)
	assert.Equal(t, rows[0].Sense, Eq)
	assert.Equal(t, rows[0].RHS, 3.0)
	assert.Equal(t, len(rows[0].Terms), 2)
	assert.Equal(t, rows[0].Terms[0].Coeff, 2.0)
	assert.Equal(t, rows[0].Terms[1].Coeff, -1.0)
}

func TestRowNormalizationDoesNotMutateArgs(t *testing.T) {
	p := NewProgram()
	x := p.AddCol("x", 0, 10)

	lhs := Single(x, 1)
	rhs := Const(5)
	p.AddLe("r0", lhs, rhs)

	assert.Equal(t, lhs.Constant(), 0.0)
	assert.Equal(t, rhs.Constant(), 5.0)
	assert.Equal(t, len(lhs.Terms()), 1)
}

func TestCosts(t *testing.T) {
	p := NewProgram()
	x := p.AddCol("x", 0, 1)
	_ = p.AddCol("y", 0, 1)
	p.SetCost(x, 50)

	costs := p.Costs()
	assert.DeepEqual(t, costs, []float64{50, 0})
}

func TestFindCol(t *testing.T) {
	p := NewProgram()
	_ = p.AddCol("w(a,b,t0)", 0, 1)
	v, err := p.FindCol("w(a,b,t0)")
	assert.NilError(t, err)
	assert.Equal(t, v, VarID(0))

	_, err = p.FindCol("missing")
	assert.Error(t, err, "column missing does not exist in program.")
}
