package lp

import (
	"fmt"
	"sort"
)

// VarID addresses a column in a Program.
type VarID int

// Sense of a constraint row.
type Sense int

const (
	Eq Sense = iota
	Le
)

// Col holds the bounds, objective coefficient and optional pinned value of
// a single decision variable.
type Col struct {
	Name  string
	Lower float64
	Upper float64
	Cost  float64
	Fixed bool
	Value float64
}

// Term is a single coefficient on a column.
type Term struct {
	Var   VarID
	Coeff float64
}

// Expr is a sparse linear expression, the sum of coefficient terms plus a
// constant offset.
type Expr struct {
	coeffs map[VarID]float64
	offset float64
}

// NewExpr returns an empty expression.
func NewExpr() *Expr {
	return &Expr{coeffs: make(map[VarID]float64)}
}

// Single returns an expression holding one term.
func Single(v VarID, coeff float64) *Expr {
	return NewExpr().AddTerm(v, coeff)
}

// Const returns a constant expression.
func Const(c float64) *Expr {
	return NewExpr().AddConst(c)
}

// AddTerm accumulates coeff onto the column's coefficient.
func (e *Expr) AddTerm(v VarID, coeff float64) *Expr {
	e.coeffs[v] += coeff
	return e
}

// AddConst accumulates c onto the constant offset.
func (e *Expr) AddConst(c float64) *Expr {
	e.offset += c
	return e
}

// Scale multiplies every coefficient and the offset by k.
func (e *Expr) Scale(k float64) *Expr {
	for v := range e.coeffs {
		e.coeffs[v] *= k
	}
	e.offset *= k
	return e
}

// Sub subtracts o from e in place.
func (e *Expr) Sub(o *Expr) *Expr {
	for v, c := range o.coeffs {
		e.coeffs[v] -= c
	}
	e.offset -= o.offset
	return e
}

// IsConstant reports whether the expression carries no variable terms.
// Terms whose coefficients cancelled to zero do not count.
func (e *Expr) IsConstant() bool {
	for _, c := range e.coeffs {
		if c != 0 {
			return false
		}
	}
	return true
}

// Constant returns the constant offset.
func (e *Expr) Constant() float64 {
	return e.offset
}

// Terms returns the nonzero terms ordered by column.
func (e *Expr) Terms() []Term {
	ids := make([]VarID, 0, len(e.coeffs))
	for v, c := range e.coeffs {
		if c != 0 {
			ids = append(ids, v)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	terms := make([]Term, 0, len(ids))
	for _, v := range ids {
		terms = append(terms, Term{v, e.coeffs[v]})
	}
	return terms
}

// Row is a normalized constraint: Terms (Sense) RHS.
type Row struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Program collects the columns and rows of a single linear program.
type Program struct {
	cols []Col
	rows []Row
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{
		cols: make([]Col, 0),
		rows: make([]Row, 0),
	}
}

// AddCol declares a bounded column and returns its handle.
func (p *Program) AddCol(name string, lower, upper float64) VarID {
	p.cols = append(p.cols, Col{Name: name, Lower: lower, Upper: upper})
	return VarID(len(p.cols) - 1)
}

// SetCost sets the objective coefficient of a column.
func (p *Program) SetCost(v VarID, cost float64) {
	p.cols[v].Cost = cost
}

// SetUpper sets the upper bound of a column.
func (p *Program) SetUpper(v VarID, ub float64) {
	p.cols[v].Upper = ub
}

// SetLower sets the lower bound of a column.
func (p *Program) SetLower(v VarID, lb float64) {
	p.cols[v].Lower = lb
}

// Fix pins a column to a value. Fixed columns reach the solver as
// equalities rather than bounds.
func (p *Program) Fix(v VarID, val float64) {
	p.cols[v].Fixed = true
	p.cols[v].Value = val
	p.cols[v].Lower = val
	p.cols[v].Upper = val
}

// AddEq appends the row lhs == rhs.
func (p *Program) AddEq(name string, lhs, rhs *Expr) {
	p.addRow(name, Eq, lhs, rhs)
}

// AddLe appends the row lhs <= rhs.
func (p *Program) AddLe(name string, lhs, rhs *Expr) {
	p.addRow(name, Le, lhs, rhs)
}

// addRow normalizes lhs (sense) rhs into terms (sense) constant without
// mutating either argument.
func (p *Program) addRow(name string, sense Sense, lhs, rhs *Expr) {
	net := NewExpr()
	for v, c := range lhs.coeffs {
		net.coeffs[v] += c
	}
	net.offset += lhs.offset
	for v, c := range rhs.coeffs {
		net.coeffs[v] -= c
	}
	net.offset -= rhs.offset

	p.rows = append(p.rows, Row{
		Name:  name,
		Terms: net.Terms(),
		Sense: sense,
		RHS:   -net.offset,
	})
}

// NumCols returns the number of declared columns.
func (p *Program) NumCols() int {
	return len(p.cols)
}

// NumRows returns the number of appended rows.
func (p *Program) NumRows() int {
	return len(p.rows)
}

// Col returns a copy of the column record for v.
func (p *Program) Col(v VarID) Col {
	return p.cols[v]
}

// Rows returns the appended rows in insertion order.
func (p *Program) Rows() []Row {
	return p.rows
}

// Costs returns the objective coefficient vector indexed by column.
func (p *Program) Costs() []float64 {
	costs := make([]float64, len(p.cols))
	for i, col := range p.cols {
		costs[i] = col.Cost
	}
	return costs
}

// FindCol returns the handle of the column with the given name.
func (p *Program) FindCol(name string) (VarID, error) {
	for i, col := range p.cols {
		if col.Name == name {
			return VarID(i), nil
		}
	}
	return -1, fmt.Errorf("column %s does not exist in program.", name)
}
