package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	golp "gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/elisagaudchau/oemof/internal/pkg/lp"
)

const defaultTol = 1e-7

// Simplex solves programs with gonum's dense simplex method. The zero
// value is ready to use.
type Simplex struct {
	Tol float64
}

// Solve translates the program into gonum's general form. Fixed columns
// are substituted into the rows first; models with pinned profiles
// otherwise hand the simplex redundant equalities it cannot pivot on.
// The converter treats every remaining variable as free, so column
// bounds become inequality rows.
func (s Simplex) Solve(p *lp.Program) (Result, error) {
	nAll := p.NumCols()
	if nAll == 0 {
		return Result{Status: Optimal}, nil
	}

	tol := s.Tol
	if tol <= 0 {
		tol = defaultTol
	}

	costs := p.Costs()
	x := make([]float64, nAll)
	compact := make([]int, nAll)
	var free []int
	fixedCost := 0.0
	for i := 0; i < nAll; i++ {
		col := p.Col(lp.VarID(i))
		if col.Fixed {
			compact[i] = -1
			x[i] = col.Value
			fixedCost += costs[i] * col.Value
			continue
		}
		compact[i] = len(free)
		free = append(free, i)
	}
	n := len(free)

	var gData, h, aData, b []float64
	addIneq := func(row []float64, rhs float64) {
		gData = append(gData, row...)
		h = append(h, rhs)
	}
	addEq := func(row []float64, rhs float64) {
		aData = append(aData, row...)
		b = append(b, rhs)
	}

	for j, i := range free {
		col := p.Col(lp.VarID(i))
		addIneq(unitRow(n, j, -1), -col.Lower)
		if !math.IsInf(col.Upper, 1) {
			addIneq(unitRow(n, j, 1), col.Upper)
		}
	}

	for _, row := range p.Rows() {
		dense := make([]float64, n)
		rhs := row.RHS
		occupied := false
		for _, term := range row.Terms {
			j := compact[term.Var]
			if j < 0 {
				rhs -= term.Coeff * x[term.Var]
				continue
			}
			dense[j] += term.Coeff
			occupied = true
		}
		if !occupied {
			// fully pinned rows only need a consistency check
			if row.Sense == lp.Eq && math.Abs(rhs) > tol {
				return Result{Status: Infeasible}, ErrInfeasible
			}
			if row.Sense == lp.Le && rhs < -tol {
				return Result{Status: Infeasible}, ErrInfeasible
			}
			continue
		}
		if row.Sense == lp.Eq {
			addEq(dense, rhs)
			continue
		}
		addIneq(dense, rhs)
	}

	if n == 0 {
		return Result{Status: Optimal, X: x, Objective: fixedCost}, nil
	}

	c := make([]float64, n)
	for j, i := range free {
		c[j] = costs[i]
	}

	var g, a mat.Matrix
	if len(h) > 0 {
		g = mat.NewDense(len(h), n, gData)
	}
	if len(b) > 0 {
		a = mat.NewDense(len(b), n, aData)
	}

	cNew, aNew, bNew := golp.Convert(c, g, h, a, b)
	opt, optX, err := golp.Simplex(cNew, aNew, bNew, tol, nil)
	switch {
	case errors.Is(err, golp.ErrInfeasible):
		return Result{Status: Infeasible}, ErrInfeasible
	case errors.Is(err, golp.ErrUnbounded):
		return Result{Status: Unbounded}, ErrUnbounded
	case err != nil:
		return Result{Status: Failed}, fmt.Errorf("simplex failed: %w", err)
	}

	// Convert splits each free variable into a positive and a negative
	// part, laid out as [xp xn slack].
	for j, i := range free {
		x[i] = optX[j] - optX[n+j]
	}
	return Result{Status: Optimal, X: x, Objective: opt + fixedCost}, nil
}

func unitRow(n, j int, coeff float64) []float64 {
	row := make([]float64, n)
	row[j] = coeff
	return row
}
