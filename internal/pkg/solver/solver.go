// Package solver runs assembled linear programs and reports the outcome
// in terms the modeling layer understands.
package solver

import (
	"errors"

	"github.com/elisagaudchau/oemof/internal/pkg/lp"
)

// Status describes how a solve ended.
type Status int

const (
	Optimal Status = iota
	Infeasible
	Unbounded
	Failed
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	default:
		return "failed"
	}
}

var (
	ErrInfeasible = errors.New("program is infeasible")
	ErrUnbounded  = errors.New("program is unbounded")
)

// Result carries the terminal status of a solve, one value per program
// column, and the objective at the optimum. X and Objective are only
// meaningful when Status is Optimal.
type Result struct {
	Status    Status
	X         []float64
	Objective float64
}

// Value returns the optimal value of a single column.
func (r Result) Value(v lp.VarID) float64 {
	return r.X[v]
}

// Solver turns a program into a result. Implementations return
// ErrInfeasible or ErrUnbounded when the program has no optimum.
type Solver interface {
	Solve(p *lp.Program) (Result, error)
}
