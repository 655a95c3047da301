package flow

import (
	"fmt"

	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/lp"
)

// AuxKind distinguishes the auxiliary variable families.
type AuxKind int

const (
	StorageCap AuxKind = iota
	Curtail
	GradPos
	GradNeg
	Shortage
	Excess
	AddOut
	AddCap
)

func (k AuxKind) String() string {
	switch k {
	case StorageCap:
		return "cap"
	case Curtail:
		return "curtail"
	case GradPos:
		return "grad_pos"
	case GradNeg:
		return "grad_neg"
	case Shortage:
		return "shortage"
	case Excess:
		return "excess"
	case AddOut:
		return "add_out"
	case AddCap:
		return "add_cap"
	}
	return "unknown"
}

type auxKey struct {
	kind AuxKind
	uid  string
}

// Space owns the program of one optimization run and indexes its columns
// by domain keys: one flow variable per derived edge per timestep, plus
// the auxiliary series and scalars declared by constraint generators.
// Generators run sequentially against a single Space; it is not safe for
// concurrent use.
type Space struct {
	horizon int
	program *lp.Program
	edges   []entity.Edge
	flows   map[entity.Edge][]lp.VarID
	series  map[auxKey][]lp.VarID
	scalars map[auxKey]lp.VarID
}

// NewSpace declares one flow variable per derived edge per timestep,
// bounded below by zero and unbounded above.
func NewSpace(g *entity.Graph, horizon int) (*Space, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("horizon must be at least 1, got %d.", horizon)
	}
	sp := &Space{
		horizon: horizon,
		program: lp.NewProgram(),
		edges:   g.Edges(),
		flows:   make(map[entity.Edge][]lp.VarID),
		series:  make(map[auxKey][]lp.VarID),
		scalars: make(map[auxKey]lp.VarID),
	}
	for _, e := range sp.edges {
		vars := make([]lp.VarID, horizon)
		for t := 0; t < horizon; t++ {
			name := fmt.Sprintf("w(%s,%s,t%d)", e.From, e.To, t)
			vars[t] = sp.program.AddCol(name, 0, entity.Unlimited)
		}
		sp.flows[e] = vars
	}
	return sp, nil
}

func (sp *Space) Horizon() int {
	return sp.horizon
}

func (sp *Space) Program() *lp.Program {
	return sp.program
}

// Edges returns the edges with declared flow variables ordered by
// (From, To).
func (sp *Space) Edges() []entity.Edge {
	return sp.edges
}

// Flow returns the flow variable on (from, to) at timestep t.
func (sp *Space) Flow(from, to string, t int) (lp.VarID, bool) {
	vars, ok := sp.flows[entity.Edge{From: from, To: to}]
	if !ok || t < 0 || t >= sp.horizon {
		return -1, false
	}
	return vars[t], true
}

// FixFlow pins the flow on (from, to) at t to val.
func (sp *Space) FixFlow(from, to string, t int, val float64) error {
	v, ok := sp.Flow(from, to, t)
	if !ok {
		return fmt.Errorf("no flow variable on edge %s->%s.", from, to)
	}
	sp.program.Fix(v, val)
	return nil
}

// SetFlowUpper bounds the flow on (from, to) at t from above.
func (sp *Space) SetFlowUpper(from, to string, t int, ub float64) error {
	v, ok := sp.Flow(from, to, t)
	if !ok {
		return fmt.Errorf("no flow variable on edge %s->%s.", from, to)
	}
	sp.program.SetUpper(v, ub)
	return nil
}

// SetFlowCost prices the flow on (from, to) at t in the objective.
func (sp *Space) SetFlowCost(from, to string, t int, cost float64) error {
	v, ok := sp.Flow(from, to, t)
	if !ok {
		return fmt.Errorf("no flow variable on edge %s->%s.", from, to)
	}
	sp.program.SetCost(v, cost)
	return nil
}

// DeclareSeries declares one auxiliary variable per timestep for uid.
// Each (kind, uid) series may be declared once, by its owning generator.
func (sp *Space) DeclareSeries(kind AuxKind, uid string) ([]lp.VarID, error) {
	key := auxKey{kind, uid}
	if _, exists := sp.series[key]; exists {
		return nil, fmt.Errorf("%s series for %s already declared.", kind, uid)
	}
	vars := make([]lp.VarID, sp.horizon)
	for t := 0; t < sp.horizon; t++ {
		name := fmt.Sprintf("%s(%s,t%d)", kind, uid, t)
		vars[t] = sp.program.AddCol(name, 0, entity.Unlimited)
	}
	sp.series[key] = vars
	return vars, nil
}

// Series returns the auxiliary series declared for (kind, uid).
func (sp *Space) Series(kind AuxKind, uid string) ([]lp.VarID, bool) {
	vars, ok := sp.series[auxKey{kind, uid}]
	return vars, ok
}

// DeclareScalar declares a single per-entity auxiliary variable.
func (sp *Space) DeclareScalar(kind AuxKind, uid string) (lp.VarID, error) {
	key := auxKey{kind, uid}
	if _, exists := sp.scalars[key]; exists {
		return -1, fmt.Errorf("%s scalar for %s already declared.", kind, uid)
	}
	name := fmt.Sprintf("%s(%s)", kind, uid)
	v := sp.program.AddCol(name, 0, entity.Unlimited)
	sp.scalars[key] = v
	return v, nil
}

// Scalar returns the scalar declared for (kind, uid).
func (sp *Space) Scalar(kind AuxKind, uid string) (lp.VarID, bool) {
	v, ok := sp.scalars[auxKey{kind, uid}]
	return v, ok
}
