package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/elisagaudchau/oemof/internal/pkg/flow"
	"github.com/elisagaudchau/oemof/internal/pkg/solver"
)

// Results reads optimal column values back in graph terms.
type Results struct {
	space *flow.Space
	res   solver.Result
}

func (r Results) Status() solver.Status {
	return r.res.Status
}

func (r Results) Objective() float64 {
	return r.res.Objective
}

// Flow returns the per-timestep flow on an edge, or nil when the edge
// does not exist.
func (r Results) Flow(from, to string) []float64 {
	out := make([]float64, r.space.Horizon())
	for t := range out {
		v, ok := r.space.Flow(from, to, t)
		if !ok {
			return nil
		}
		out[t] = r.res.Value(v)
	}
	return out
}

// Series returns a declared auxiliary series, or nil when the entity
// does not carry one.
func (r Results) Series(kind flow.AuxKind, uid string) []float64 {
	vars, ok := r.space.Series(kind, uid)
	if !ok {
		return nil
	}
	out := make([]float64, len(vars))
	for i, v := range vars {
		out[i] = r.res.Value(v)
	}
	return out
}

// Scalar returns a declared scalar, ok reports whether it exists.
func (r Results) Scalar(kind flow.AuxKind, uid string) (float64, bool) {
	v, ok := r.space.Scalar(kind, uid)
	if !ok {
		return 0, false
	}
	return r.res.Value(v), true
}

func (r Results) StorageCap(uid string) []float64 {
	return r.Series(flow.StorageCap, uid)
}

func (r Results) Curtailment(uid string) []float64 {
	return r.Series(flow.Curtail, uid)
}

func (r Results) Shortage(uid string) []float64 {
	return r.Series(flow.Shortage, uid)
}

func (r Results) Excess(uid string) []float64 {
	return r.Series(flow.Excess, uid)
}

func (r Results) AddedOut(uid string) (float64, bool) {
	return r.Scalar(flow.AddOut, uid)
}

func (r Results) AddedCap(uid string) (float64, bool) {
	return r.Scalar(flow.AddCap, uid)
}

// Report is the wire form of a finished run, published to handlers and
// stored by the persistence backends.
type Report struct {
	PID       uuid.UUID            `json:"PID"`
	Name      string               `json:"Name"`
	Horizon   int                  `json:"Horizon"`
	Status    string               `json:"Status"`
	Objective float64              `json:"Objective"`
	Flows     map[string][]float64 `json:"Flows"`
	Series    map[string][]float64 `json:"Series"`
	Scalars   map[string]float64   `json:"Scalars"`
}

var reportSeriesKinds = []flow.AuxKind{
	flow.StorageCap,
	flow.Curtail,
	flow.GradPos,
	flow.GradNeg,
	flow.Shortage,
	flow.Excess,
}

var reportScalarKinds = []flow.AuxKind{flow.AddOut, flow.AddCap}

func (m *Model) report(res solver.Result) Report {
	rep := Report{
		PID:       m.pid,
		Name:      m.config.Name,
		Horizon:   m.config.Horizon,
		Status:    res.Status.String(),
		Objective: res.Objective,
		Flows:     make(map[string][]float64),
		Series:    make(map[string][]float64),
		Scalars:   make(map[string]float64),
	}
	if res.Status != solver.Optimal {
		return rep
	}
	r := Results{space: m.space, res: res}
	for _, e := range m.space.Edges() {
		rep.Flows[fmt.Sprintf("%s->%s", e.From, e.To)] = r.Flow(e.From, e.To)
	}
	for _, n := range m.graph.Nodes() {
		for _, kind := range reportSeriesKinds {
			if vals := r.Series(kind, n.UID); vals != nil {
				rep.Series[fmt.Sprintf("%s(%s)", kind, n.UID)] = vals
			}
		}
		for _, kind := range reportScalarKinds {
			if val, ok := r.Scalar(kind, n.UID); ok {
				rep.Scalars[fmt.Sprintf("%s(%s)", kind, n.UID)] = val
			}
		}
	}
	return rep
}
