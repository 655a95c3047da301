package constraint

import (
	"fmt"

	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/flow"
	"github.com/elisagaudchau/oemof/internal/pkg/lp"
)

// FixedSource pins every source output to its availability profile,
// Val[t] * RatedKW. In investment runs the output instead tracks
// (RatedKW + ADDOUT) * Val[t] by equality, with the capacity addition
// ADDOUT declared here and bounded by AddOutLimit.
type FixedSource struct {
	Investment bool
}

func (FixedSource) Name() string { return "fixed_source" }

func (g FixedSource) Build(sp *flow.Space, nodes []*entity.Node) error {
	if err := guard(g.Name(), nodes, entity.FixedSource); err != nil {
		return err
	}
	for _, n := range nodes {
		spec := n.Spec.(entity.FixedSourceSpec)
		out, err := outputOf(n, 0)
		if err != nil {
			return err
		}

		if !g.Investment {
			for t := 0; t < sp.Horizon(); t++ {
				val, err := valAt(n.UID, spec.Val, t)
				if err != nil {
					return err
				}
				if err := sp.FixFlow(n.UID, out, t, val*spec.RatedKW); err != nil {
					return err
				}
			}
			continue
		}

		addOut, err := sp.DeclareScalar(flow.AddOut, n.UID)
		if err != nil {
			return err
		}
		sp.Program().SetUpper(addOut, spec.AddOutLimit)

		for t := 0; t < sp.Horizon(); t++ {
			val, err := valAt(n.UID, spec.Val, t)
			if err != nil {
				return err
			}
			w, err := flowVar(sp, n.UID, out, t)
			if err != nil {
				return err
			}
			rhs := lp.Single(addOut, val).AddConst(val * spec.RatedKW)
			name := fmt.Sprintf("invest_source(%s,t%d)", n.UID, t)
			sp.Program().AddEq(name, lp.Single(w, 1), rhs)
		}
	}
	return nil
}

// DispatchSource bounds every source output by its availability and
// exposes the unused remainder as a curtailment series:
// CURTAIL(t) == Val[t]*RatedKW - W(t), with CURTAIL priced at
// CurtailCost.
type DispatchSource struct{}

func (DispatchSource) Name() string { return "dispatch_source" }

func (g DispatchSource) Build(sp *flow.Space, nodes []*entity.Node) error {
	if err := guard(g.Name(), nodes, entity.DispatchSource); err != nil {
		return err
	}
	for _, n := range nodes {
		spec := n.Spec.(entity.DispatchSourceSpec)
		out, err := outputOf(n, 0)
		if err != nil {
			return err
		}

		curtail, err := sp.DeclareSeries(flow.Curtail, n.UID)
		if err != nil {
			return err
		}
		for _, v := range curtail {
			sp.Program().SetCost(v, spec.CurtailCost)
		}

		for t := 0; t < sp.Horizon(); t++ {
			val, err := valAt(n.UID, spec.Val, t)
			if err != nil {
				return err
			}
			avail := val * spec.RatedKW
			if err := sp.SetFlowUpper(n.UID, out, t, avail); err != nil {
				return err
			}
			w, err := flowVar(sp, n.UID, out, t)
			if err != nil {
				return err
			}
			rhs := lp.Const(avail).AddTerm(w, -1)
			name := fmt.Sprintf("curtailment(%s,t%d)", n.UID, t)
			sp.Program().AddEq(name, lp.Single(curtail[t], 1), rhs)
		}
	}
	return nil
}
