package constraint

import (
	"fmt"

	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/flow"
	"github.com/elisagaudchau/oemof/internal/pkg/lp"
)

// StorageBalance emits the charge state recursion of every storage:
//
//	CAP(0) == CapInitial + W(in,e,0)*EtaIn - W(e,out,0)/EtaOut
//	CAP(t) == CAP(t-1)*(1-CapLoss) + W(in,e,t)*EtaIn - W(e,out,t)/EtaOut
//
// The CAP series is declared here. The final state is pinned to
// CapInitial, so the horizon forms a closed cycle anchored at the same
// level the t=0 transition starts from. Non-investment capacities bound
// the series at CapMax; investment runs declare ADDCAP, bound it by
// AddCapLimit and emit CAP(t) <= CapMax + ADDCAP instead.
type StorageBalance struct {
	Investment bool
}

func (StorageBalance) Name() string { return "storage_balance" }

func (g StorageBalance) Build(sp *flow.Space, nodes []*entity.Node) error {
	if err := guard(g.Name(), nodes, entity.Storage); err != nil {
		return err
	}
	for _, n := range nodes {
		spec := n.Spec.(entity.StorageSpec)
		in, err := inputOf(n)
		if err != nil {
			return err
		}
		out, err := outputOf(n, 0)
		if err != nil {
			return err
		}

		cap, err := sp.DeclareSeries(flow.StorageCap, n.UID)
		if err != nil {
			return err
		}

		if !g.Investment {
			for _, v := range cap {
				sp.Program().SetUpper(v, spec.CapMax)
			}
		} else {
			addCap, err := sp.DeclareScalar(flow.AddCap, n.UID)
			if err != nil {
				return err
			}
			sp.Program().SetUpper(addCap, spec.AddCapLimit)
			for t := 0; t < sp.Horizon(); t++ {
				rhs := lp.Single(addCap, 1).AddConst(spec.CapMax)
				name := fmt.Sprintf("cap_limit(%s,t%d)", n.UID, t)
				sp.Program().AddLe(name, lp.Single(cap[t], 1), rhs)
			}
		}

		// cyclic boundary: the horizon ends where it started
		sp.Program().Fix(cap[sp.Horizon()-1], spec.CapInitial)

		for t := 0; t < sp.Horizon(); t++ {
			wIn, err := flowVar(sp, in, n.UID, t)
			if err != nil {
				return err
			}
			wOut, err := flowVar(sp, n.UID, out, t)
			if err != nil {
				return err
			}

			rhs := lp.NewExpr()
			if t == 0 {
				rhs.AddConst(spec.CapInitial)
			} else {
				rhs.AddTerm(cap[t-1], 1-spec.CapLoss)
			}
			rhs.AddTerm(wIn, spec.EtaIn)
			rhs.AddTerm(wOut, -1/spec.EtaOut)

			name := fmt.Sprintf("storage_balance(%s,t%d)", n.UID, t)
			sp.Program().AddEq(name, lp.Single(cap[t], 1), rhs)
		}
	}
	return nil
}

// StorageRateLimit bounds charge and discharge power by the c-rates
// applied to the installed capacity. Non-investment capacities become
// plain flow bounds; investment runs emit rows against CapMax + ADDCAP,
// so StorageBalance must have run first. Directions without a positive
// c-rate are left unbounded.
type StorageRateLimit struct {
	Investment bool
}

func (StorageRateLimit) Name() string { return "storage_rate_limit" }

func (g StorageRateLimit) Build(sp *flow.Space, nodes []*entity.Node) error {
	if err := guard(g.Name(), nodes, entity.Storage); err != nil {
		return err
	}
	for _, n := range nodes {
		spec := n.Spec.(entity.StorageSpec)
		in, err := inputOf(n)
		if err != nil {
			return err
		}
		out, err := outputOf(n, 0)
		if err != nil {
			return err
		}

		if !g.Investment {
			for t := 0; t < sp.Horizon(); t++ {
				if spec.CRateOut > 0 {
					if err := sp.SetFlowUpper(n.UID, out, t, spec.CapMax*spec.CRateOut); err != nil {
						return err
					}
				}
				if spec.CRateIn > 0 {
					if err := sp.SetFlowUpper(in, n.UID, t, spec.CapMax*spec.CRateIn); err != nil {
						return err
					}
				}
			}
			continue
		}

		addCap, ok := sp.Scalar(flow.AddCap, n.UID)
		if !ok {
			return fmt.Errorf("%s: storage %s has no add_cap variable, run the balance generator first.", g.Name(), n.UID)
		}
		for t := 0; t < sp.Horizon(); t++ {
			if spec.CRateOut > 0 {
				wOut, err := flowVar(sp, n.UID, out, t)
				if err != nil {
					return err
				}
				rhs := lp.Single(addCap, spec.CRateOut).AddConst(spec.CapMax * spec.CRateOut)
				name := fmt.Sprintf("discharge_limit(%s,t%d)", n.UID, t)
				sp.Program().AddLe(name, lp.Single(wOut, 1), rhs)
			}
			if spec.CRateIn > 0 {
				wIn, err := flowVar(sp, in, n.UID, t)
				if err != nil {
					return err
				}
				rhs := lp.Single(addCap, spec.CRateIn).AddConst(spec.CapMax * spec.CRateIn)
				name := fmt.Sprintf("charge_limit(%s,t%d)", n.UID, t)
				sp.Program().AddLe(name, lp.Single(wIn, 1), rhs)
			}
		}
	}
	return nil
}
