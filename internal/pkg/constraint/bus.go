package constraint

import (
	"fmt"

	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/flow"
	"github.com/elisagaudchau/oemof/internal/pkg/lp"
)

// BusBalance emits the conservation constraint of every balanced bus:
// per timestep, inflows plus optional shortage slack equal outflows plus
// optional excess slack. Transport links are folded in place of a
// separate balance node: the single bus-to-bus flow variable is bounded
// above by the link's OutMax, leaves the source bus unscaled and arrives
// at the destination bus scaled by the link efficiency. The bound
// mutation happens before any balance row is built.
type BusBalance struct {
	Links []*entity.Node
}

func (BusBalance) Name() string { return "bus_balance" }

func (b BusBalance) Build(sp *flow.Space, nodes []*entity.Node) error {
	if err := guard(b.Name(), nodes, entity.Bus); err != nil {
		return err
	}

	etas := make(map[entity.Edge]float64)
	for _, link := range b.Links {
		spec, ok := link.Spec.(entity.TransportSpec)
		if !ok {
			return fmt.Errorf("bus_balance: link %s is not a transport.", link.UID)
		}
		in, err := inputOf(link)
		if err != nil {
			return err
		}
		out, err := outputOf(link, 0)
		if err != nil {
			return err
		}
		etas[entity.Edge{From: in, To: out}] = spec.Eta
		for t := 0; t < sp.Horizon(); t++ {
			if err := sp.SetFlowUpper(in, out, t, spec.OutMax); err != nil {
				return err
			}
		}
	}

	for _, n := range nodes {
		spec := n.Spec.(entity.BusSpec)
		if !spec.Balanced {
			continue
		}

		var shortage, excess []lp.VarID
		var err error
		if spec.Shortage {
			shortage, err = sp.DeclareSeries(flow.Shortage, n.UID)
			if err != nil {
				return err
			}
			for _, v := range shortage {
				sp.Program().SetCost(v, spec.ShortageCost)
			}
		}
		if spec.Excess {
			excess, err = sp.DeclareSeries(flow.Excess, n.UID)
			if err != nil {
				return err
			}
			for _, v := range excess {
				sp.Program().SetCost(v, spec.ExcessCost)
			}
		}

		var inflows, outflows []entity.Edge
		for _, e := range sp.Edges() {
			if e.To == n.UID {
				inflows = append(inflows, e)
			}
			if e.From == n.UID {
				outflows = append(outflows, e)
			}
		}

		for t := 0; t < sp.Horizon(); t++ {
			lhs := lp.NewExpr()
			for _, e := range inflows {
				v, err := flowVar(sp, e.From, e.To, t)
				if err != nil {
					return err
				}
				coeff := 1.0
				if eta, folded := etas[e]; folded {
					coeff = eta
				}
				lhs.AddTerm(v, coeff)
			}
			if shortage != nil {
				lhs.AddTerm(shortage[t], 1)
			}

			rhs := lp.NewExpr()
			for _, e := range outflows {
				v, err := flowVar(sp, e.From, e.To, t)
				if err != nil {
					return err
				}
				rhs.AddTerm(v, 1)
			}
			if excess != nil {
				rhs.AddTerm(excess[t], 1)
			}

			if lhs.IsConstant() && rhs.IsConstant() {
				continue
			}
			name := fmt.Sprintf("bus_balance(%s,t%d)", n.UID, t)
			sp.Program().AddEq(name, lhs, rhs)
		}
	}
	return nil
}
