package constraint

import (
	"fmt"

	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/flow"
	"github.com/elisagaudchau/oemof/internal/pkg/lp"
)

// Extraction emits the PQ operating region of extraction turbines: an
// equivalent-input equality, inflow == (P + Beta*Q) / EtaElCond, and the
// power to heat bound P <= Sigma*Q, per timestep.
type Extraction struct{}

func (Extraction) Name() string { return "extraction_chp" }

func (g Extraction) Build(sp *flow.Space, nodes []*entity.Node) error {
	if err := guard(g.Name(), nodes, entity.ExtractionCHP); err != nil {
		return err
	}
	for _, n := range nodes {
		spec := n.Spec.(entity.ExtractionCHPSpec)
		in, err := inputOf(n)
		if err != nil {
			return err
		}
		out1, err := outputOf(n, 0)
		if err != nil {
			return err
		}
		out2, err := outputOf(n, 1)
		if err != nil {
			return err
		}
		for t := 0; t < sp.Horizon(); t++ {
			wIn, err := flowVar(sp, in, n.UID, t)
			if err != nil {
				return err
			}
			wP, err := flowVar(sp, n.UID, out1, t)
			if err != nil {
				return err
			}
			wQ, err := flowVar(sp, n.UID, out2, t)
			if err != nil {
				return err
			}

			rhs := lp.Single(wP, 1).AddTerm(wQ, spec.Beta).Scale(1 / spec.EtaElCond)
			name := fmt.Sprintf("equivalent_input(%s,t%d)", n.UID, t)
			sp.Program().AddEq(name, lp.Single(wIn, 1), rhs)

			name = fmt.Sprintf("power_heat(%s,t%d)", n.UID, t)
			sp.Program().AddLe(name, lp.Single(wP, 1), lp.Single(wQ, spec.Sigma))
		}
	}
	return nil
}
