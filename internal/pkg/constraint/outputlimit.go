package constraint

import (
	"fmt"
	"math"

	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/flow"
	"github.com/elisagaudchau/oemof/internal/pkg/lp"
)

// OutputLimit bounds the sum of an entity's outputs over the whole
// horizon. The row is skipped, silently, when the limit is unbounded or
// when the sum is vacuous: no output terms, or every term already
// pinned, leave nothing to constrain.
type OutputLimit struct{}

func (OutputLimit) Name() string { return "sum_output_limit" }

func (g OutputLimit) Build(sp *flow.Space, nodes []*entity.Node) error {
	if err := guard(g.Name(), nodes, entity.Commodity); err != nil {
		return err
	}
	for _, n := range nodes {
		spec := n.Spec.(entity.CommoditySpec)
		if math.IsInf(spec.SumOutLimit, 1) {
			continue
		}

		sum := lp.NewExpr()
		pinned := true
		for _, out := range n.Outputs {
			for t := 0; t < sp.Horizon(); t++ {
				v, err := flowVar(sp, n.UID, out, t)
				if err != nil {
					return err
				}
				sum.AddTerm(v, 1)
				if !sp.Program().Col(v).Fixed {
					pinned = false
				}
			}
		}
		if sum.IsConstant() || pinned {
			continue
		}

		name := fmt.Sprintf("sum_output_limit(%s)", n.UID)
		sp.Program().AddLe(name, sum, lp.Const(spec.SumOutLimit))
	}
	return nil
}
