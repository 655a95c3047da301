package constraint

import (
	"fmt"

	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/flow"
	"github.com/elisagaudchau/oemof/internal/pkg/lp"
)

// Direction selects which ramp directions a Gradient generator declares.
type Direction int

const (
	Positive Direction = iota
	Negative
	Both
)

// Gradient emits ramp constraints on the primary output of transformers:
// the step between consecutive timesteps is captured by a ramp series
// bounded per entity,
//
//	W(e,out,t) - W(e,out,t-1) <= GRADPOS(e,t),  0 <= GRADPOS <= GradPosMax
//	W(e,out,t-1) - W(e,out,t) <= GRADNEG(e,t),  0 <= GRADNEG <= GradNegMax
//
// The first timestep has no predecessor and emits no row. Only the
// selected directions declare variables and rows.
type Gradient struct {
	Direction Direction
}

func (Gradient) Name() string { return "output_gradient" }

func (g Gradient) Build(sp *flow.Space, nodes []*entity.Node) error {
	if err := guard(g.Name(), nodes, entity.Transformer); err != nil {
		return err
	}
	for _, n := range nodes {
		spec := n.Spec.(entity.TransformerSpec)
		out, err := outputOf(n, 0)
		if err != nil {
			return err
		}

		if g.Direction == Positive || g.Direction == Both {
			if err := g.buildDirection(sp, n, out, flow.GradPos, spec.GradPosMax, false); err != nil {
				return err
			}
		}
		if g.Direction == Negative || g.Direction == Both {
			if err := g.buildDirection(sp, n, out, flow.GradNeg, spec.GradNegMax, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g Gradient) buildDirection(sp *flow.Space, n *entity.Node, out string, kind flow.AuxKind, max float64, mirrored bool) error {
	grad, err := sp.DeclareSeries(kind, n.UID)
	if err != nil {
		return err
	}
	for _, v := range grad {
		sp.Program().SetUpper(v, max)
	}
	for t := 1; t < sp.Horizon(); t++ {
		wNow, err := flowVar(sp, n.UID, out, t)
		if err != nil {
			return err
		}
		wPrev, err := flowVar(sp, n.UID, out, t-1)
		if err != nil {
			return err
		}
		lhs := lp.Single(wNow, 1).AddTerm(wPrev, -1)
		if mirrored {
			lhs = lp.Single(wPrev, 1).AddTerm(wNow, -1)
		}
		name := fmt.Sprintf("%s(%s,t%d)", kind, n.UID, t)
		sp.Program().AddLe(name, lhs, lp.Single(grad[t], 1))
	}
	return nil
}
