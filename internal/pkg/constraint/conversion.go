package constraint

import (
	"fmt"

	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/flow"
	"github.com/elisagaudchau/oemof/internal/pkg/lp"
)

// Conversion emits the input-output relation of converting units for one
// selected output: the inflow scaled by that output's efficiency equals
// the output flow, per timestep.
type Conversion struct {
	Index int
}

func (c Conversion) Name() string {
	return fmt.Sprintf("io_relation_%d", c.Index)
}

func (c Conversion) Build(sp *flow.Space, nodes []*entity.Node) error {
	if err := guard(c.Name(), nodes, entity.Transformer, entity.CHP); err != nil {
		return err
	}
	for _, n := range nodes {
		conv, ok := n.Spec.(entity.Converter)
		if !ok {
			return fmt.Errorf("%s: node %s has no conversion efficiencies.", c.Name(), n.UID)
		}
		in, err := inputOf(n)
		if err != nil {
			return err
		}
		out, err := outputOf(n, c.Index)
		if err != nil {
			return err
		}
		for t := 0; t < sp.Horizon(); t++ {
			wIn, err := flowVar(sp, in, n.UID, t)
			if err != nil {
				return err
			}
			wOut, err := flowVar(sp, n.UID, out, t)
			if err != nil {
				return err
			}
			name := fmt.Sprintf("io_relation(%s,%s,t%d)", n.UID, out, t)
			sp.Program().AddEq(name, lp.Single(wIn, conv.EtaAt(c.Index, t)), lp.Single(wOut, 1))
		}
	}
	return nil
}

// CHPTotal emits the back-pressure relation: the inflow scaled by the
// total efficiency equals the sum of the electrical and heat outputs.
type CHPTotal struct{}

func (CHPTotal) Name() string { return "ioo_relation" }

func (g CHPTotal) Build(sp *flow.Space, nodes []*entity.Node) error {
	if err := guard(g.Name(), nodes, entity.CHP); err != nil {
		return err
	}
	for _, n := range nodes {
		spec := n.Spec.(entity.CHPSpec)
		if spec.EtaTotal <= 0 {
			return fmt.Errorf("%s: chp %s has no EtaTotal.", g.Name(), n.UID)
		}
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
			wOut1, err := flowVar(sp, n.UID, out1, t)
			if err != nil {
				return err
			}
			wOut2, err := flowVar(sp, n.UID, out2, t)
			if err != nil {
				return err
			}
			name := fmt.Sprintf("ioo_relation(%s,t%d)", n.UID, t)
			rhs := lp.Single(wOut1, 1).AddTerm(wOut2, 1)
			sp.Program().AddEq(name, lp.Single(wIn, spec.EtaTotal), rhs)
		}
	}
	return nil
}

// CHPRatio emits the fixed power to heat ratio of simple units: the
// electrical output over EtaEl equals the heat output over EtaTh.
type CHPRatio struct{}

func (CHPRatio) Name() string { return "pth_relation" }

func (g CHPRatio) Build(sp *flow.Space, nodes []*entity.Node) error {
	if err := guard(g.Name(), nodes, entity.CHP); err != nil {
		return err
	}
	for _, n := range nodes {
		spec := n.Spec.(entity.CHPSpec)
		if spec.EtaEl <= 0 || spec.EtaTh <= 0 {
			return fmt.Errorf("%s: chp %s has no EtaEl, EtaTh pair.", g.Name(), n.UID)
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
			wOut1, err := flowVar(sp, n.UID, out1, t)
			if err != nil {
				return err
			}
			wOut2, err := flowVar(sp, n.UID, out2, t)
			if err != nil {
				return err
			}
			name := fmt.Sprintf("pth_relation(%s,t%d)", n.UID, t)
			sp.Program().AddEq(name, lp.Single(wOut1, 1/spec.EtaEl), lp.Single(wOut2, 1/spec.EtaTh))
		}
	}
	return nil
}
