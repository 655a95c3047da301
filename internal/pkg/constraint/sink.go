package constraint

import (
	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/flow"
)

// FixedSink pins every sink inflow to its demand profile. Sinks without
// a profile are left free, bounded only by the surrounding balance.
type FixedSink struct{}

func (FixedSink) Name() string { return "fixed_sink" }

func (g FixedSink) Build(sp *flow.Space, nodes []*entity.Node) error {
	if err := guard(g.Name(), nodes, entity.Sink); err != nil {
		return err
	}
	for _, n := range nodes {
		spec := n.Spec.(entity.SinkSpec)
		if len(spec.Val) == 0 {
			continue
		}
		in, err := inputOf(n)
		if err != nil {
			return err
		}
		for t := 0; t < sp.Horizon(); t++ {
			val, err := valAt(n.UID, spec.Val, t)
			if err != nil {
				return err
			}
			if err := sp.FixFlow(in, n.UID, t, val); err != nil {
				return err
			}
		}
	}
	return nil
}
