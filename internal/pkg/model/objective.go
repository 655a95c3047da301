package model

import (
	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/flow"
)

// applyCosts loads the objective: variable operating costs on flows,
// bus prices on consumption, and annualized investment costs on the
// capacity additions. Slack and curtailment costs are set by their
// generators.
func (m *Model) applyCosts() error {
	sp := m.space
	costFlow := func(from, to string, cost float64) error {
		if cost == 0 {
			return nil
		}
		for t := 0; t < sp.Horizon(); t++ {
			if err := sp.SetFlowCost(from, to, t, cost); err != nil {
				return err
			}
		}
		return nil
	}

	for _, n := range m.graph.Nodes() {
		switch spec := n.Spec.(type) {
		case entity.BusSpec:
			for _, e := range m.graph.Out(n.UID) {
				if err := costFlow(e.From, e.To, spec.Price); err != nil {
					return err
				}
			}
		case entity.CommoditySpec:
			for _, out := range n.Outputs {
				if err := costFlow(n.UID, out, spec.OpexVar); err != nil {
					return err
				}
			}
		case entity.TransformerSpec:
			if err := costFlow(n.UID, n.Outputs[0], spec.OpexVar); err != nil {
				return err
			}
		case entity.CHPSpec:
			if err := costFlow(n.UID, n.Outputs[0], spec.OpexVar); err != nil {
				return err
			}
		case entity.ExtractionCHPSpec:
			if err := costFlow(n.UID, n.Outputs[0], spec.OpexVar); err != nil {
				return err
			}
		case entity.StorageSpec:
			if err := costFlow(n.UID, n.Outputs[0], spec.OpexVar); err != nil {
				return err
			}
			if m.config.Investment {
				if v, ok := sp.Scalar(flow.AddCap, n.UID); ok {
					sp.Program().SetCost(v, spec.Capex*spec.CRF+spec.OpexFix)
				}
			}
		case entity.FixedSourceSpec:
			if m.config.Investment {
				if v, ok := sp.Scalar(flow.AddOut, n.UID); ok {
					sp.Program().SetCost(v, spec.Capex*spec.CRF+spec.OpexFix)
				}
			}
		}
	}
	return nil
}
