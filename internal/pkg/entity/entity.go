package entity

import "math"

// Unlimited marks an absent capacity or sum limit.
var Unlimited = math.Inf(1)

// Archetype identifies the physical behavior of a node.
type Archetype int

const (
	Bus Archetype = iota
	FixedSource
	DispatchSource
	Commodity
	Sink
	Transformer
	CHP
	ExtractionCHP
	Storage
	Transport
)

func (a Archetype) String() string {
	switch a {
	case Bus:
		return "bus"
	case FixedSource:
		return "fixed_source"
	case DispatchSource:
		return "dispatch_source"
	case Commodity:
		return "commodity"
	case Sink:
		return "sink"
	case Transformer:
		return "transformer"
	case CHP:
		return "chp"
	case ExtractionCHP:
		return "extraction_chp"
	case Storage:
		return "storage"
	case Transport:
		return "transport"
	}
	return "unknown"
}

// Spec carries the archetype-specific parameters of a node.
type Spec interface {
	Archetype() Archetype
}

// Converter is implemented by specs with indexable conversion
// efficiencies, one per output.
type Converter interface {
	Spec
	EtaAt(idx, t int) float64
}

// BusSpec parameterizes a balancing node. Shortage and Excess enable the
// matching slack series; their costs price slack in the objective. Price
// is the cost per unit drawn from the bus by converting components.
type BusSpec struct {
	Balanced     bool    `json:"Balanced"`
	Price        float64 `json:"Price"`
	Shortage     bool    `json:"Shortage"`
	Excess       bool    `json:"Excess"`
	ShortageCost float64 `json:"ShortageCost"`
	ExcessCost   float64 `json:"ExcessCost"`
}

func (BusSpec) Archetype() Archetype { return Bus }

// FixedSourceSpec parameterizes a non-dispatchable source. Val holds the
// normalized per-timestep availability, scaled by RatedKW. AddOutLimit,
// Capex, OpexFix and CRF apply to capacity-expansion runs.
type FixedSourceSpec struct {
	Val         []float64 `json:"Val"`
	RatedKW     float64   `json:"RatedKW"`
	AddOutLimit float64   `json:"AddOutLimit"`
	Capex       float64   `json:"Capex"`
	OpexFix     float64   `json:"OpexFix"`
	CRF         float64   `json:"CRF"`
}

func (FixedSourceSpec) Archetype() Archetype { return FixedSource }

// DispatchSourceSpec parameterizes a curtailable source. The availability
// Val*RatedKW bounds the output; unused potential is exposed as a
// curtailment series priced at CurtailCost.
type DispatchSourceSpec struct {
	Val         []float64 `json:"Val"`
	RatedKW     float64   `json:"RatedKW"`
	CurtailCost float64   `json:"CurtailCost"`
}

func (DispatchSourceSpec) Archetype() Archetype { return DispatchSource }

// CommoditySpec parameterizes a fuel supply with an optional limit on the
// total output summed over the horizon.
type CommoditySpec struct {
	SumOutLimit float64 `json:"SumOutLimit"`
	OpexVar     float64 `json:"OpexVar"`
}

func (CommoditySpec) Archetype() Archetype { return Commodity }

// SinkSpec parameterizes a consumer. A non-empty Val pins the inflow to
// the demand series; an empty Val leaves the inflow free.
type SinkSpec struct {
	Val []float64 `json:"Val"`
}

func (SinkSpec) Archetype() Archetype { return Sink }

// TransformerSpec parameterizes a conversion unit with one input and one
// efficiency per output. EtaCurve overrides Eta per timestep when set.
type TransformerSpec struct {
	Eta        []float64   `json:"Eta"`
	EtaCurve   [][]float64 `json:"EtaCurve"`
	OutMax     []float64   `json:"OutMax"`
	OpexVar    float64     `json:"OpexVar"`
	GradPosMax float64     `json:"GradPosMax"`
	GradNegMax float64     `json:"GradNegMax"`
}

func (TransformerSpec) Archetype() Archetype { return Transformer }

// EtaAt returns the conversion efficiency for output idx at timestep t.
func (s TransformerSpec) EtaAt(idx, t int) float64 {
	if idx < len(s.EtaCurve) && t < len(s.EtaCurve[idx]) {
		return s.EtaCurve[idx][t]
	}
	return s.Eta[idx]
}

// CHPSpec parameterizes a combined heat and power unit with electrical
// output first and heat output second. Units with a fixed power to heat
// ratio carry EtaEl and EtaTh; back-pressure units carry EtaTotal.
type CHPSpec struct {
	EtaEl    float64   `json:"EtaEl"`
	EtaTh    float64   `json:"EtaTh"`
	EtaTotal float64   `json:"EtaTotal"`
	OutMax   []float64 `json:"OutMax"`
	OpexVar  float64   `json:"OpexVar"`
}

func (CHPSpec) Archetype() Archetype { return CHP }

// EtaAt returns EtaEl for the first output and EtaTh for the second.
func (s CHPSpec) EtaAt(idx, t int) float64 {
	if idx == 0 {
		return s.EtaEl
	}
	return s.EtaTh
}

// ExtractionCHPSpec parameterizes an extraction turbine. Beta is the
// power loss index, Sigma the power to heat ratio bound, EtaElCond the
// electrical efficiency in condensing mode.
type ExtractionCHPSpec struct {
	Beta      float64   `json:"Beta"`
	Sigma     float64   `json:"Sigma"`
	EtaElCond float64   `json:"EtaElCond"`
	OutMax    []float64 `json:"OutMax"`
	OpexVar   float64   `json:"OpexVar"`
}

func (ExtractionCHPSpec) Archetype() Archetype { return ExtractionCHP }

// StorageSpec parameterizes an energy storage. The charge state decays by
// CapLoss per timestep; charge and discharge power are limited by the
// c-rates applied to the installed capacity.
type StorageSpec struct {
	CapMax      float64 `json:"CapMax"`
	CapInitial  float64 `json:"CapInitial"`
	CapLoss     float64 `json:"CapLoss"`
	EtaIn       float64 `json:"EtaIn"`
	EtaOut      float64 `json:"EtaOut"`
	CRateIn     float64 `json:"CRateIn"`
	CRateOut    float64 `json:"CRateOut"`
	AddCapLimit float64 `json:"AddCapLimit"`
	OpexVar     float64 `json:"OpexVar"`
	Capex       float64 `json:"Capex"`
	OpexFix     float64 `json:"OpexFix"`
	CRF         float64 `json:"CRF"`
}

func (StorageSpec) Archetype() Archetype { return Storage }

// TransportSpec parameterizes a lossy link between two buses. The link
// contributes a single flow variable from its input bus to its output
// bus, bounded by OutMax, with Eta applied at the destination.
type TransportSpec struct {
	Eta    float64 `json:"Eta"`
	OutMax float64 `json:"OutMax"`
}

func (TransportSpec) Archetype() Archetype { return Transport }
