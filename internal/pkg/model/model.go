// Package model assembles an energy system graph into a linear program,
// runs it, and publishes the outcome.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/elisagaudchau/oemof/internal/pkg/constraint"
	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/flow"
	"github.com/elisagaudchau/oemof/internal/pkg/msg"
	"github.com/elisagaudchau/oemof/internal/pkg/solver"
)

// Config holds the per-run settings of a model.
type Config struct {
	Name       string `json:"Name"`
	Horizon    int    `json:"Horizon"`
	Investment bool   `json:"Investment"`
}

// ReadConfig loads a run configuration from disk.
func ReadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Model owns one optimization run over an entity graph.
type Model struct {
	mux       *sync.Mutex
	pid       uuid.UUID
	config    Config
	graph     *entity.Graph
	space     *flow.Space
	solver    solver.Solver
	publisher *msg.PubSub
}

// New is the Model factory function. The graph is validated on Build,
// the configuration and profiles up front.
func New(cfg Config, g *entity.Graph, s solver.Solver) (*Model, error) {
	pid, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		return nil, errors.New("model requires a name.")
	}
	if cfg.Horizon < 1 {
		return nil, fmt.Errorf("model %s requires a horizon of at least 1, got %d.", cfg.Name, cfg.Horizon)
	}
	if g == nil {
		return nil, fmt.Errorf("model %s requires a graph.", cfg.Name)
	}
	if s == nil {
		return nil, fmt.Errorf("model %s requires a solver.", cfg.Name)
	}
	if err := checkProfiles(cfg, g); err != nil {
		return nil, err
	}
	return &Model{&sync.Mutex{}, pid, cfg, g, nil, s, msg.NewPublisher(pid)}, nil
}

func checkProfiles(cfg Config, g *entity.Graph) error {
	for _, n := range g.Nodes() {
		var val []float64
		switch spec := n.Spec.(type) {
		case entity.FixedSourceSpec:
			val = spec.Val
		case entity.DispatchSourceSpec:
			val = spec.Val
		case entity.SinkSpec:
			if len(spec.Val) == 0 {
				continue
			}
			val = spec.Val
		default:
			continue
		}
		if len(val) < cfg.Horizon {
			return fmt.Errorf("model %s: profile for %s has %d values, horizon is %d.", cfg.Name, n.UID, len(val), cfg.Horizon)
		}
	}
	return nil
}

// PID process id
func (m *Model) PID() uuid.UUID {
	return m.pid
}

func (m *Model) Name() string {
	return m.config.Name
}

// Subscribe returns a channel on which the specified topic is broadcast
func (m *Model) Subscribe(pid uuid.UUID, topic msg.Topic) (<-chan msg.Msg, error) {
	return m.publisher.Subscribe(pid, topic)
}

// Unsubscribe pid from all topic broadcasts
func (m *Model) Unsubscribe(pid uuid.UUID) {
	m.publisher.Unsubscribe(pid)
}

// Build assembles the linear program: flow variables for every edge,
// then the constraint generators in dependency order, then costs.
func (m *Model) Build() error {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.build()
}

func (m *Model) build() error {
	if err := m.graph.Validate(); err != nil {
		return err
	}
	sp, err := flow.NewSpace(m.graph, m.config.Horizon)
	if err != nil {
		return err
	}
	m.space = sp

	if err := m.applyOutputBounds(); err != nil {
		return err
	}
	if err := m.runGenerators(); err != nil {
		return err
	}
	return m.applyCosts()
}

// applyOutputBounds caps converter outputs configured with OutMax.
// Entries that are zero or unbounded are left alone.
func (m *Model) applyOutputBounds() error {
	for _, n := range m.graph.Nodes() {
		var outMax []float64
		switch spec := n.Spec.(type) {
		case entity.TransformerSpec:
			outMax = spec.OutMax
		case entity.CHPSpec:
			outMax = spec.OutMax
		case entity.ExtractionCHPSpec:
			outMax = spec.OutMax
		default:
			continue
		}
		for idx, max := range outMax {
			if idx >= len(n.Outputs) || max <= 0 || math.IsInf(max, 1) {
				continue
			}
			for t := 0; t < m.space.Horizon(); t++ {
				if err := m.space.SetFlowUpper(n.UID, n.Outputs[idx], t, max); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// runGenerators executes the constraint generators. Storage rate limits
// need the capacity variables of the balance generator, and the bus
// balance closes over everything the earlier generators declared, so
// it runs last.
func (m *Model) runGenerators() error {
	run := func(gen constraint.Generator, nodes []*entity.Node) error {
		if len(nodes) == 0 {
			return nil
		}
		return gen.Build(m.space, nodes)
	}
	g := m.graph

	if err := run(constraint.FixedSource{Investment: m.config.Investment}, g.ByArchetype(entity.FixedSource)); err != nil {
		return err
	}
	if err := run(constraint.DispatchSource{}, g.ByArchetype(entity.DispatchSource)); err != nil {
		return err
	}
	if err := run(constraint.FixedSink{}, g.ByArchetype(entity.Sink)); err != nil {
		return err
	}

	transformers := g.ByArchetype(entity.Transformer)
	for idx := 0; ; idx++ {
		subset := withOutput(transformers, idx)
		if len(subset) == 0 {
			break
		}
		if err := run(constraint.Conversion{Index: idx}, subset); err != nil {
			return err
		}
	}

	var total, pair []*entity.Node
	for _, n := range g.ByArchetype(entity.CHP) {
		if n.Spec.(entity.CHPSpec).EtaTotal > 0 {
			total = append(total, n)
			continue
		}
		pair = append(pair, n)
	}
	if err := run(constraint.CHPTotal{}, total); err != nil {
		return err
	}
	if err := run(constraint.Conversion{Index: 0}, pair); err != nil {
		return err
	}
	if err := run(constraint.CHPRatio{}, pair); err != nil {
		return err
	}
	if err := run(constraint.Extraction{}, g.ByArchetype(entity.ExtractionCHP)); err != nil {
		return err
	}

	storages := g.ByArchetype(entity.Storage)
	if err := run(constraint.StorageBalance{Investment: m.config.Investment}, storages); err != nil {
		return err
	}
	if err := run(constraint.StorageRateLimit{Investment: m.config.Investment}, storages); err != nil {
		return err
	}

	var pos, neg, both []*entity.Node
	for _, n := range transformers {
		spec := n.Spec.(entity.TransformerSpec)
		switch {
		case spec.GradPosMax > 0 && spec.GradNegMax > 0:
			both = append(both, n)
		case spec.GradPosMax > 0:
			pos = append(pos, n)
		case spec.GradNegMax > 0:
			neg = append(neg, n)
		}
	}
	if err := run(constraint.Gradient{Direction: constraint.Positive}, pos); err != nil {
		return err
	}
	if err := run(constraint.Gradient{Direction: constraint.Negative}, neg); err != nil {
		return err
	}
	if err := run(constraint.Gradient{Direction: constraint.Both}, both); err != nil {
		return err
	}

	if err := run(constraint.OutputLimit{}, g.ByArchetype(entity.Commodity)); err != nil {
		return err
	}

	return run(constraint.BusBalance{Links: g.ByArchetype(entity.Transport)}, g.ByArchetype(entity.Bus))
}

func withOutput(nodes []*entity.Node, idx int) []*entity.Node {
	var subset []*entity.Node
	for _, n := range nodes {
		if len(n.Outputs) > idx {
			subset = append(subset, n)
		}
	}
	return subset
}

// Solve runs the assembled program, publishes the report, and returns
// the readable results. The model builds itself on first use.
func (m *Model) Solve() (Results, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if m.space == nil {
		if err := m.build(); err != nil {
			return Results{}, err
		}
	}

	res, err := m.solver.Solve(m.space.Program())
	m.publisher.Publish(msg.Result, m.report(res))
	if err != nil {
		return Results{}, fmt.Errorf("model %s (horizon %d): %w", m.config.Name, m.config.Horizon, err)
	}
	return Results{space: m.space, res: res}, nil
}
