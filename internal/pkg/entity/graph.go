package entity

import (
	"errors"
	"fmt"
	"sort"
)

// Edge is an ordered pair of node UIDs carrying flow from From to To.
type Edge struct {
	From string
	To   string
}

// Node is a single component instance. Nodes are read-only once added to
// a graph; Inputs and Outputs reference neighbor UIDs in index order.
type Node struct {
	UID     string
	Inputs  []string
	Outputs []string
	Spec    Spec
}

// Graph is the directed multigraph of components a model is built from.
type Graph struct {
	nodes map[string]*Node
}

func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

func (g *Graph) Add(n Node) error {
	if n.UID == "" {
		return errors.New("node has empty uid.")
	}
	if n.Spec == nil {
		return fmt.Errorf("node %s has no spec.", n.UID)
	}
	if _, exists := g.nodes[n.UID]; exists {
		return fmt.Errorf("node %s already exists in graph.", n.UID)
	}
	g.nodes[n.UID] = &n
	return nil
}

func (g *Graph) Node(uid string) (*Node, bool) {
	n, ok := g.nodes[uid]
	return n, ok
}

// Nodes returns all nodes ordered by uid.
func (g *Graph) Nodes() []*Node {
	uids := make([]string, 0, len(g.nodes))
	for uid := range g.nodes {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	nodes := make([]*Node, 0, len(uids))
	for _, uid := range uids {
		nodes = append(nodes, g.nodes[uid])
	}
	return nodes
}

// ByArchetype returns the nodes of one archetype ordered by uid.
func (g *Graph) ByArchetype(a Archetype) []*Node {
	nodes := make([]*Node, 0)
	for _, n := range g.Nodes() {
		if n.Spec.Archetype() == a {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (g *Graph) isTransport(uid string) bool {
	n, ok := g.nodes[uid]
	return ok && n.Spec.Archetype() == Transport
}

// Edges returns the derived edge set ordered by (From, To). A transport
// contributes a single edge from its input bus to its output bus; every
// other node contributes one edge per non-transport neighbor.
func (g *Graph) Edges() []Edge {
	seen := make(map[Edge]bool)
	for _, n := range g.Nodes() {
		for _, e := range g.nodeEdges(n) {
			seen[e] = true
		}
	}
	edges := make([]Edge, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

func (g *Graph) nodeEdges(n *Node) []Edge {
	edges := make([]Edge, 0, len(n.Inputs)+len(n.Outputs))
	if n.Spec.Archetype() == Transport {
		if len(n.Inputs) > 0 && len(n.Outputs) > 0 {
			edges = append(edges, Edge{n.Inputs[0], n.Outputs[0]})
		}
		return edges
	}
	for _, in := range n.Inputs {
		if !g.isTransport(in) {
			edges = append(edges, Edge{in, n.UID})
		}
	}
	for _, out := range n.Outputs {
		if !g.isTransport(out) {
			edges = append(edges, Edge{n.UID, out})
		}
	}
	return edges
}

// In returns the edges flowing into uid.
func (g *Graph) In(uid string) []Edge {
	edges := make([]Edge, 0)
	for _, e := range g.Edges() {
		if e.To == uid {
			edges = append(edges, e)
		}
	}
	return edges
}

// Out returns the edges flowing out of uid.
func (g *Graph) Out(uid string) []Edge {
	edges := make([]Edge, 0)
	for _, e := range g.Edges() {
		if e.From == uid {
			edges = append(edges, e)
		}
	}
	return edges
}

// Validate checks referential integrity, archetype arity contracts and
// parameter ranges. A graph must validate before a model is built on it.
func (g *Graph) Validate() error {
	balanced := 0
	for _, n := range g.Nodes() {
		for _, ref := range n.Inputs {
			if _, ok := g.nodes[ref]; !ok {
				return fmt.Errorf("node %s references input %s, which does not exist in graph.", n.UID, ref)
			}
		}
		for _, ref := range n.Outputs {
			if _, ok := g.nodes[ref]; !ok {
				return fmt.Errorf("node %s references output %s, which does not exist in graph.", n.UID, ref)
			}
		}
		if err := validateNode(n); err != nil {
			return err
		}
		if n.Spec.Archetype() == Transport {
			for _, ref := range []string{n.Inputs[0], n.Outputs[0]} {
				if nb := g.nodes[ref]; nb.Spec.Archetype() != Bus {
					return fmt.Errorf("transport %s must link buses, %s is a %s.", n.UID, ref, nb.Spec.Archetype())
				}
			}
		}
		if spec, ok := n.Spec.(BusSpec); ok && spec.Balanced {
			balanced++
		}
	}
	if balanced == 0 {
		return errors.New("graph has no balanced bus.")
	}
	return g.validateEdges()
}

// validateEdges rejects link collisions: two transports over the same
// ordered bus pair, or a transport sharing its pair with a direct edge,
// would collapse onto one flow variable with conflicting semantics.
func (g *Graph) validateEdges() error {
	owner := make(map[Edge]string)
	for _, n := range g.Nodes() {
		if n.Spec.Archetype() != Transport {
			continue
		}
		e := Edge{n.Inputs[0], n.Outputs[0]}
		if prev, ok := owner[e]; ok {
			return fmt.Errorf("transports %s and %s collapse to the same link %s->%s.", prev, n.UID, e.From, e.To)
		}
		owner[e] = n.UID
	}
	for _, n := range g.Nodes() {
		if n.Spec.Archetype() == Transport {
			continue
		}
		for _, out := range n.Outputs {
			if g.isTransport(out) {
				continue
			}
			e := Edge{n.UID, out}
			if tr, ok := owner[e]; ok {
				return fmt.Errorf("edge %s->%s conflicts with transport %s.", e.From, e.To, tr)
			}
		}
	}
	return nil
}

func validateNode(n *Node) error {
	switch n.Spec.Archetype() {
	case Bus:
	case FixedSource, DispatchSource:
		if len(n.Inputs) != 0 || len(n.Outputs) != 1 {
			return arityError(n, "no inputs and exactly one output")
		}
	case Commodity:
		if len(n.Inputs) != 0 || len(n.Outputs) < 1 {
			return arityError(n, "no inputs and at least one output")
		}
	case Sink:
		if len(n.Inputs) != 1 || len(n.Outputs) != 0 {
			return arityError(n, "exactly one input and no outputs")
		}
	case Transformer:
		if len(n.Inputs) != 1 || len(n.Outputs) < 1 {
			return arityError(n, "exactly one input and at least one output")
		}
	case CHP, ExtractionCHP:
		if len(n.Inputs) != 1 || len(n.Outputs) != 2 {
			return arityError(n, "exactly one input and two outputs")
		}
	case Storage, Transport:
		if len(n.Inputs) != 1 || len(n.Outputs) != 1 {
			return arityError(n, "exactly one input and one output")
		}
	}
	return validateSpec(n)
}

func arityError(n *Node, want string) error {
	return fmt.Errorf("%s %s requires %s.", n.Spec.Archetype(), n.UID, want)
}

func validateSpec(n *Node) error {
	switch spec := n.Spec.(type) {
	case TransformerSpec:
		if len(spec.Eta) < len(n.Outputs) && len(spec.EtaCurve) < len(n.Outputs) {
			return fmt.Errorf("transformer %s declares %d outputs but only %d efficiencies.", n.UID, len(n.Outputs), len(spec.Eta))
		}
		for i, eta := range spec.Eta {
			if eta <= 0 {
				return fmt.Errorf("transformer %s efficiency %d must be positive.", n.UID, i)
			}
		}
	case CHPSpec:
		if spec.EtaTotal <= 0 && (spec.EtaEl <= 0 || spec.EtaTh <= 0) {
			return fmt.Errorf("chp %s requires either EtaTotal or the EtaEl, EtaTh pair.", n.UID)
		}
	case ExtractionCHPSpec:
		if spec.EtaElCond <= 0 {
			return fmt.Errorf("extraction chp %s requires positive EtaElCond.", n.UID)
		}
		if spec.Sigma <= 0 {
			return fmt.Errorf("extraction chp %s requires positive Sigma.", n.UID)
		}
		if spec.Beta < 0 {
			return fmt.Errorf("extraction chp %s requires nonnegative Beta.", n.UID)
		}
	case StorageSpec:
		if spec.EtaIn <= 0 || spec.EtaOut <= 0 {
			return fmt.Errorf("storage %s requires positive EtaIn and EtaOut.", n.UID)
		}
		if spec.CapLoss < 0 || spec.CapLoss > 1 {
			return fmt.Errorf("storage %s CapLoss must lie in [0,1].", n.UID)
		}
		if spec.CRateIn < 0 || spec.CRateOut < 0 {
			return fmt.Errorf("storage %s c-rates must be nonnegative.", n.UID)
		}
	case TransportSpec:
		if spec.Eta <= 0 || spec.Eta > 1 {
			return fmt.Errorf("transport %s efficiency must lie in (0,1].", n.UID)
		}
		if spec.OutMax < 0 {
			return fmt.Errorf("transport %s OutMax must be nonnegative.", n.UID)
		}
	case FixedSourceSpec:
		if spec.RatedKW < 0 {
			return fmt.Errorf("fixed source %s RatedKW must be nonnegative.", n.UID)
		}
	case DispatchSourceSpec:
		if spec.RatedKW < 0 {
			return fmt.Errorf("dispatch source %s RatedKW must be nonnegative.", n.UID)
		}
	}
	return nil
}
