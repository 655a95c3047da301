// Package constraint holds the generators that translate entity
// parameters into linear constraint families over the shared variable
// space. One generator covers one family; the model assembler decides
// which generator runs against which entity subset and in which order.
package constraint

import (
	"errors"
	"fmt"

	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/flow"
	"github.com/elisagaudchau/oemof/internal/pkg/lp"
)

// ErrNoEntities is returned when a generator is invoked with an empty
// entity subset.
var ErrNoEntities = errors.New("no entities supplied")

// Generator emits one constraint family into the shared variable space.
// Generators run sequentially; a generator relying on another's side
// effects (declared scalars, mutated flow bounds) must be ordered after
// it.
type Generator interface {
	Name() string
	Build(sp *flow.Space, nodes []*entity.Node) error
}

// guard checks the common preconditions: a nonempty subset in which
// every node carries one of the supported archetypes.
func guard(name string, nodes []*entity.Node, supported ...entity.Archetype) error {
	if len(nodes) == 0 {
		return fmt.Errorf("%s: %w", name, ErrNoEntities)
	}
	for _, n := range nodes {
		ok := false
		for _, a := range supported {
			if n.Spec.Archetype() == a {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%s: unsupported archetype %s for node %s.", name, n.Spec.Archetype(), n.UID)
		}
	}
	return nil
}

func inputOf(n *entity.Node) (string, error) {
	if len(n.Inputs) == 0 {
		return "", fmt.Errorf("node %s has no input.", n.UID)
	}
	return n.Inputs[0], nil
}

func outputOf(n *entity.Node, idx int) (string, error) {
	if idx >= len(n.Outputs) {
		return "", fmt.Errorf("node %s has no output %d.", n.UID, idx)
	}
	return n.Outputs[idx], nil
}

func flowVar(sp *flow.Space, from, to string, t int) (lp.VarID, error) {
	v, ok := sp.Flow(from, to, t)
	if !ok {
		return -1, fmt.Errorf("no flow variable on edge %s->%s.", from, to)
	}
	return v, nil
}

func valAt(uid string, val []float64, t int) (float64, error) {
	if t >= len(val) {
		return 0, fmt.Errorf("profile for %s has %d values, timestep %d requested.", uid, len(val), t)
	}
	return val[t], nil
}
