package constraint

import (
	"testing"

	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/flow"
	"github.com/elisagaudchau/oemof/internal/pkg/lp"
	"gotest.tools/v3/assert"
)

func add(t *testing.T, g *entity.Graph, n entity.Node) {
	t.Helper()
	assert.NilError(t, g.Add(n))
}

func newSpace(t *testing.T, g *entity.Graph, horizon int) *flow.Space {
	t.Helper()
	assert.NilError(t, g.Validate())
	sp, err := flow.NewSpace(g, horizon)
	assert.NilError(t, err)
	return sp
}

func findRow(t *testing.T, p *lp.Program, name string) lp.Row {
	t.Helper()
	for _, r := range p.Rows() {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("row %s not found", name)
	return lp.Row{}
}

func hasRow(p *lp.Program, name string) bool {
	for _, r := range p.Rows() {
		if r.Name == name {
			return true
		}
	}
	return false
}

func coeff(t *testing.T, row lp.Row, v lp.VarID) float64 {
	t.Helper()
	for _, term := range row.Terms {
		if term.Var == v {
			return term.Coeff
		}
	}
	t.Fatalf("row %s has no term for column %d", row.Name, v)
	return 0
}
