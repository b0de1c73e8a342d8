package qtable

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

// Graph renders the table as a directed graph: one node per state, one edge per
// recorded action pointing at a leaf labelled with its notation.
// Only the top actions of each state are drawn; top <= 0 draws all of them.
func (t *Table) Graph(top int) (*gographviz.Graph, error) {
	const name = "qtable"
	g := gographviz.NewGraph()
	if err := g.SetName(name); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := g.SetDir(true); err != nil {
		return nil, errors.WithStack(err)
	}

	for _, s := range t.Keys() {
		sid := strconv.Quote(s.String())
		if err := g.AddNode(name, sid, map[string]string{"shape": "box"}); err != nil {
			return nil, errors.Wrapf(err, "state %v", s)
		}
		ranked := t.Ranked(s)
		if top > 0 && len(ranked) > top {
			ranked = ranked[:top]
		}
		for _, p := range ranked {
			aid := strconv.Quote(s.String() + "/" + p.Action)
			if err := g.AddNode(name, aid, map[string]string{"label": strconv.Quote(p.Action)}); err != nil {
				return nil, errors.Wrapf(err, "action %v", p.Action)
			}
			attrs := map[string]string{"label": strconv.Quote(fmt.Sprintf("%.1f", p.Score))}
			if err := g.AddEdge(sid, aid, true, attrs); err != nil {
				return nil, errors.Wrapf(err, "edge %v -> %v", s, p.Action)
			}
		}
	}
	return g, nil
}
