// Package constraintgraph derives, from a grid's enumerated slots, the
// intersection edges between perpendicular slots that the CSP engine
// propagates constraints over.
package constraintgraph

import (
	"sort"

	"github.com/TrailLensCo/crosswordgenerator/pkg/grid"
)

// Edge records that cell i of Self equals cell j of Other — the shared
// coordinate between two intersecting, perpendicular slots. At most one
// intersection exists per slot pair, since two perpendicular lines cross
// at a single point.
type Edge struct {
	Other    grid.Slot
	SelfIdx  int
	OtherIdx int
}

// Graph is an undirected adjacency list keyed by slot identity (position +
// orientation, never object identity), per the design notes.
type Graph struct {
	neighbors map[grid.ID][]Edge
	slots     map[grid.ID]grid.Slot
}

// Build constructs the constraint graph for a set of enumerated slots.
// Parallel slot pairs are skipped without testing their cells, since
// their shared orientation forbids any intersection.
func Build(slots []grid.Slot) *Graph {
	g := &Graph{
		neighbors: make(map[grid.ID][]Edge),
		slots:     make(map[grid.ID]grid.Slot, len(slots)),
	}
	for _, s := range slots {
		g.slots[s.ID()] = s
	}

	cellIndex := make(map[grid.Coord][]grid.Slot)
	for _, s := range slots {
		for _, coord := range s.Cells {
			cellIndex[coord] = append(cellIndex[coord], s)
		}
	}

	for _, across := range slots {
		if across.Orientation != grid.Across {
			continue
		}
		for ai, coord := range across.Cells {
			for _, down := range cellIndex[coord] {
				if down.Orientation != grid.Down {
					continue
				}
				di := indexOf(down.Cells, coord)
				g.neighbors[across.ID()] = append(g.neighbors[across.ID()], Edge{Other: down, SelfIdx: ai, OtherIdx: di})
				g.neighbors[down.ID()] = append(g.neighbors[down.ID()], Edge{Other: across, SelfIdx: di, OtherIdx: ai})
			}
		}
	}

	return g
}

func indexOf(cells []grid.Coord, coord grid.Coord) int {
	for i, c := range cells {
		if c == coord {
			return i
		}
	}
	return -1
}

// Neighbors returns the list of (other_slot, index_in_self, index_in_other)
// triples for the given slot.
func (g *Graph) Neighbors(id grid.ID) []Edge {
	return g.neighbors[id]
}

// Slots returns every slot known to the graph, ordered by (row, col,
// orientation). The graph stores slots in a map keyed by identity, so this
// imposes the fixed total order the engine's determinism guarantee (every
// heuristic tie-break included) depends on.
func (g *Graph) Slots() []grid.Slot {
	out := make([]grid.Slot, 0, len(g.slots))
	for _, s := range g.slots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.StartRow != b.StartRow {
			return a.StartRow < b.StartRow
		}
		if a.StartCol != b.StartCol {
			return a.StartCol < b.StartCol
		}
		return a.Orientation < b.Orientation
	})
	return out
}

// Slot looks up a slot by its identity.
func (g *Graph) Slot(id grid.ID) (grid.Slot, bool) {
	s, ok := g.slots[id]
	return s, ok
}
