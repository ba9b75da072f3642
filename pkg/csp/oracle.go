package csp

import (
	"context"

	"github.com/TrailLensCo/crosswordgenerator/pkg/constraintgraph"
	"github.com/TrailLensCo/crosswordgenerator/pkg/grid"
	"github.com/TrailLensCo/crosswordgenerator/pkg/wordsupply"
)

// Oracle is the host-supplied Word Oracle callback: given a pattern (an
// L-character string using '.' as a wildcard), a maximum number of
// candidates to return, and the set of words already used elsewhere in the
// current fill, it returns up to count matching words not in used.
//
// The engine treats oracle latency as unbounded — it never imposes its own
// timeout, relying entirely on ctx — and treats a returned error the same
// as an empty result: it never distinguishes "no matches" from "the oracle
// failed" when deciding what to do next.
type Oracle interface {
	Request(ctx context.Context, pattern string, count int, used map[string]bool) ([]string, error)
}

// Assignment maps a slot to the Entry currently filled into it.
type Assignment map[grid.ID]wordsupply.Entry

// patternFor builds slot S's current pattern: position k is the fixed
// grid letter at that cell if there is one, else the letter contributed by
// an already-assigned perpendicular neighbor at that intersection, else a
// wildcard.
func patternFor(g *grid.Grid, slotID grid.ID, graph *constraintgraph.Graph, assignment Assignment) string {
	slot, _ := graph.Slot(slotID)
	buf := make([]byte, slot.Length)
	for idx, coord := range slot.Cells {
		cell := g.Cell(coord.Row, coord.Col)
		if cell.Kind == grid.LetterFixed {
			buf[idx] = byte(cell.Letter)
			continue
		}
		buf[idx] = '.'
		for _, edge := range graph.Neighbors(slotID) {
			if edge.SelfIdx != idx {
				continue
			}
			if entry, ok := assignment[edge.Other.ID()]; ok {
				buf[idx] = entry.Word[edge.OtherIdx]
			}
			break
		}
	}
	return string(buf)
}
