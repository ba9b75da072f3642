package csp

import (
	"context"

	"github.com/TrailLensCo/crosswordgenerator/pkg/grid"
)

// arc is a directed constraint: revise(From, To) removes From's
// unsupported entries using To's domain.
type arc struct {
	From, To grid.ID
}

// ac3Outcome distinguishes the three ways an AC-3 run (or the domain
// construction pass, which shares the same recovery plumbing) can end.
type ac3Outcome int

const (
	ac3Consistent ac3Outcome = iota
	ac3Failed
	ac3Aborted // cancellation: stop propagating the error up through backtracking
)

// revise removes every entry w from Dom(from) for which no entry w' in
// Dom(to) with w' != w agrees with w at the shared cell. The w' != w guard
// is the uniqueness rule of §4.4.2: a slot can never "support itself" off
// the one remaining entry of a neighbor whose domain has collapsed to that
// same word, since assigning both would reuse one word twice.
func (e *Engine) revise(domains Domains, a arc) (changed, emptied bool) {
	edge, ok := e.findEdge(a.From, a.To)
	if !ok {
		return false, false
	}
	i, j := edge.SelfIdx, edge.OtherIdx

	from := domains[a.From]
	to := domains[a.To]
	kept := make(Domain, 0, len(from))
	for _, w := range from {
		supported := false
		for _, w2 := range to {
			if w2.Word == w.Word {
				continue
			}
			if w.Word[i] == w2.Word[j] {
				supported = true
				break
			}
		}
		if supported {
			kept = append(kept, w)
		}
	}
	domains[a.From] = kept
	return len(kept) != len(from), len(kept) == 0
}

func (e *Engine) findEdge(from, to grid.ID) (edgeRef, bool) {
	for _, edge := range e.graph.Neighbors(from) {
		if edge.Other.ID() == to {
			return edgeRef{SelfIdx: edge.SelfIdx, OtherIdx: edge.OtherIdx}, true
		}
	}
	return edgeRef{}, false
}

type edgeRef struct {
	SelfIdx, OtherIdx int
}

// runAC3 drains queue, revising arcs until the queue empties (consistent)
// or some domain empties and recovery cannot refill it (failed), or ctx is
// cancelled (aborted). Emptied domains trigger the recovery protocol
// in-line, exactly as §4.4.3 describes: recovery either refills the domain
// (and the loop re-enqueues arcs into every neighbor of the refilled slot
// before resuming) or the whole run fails.
func (e *Engine) runAC3(ctx context.Context, domains Domains, assignment Assignment, queue []arc) ac3Outcome {
	for len(queue) > 0 {
		if ctx.Err() != nil {
			return ac3Aborted
		}
		a := queue[0]
		queue = queue[1:]

		_, emptied := e.revise(domains, a)
		if !emptied {
			continue
		}

		recovered, budgetBlocked := e.recoverEmptyDomain(ctx, domains, assignment, a.From)
		if !recovered {
			if budgetBlocked {
				e.oracleBudgetHit = true
			}
			return ac3Failed
		}
		for _, edge := range e.graph.Neighbors(a.From) {
			queue = append(queue, arc{From: edge.Other.ID(), To: a.From})
		}
	}
	return ac3Consistent
}

// initialArcs returns every directed arc in the constraint graph, used to
// seed the domain-construction-time AC-3 pass.
func (e *Engine) initialArcs() []arc {
	var arcs []arc
	for _, s := range e.graph.Slots() {
		for _, edge := range e.graph.Neighbors(s.ID()) {
			arcs = append(arcs, arc{From: s.ID(), To: edge.Other.ID()})
		}
	}
	return arcs
}

// neighborArcs returns the arcs (Z, slotID) for every neighbor Z of
// slotID — the standard "something changed, re-check everyone who depends
// on it" re-enqueue used after an assignment shrinks slotID's domain to a
// singleton.
func (e *Engine) neighborArcs(slotID grid.ID) []arc {
	var arcs []arc
	for _, edge := range e.graph.Neighbors(slotID) {
		arcs = append(arcs, arc{From: edge.Other.ID(), To: slotID})
	}
	return arcs
}
