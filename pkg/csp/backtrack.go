package csp

import (
	"context"
	"sort"

	"github.com/TrailLensCo/crosswordgenerator/pkg/grid"
	"github.com/TrailLensCo/crosswordgenerator/pkg/wordsupply"
)

// searchOutcome distinguishes "this branch failed, try the next value"
// from the two ways a search aborts outright: a budget was blown, or the
// host cancelled us. Only outcomeExhausted is a normal, expected result of
// backtracking; the other two unwind every recursive frame without
// trying further values.
type searchOutcome int

const (
	outcomeSolved searchOutcome = iota
	outcomeExhausted
	outcomeAborted
)

// search is the recursive backtracking core: pick the most constrained
// unassigned slot (MRV, then degree, then a fixed row/col/orientation
// order for determinism), try its domain values in least-constraining
// order, and recurse. Every attempted-and-abandoned value increments the
// backtrack counter; crossing BacktrackBudget aborts the whole search
// rather than merely this branch.
func (e *Engine) search(ctx context.Context, domains Domains, assignment Assignment) (Assignment, searchOutcome) {
	if ctx.Err() != nil {
		e.failureReason = Cancelled
		return nil, outcomeAborted
	}
	if len(assignment) == len(e.graph.Slots()) {
		return assignment, outcomeSolved
	}

	slotID, ok := e.selectUnassigned(domains, assignment)
	if !ok {
		return assignment, outcomeSolved
	}

	for _, val := range e.orderValues(slotID, domains, assignment) {
		if e.used[val.Word] {
			continue
		}
		if !e.simpleConsistent(slotID, val, assignment) {
			continue
		}

		snapshot := domains.Clone()
		domains[slotID] = Domain{val}
		assignment[slotID] = val
		e.used[val.Word] = true

		outcome := e.runAC3(ctx, domains, assignment, e.neighborArcs(slotID))

		var result Assignment
		var sub searchOutcome
		if outcome == ac3Consistent {
			result, sub = e.search(ctx, domains, assignment)
		} else if outcome == ac3Aborted {
			sub = outcomeAborted
		} else {
			sub = outcomeExhausted
		}

		if sub == outcomeSolved {
			return result, outcomeSolved
		}

		domains.restoreFrom(snapshot)
		delete(assignment, slotID)
		delete(e.used, val.Word)

		if sub == outcomeAborted {
			return nil, outcomeAborted
		}

		e.backtracks++
		e.reportProgress()
		if e.backtracks > e.budgets.BacktrackBudget {
			e.failureReason = BacktrackBudgetExhausted
			return nil, outcomeAborted
		}
	}

	return nil, outcomeExhausted
}

// selectUnassigned applies MRV (fewest remaining domain values), breaking
// ties by degree (most unassigned neighbors), breaking further ties by a
// fixed (row, col, orientation) order so two runs over the same puzzle
// always pick the same slot.
func (e *Engine) selectUnassigned(domains Domains, assignment Assignment) (grid.ID, bool) {
	var candidates []grid.Slot
	for _, s := range e.graph.Slots() {
		if _, done := assignment[s.ID()]; !done {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return grid.ID{}, false
	}

	minSize := -1
	for _, s := range candidates {
		n := len(domains[s.ID()])
		if minSize == -1 || n < minSize {
			minSize = n
		}
	}
	tied := filterSlots(candidates, func(s grid.Slot) bool { return len(domains[s.ID()]) == minSize })

	if len(tied) > 1 {
		maxDegree := -1
		degree := make(map[grid.ID]int, len(tied))
		for _, s := range tied {
			d := 0
			for _, edge := range e.graph.Neighbors(s.ID()) {
				if _, done := assignment[edge.Other.ID()]; !done {
					d++
				}
			}
			degree[s.ID()] = d
			if d > maxDegree {
				maxDegree = d
			}
		}
		tied = filterSlots(tied, func(s grid.Slot) bool { return degree[s.ID()] == maxDegree })
	}

	sort.Slice(tied, func(i, j int) bool {
		a, b := tied[i], tied[j]
		if a.StartRow != b.StartRow {
			return a.StartRow < b.StartRow
		}
		if a.StartCol != b.StartCol {
			return a.StartCol < b.StartCol
		}
		return a.Orientation < b.Orientation
	})
	return tied[0].ID(), true
}

func filterSlots(in []grid.Slot, keep func(grid.Slot) bool) []grid.Slot {
	out := make([]grid.Slot, 0, len(in))
	for _, s := range in {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// orderValues implements least-constraining-value: prefer the candidate
// that rules out the fewest options in unassigned neighbors' domains,
// breaking ties by quality descending, then lexicographically for a total
// deterministic order.
func (e *Engine) orderValues(slotID grid.ID, domains Domains, assignment Assignment) []wordsupply.Entry {
	domain := domains[slotID]
	type scored struct {
		entry wordsupply.Entry
		lost  int
	}
	scores := make([]scored, len(domain))
	for i, cand := range domain {
		lost := 0
		for _, edge := range e.graph.Neighbors(slotID) {
			if _, done := assignment[edge.Other.ID()]; done {
				continue
			}
			for _, w2 := range domains[edge.Other.ID()] {
				if w2.Word == cand.Word || w2.Word[edge.OtherIdx] != cand.Word[edge.SelfIdx] {
					lost++
				}
			}
		}
		scores[i] = scored{cand, lost}
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].lost != scores[j].lost {
			return scores[i].lost < scores[j].lost
		}
		if scores[i].entry.Quality != scores[j].entry.Quality {
			return scores[i].entry.Quality > scores[j].entry.Quality
		}
		return scores[i].entry.Word < scores[j].entry.Word
	})
	out := make([]wordsupply.Entry, len(scores))
	for i, s := range scores {
		out[i] = s.entry
	}
	return out
}

// simpleConsistent checks a candidate against every already-assigned
// neighbor directly, cheaper than running AC-3 just to catch an immediate
// letter clash.
func (e *Engine) simpleConsistent(slotID grid.ID, cand wordsupply.Entry, assignment Assignment) bool {
	for _, edge := range e.graph.Neighbors(slotID) {
		other, done := assignment[edge.Other.ID()]
		if !done {
			continue
		}
		if cand.Word[edge.SelfIdx] != other.Word[edge.OtherIdx] {
			return false
		}
	}
	return true
}
