// Package csp implements the CSP Engine: domain construction, AC-3 arc
// consistency with empty-domain oracle recovery, and MRV/degree/LCV
// backtracking search over a crossword skeleton's constraint graph.
package csp

import (
	"context"
	"time"

	"github.com/TrailLensCo/crosswordgenerator/pkg/constraintgraph"
	"github.com/TrailLensCo/crosswordgenerator/pkg/grid"
	"github.com/TrailLensCo/crosswordgenerator/pkg/validator"
	"github.com/TrailLensCo/crosswordgenerator/pkg/wordsupply"
)

// FailureReason names why Solve did not produce a fill.
type FailureReason int

const (
	None FailureReason = iota
	Unsolvable
	OracleBudgetExhausted
	BacktrackBudgetExhausted
	Cancelled
)

func (f FailureReason) String() string {
	switch f {
	case Unsolvable:
		return "unsolvable"
	case OracleBudgetExhausted:
		return "oracle_budget_exhausted"
	case BacktrackBudgetExhausted:
		return "backtrack_budget_exhausted"
	case Cancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Budgets caps the resources one Solve call may spend, per §4.4.3/§6.
type Budgets struct {
	NeighbourQuota   int // max candidates requested per oracle call
	OracleCallBudget int // max oracle calls across the whole solve
	BacktrackBudget  int // max abandoned-value-attempts before aborting
}

// DefaultBudgets returns the engine's documented defaults.
func DefaultBudgets() Budgets {
	return Budgets{NeighbourQuota: 20, OracleCallBudget: 50, BacktrackBudget: 10000}
}

// RunStats reports what one Solve call actually did, for hosts that
// stream progress (e.g. the SSE reporting in the service host).
type RunStats struct {
	OracleCalls int
	Backtracks  int
	Elapsed     time.Duration
}

// Outcome is the result of a Solve call.
type Outcome struct {
	Solved     bool
	Assignment Assignment
	Failure    FailureReason
	Stats      RunStats
}

// Engine runs one solve over one grid/supply/oracle combination. It is
// not safe for concurrent use or for reuse across grids; construct a new
// Engine per Solve call.
type Engine struct {
	grid   *grid.Grid
	graph  *constraintgraph.Graph
	supply *wordsupply.Supply
	oracle Oracle

	budgets Budgets

	used        map[string]bool
	oracleCalls int
	backtracks  int

	oracleBudgetHit bool
	failureReason   FailureReason

	start      time.Time
	onProgress func(RunStats)
}

// OnProgress registers a callback invoked with a live RunStats snapshot
// every time the oracle-call or backtrack counter advances. It exists
// for hosts that stream progress to a caller (the service's
// Server-Sent Events endpoint); it changes no engine behavior and is
// never required — a nil hook (the default) costs nothing.
func (e *Engine) OnProgress(fn func(RunStats)) {
	e.onProgress = fn
}

func (e *Engine) reportProgress() {
	if e.onProgress == nil {
		return
	}
	e.onProgress(RunStats{
		OracleCalls: e.oracleCalls,
		Backtracks:  e.backtracks,
		Elapsed:     time.Since(e.start),
	})
}

// New constructs an Engine for one solve attempt. oracle may be nil, in
// which case any empty-domain recovery attempt fails immediately.
func New(g *grid.Grid, supply *wordsupply.Supply, oracle Oracle, budgets Budgets) *Engine {
	slots := g.EnumerateSlots()
	return &Engine{
		grid:    g,
		graph:   constraintgraph.Build(slots),
		supply:  supply,
		oracle:  oracle,
		budgets: budgets,
		used:    make(map[string]bool),
	}
}

// Solve runs domain construction, initial AC-3, and backtracking search in
// sequence, per the state machine in §4.4.5. On success, it writes the
// solved letters back into the grid and re-runs the structural validator
// as a final consistency check before returning — the engine never hands
// back a partially-filled grid as if it were complete.
func (e *Engine) Solve(ctx context.Context) Outcome {
	start := time.Now()
	e.start = start

	domains, ok := e.buildInitialDomains(ctx)
	if !ok {
		return e.finish(nil, start)
	}

	if outcome := e.runAC3(ctx, domains, Assignment{}, e.initialArcs()); outcome != ac3Consistent {
		if outcome == ac3Aborted {
			e.failureReason = Cancelled
		}
		return e.finish(nil, start)
	}

	assignment, sub := e.search(ctx, domains, Assignment{})
	if sub != outcomeSolved {
		return e.finish(nil, start)
	}

	e.writeBack(assignment)
	if res := validator.Validate(e.grid, validator.Options{}); !res.OK() {
		// Should be unreachable given the engine only ever assigns
		// entries consistent with the skeleton's fixed letters, but a
		// fill the validator rejects is never handed to the caller as
		// a success.
		e.failureReason = Unsolvable
		return e.finish(nil, start)
	}

	return e.finish(assignment, start)
}

func (e *Engine) finish(assignment Assignment, start time.Time) Outcome {
	stats := RunStats{
		OracleCalls: e.oracleCalls,
		Backtracks:  e.backtracks,
		Elapsed:     time.Since(start),
	}
	if assignment != nil {
		return Outcome{Solved: true, Assignment: assignment, Stats: stats}
	}

	reason := e.failureReason
	if reason == None {
		if e.oracleBudgetHit {
			reason = OracleBudgetExhausted
		} else {
			reason = Unsolvable
		}
	}
	return Outcome{Solved: false, Failure: reason, Stats: stats}
}

// buildInitialDomains implements §4.4.1: every slot's domain is the set of
// supply entries of matching length consistent with the grid's fixed
// letters, with the empty-domain recovery protocol invoked immediately for
// any slot that starts out with nothing.
func (e *Engine) buildInitialDomains(ctx context.Context) (Domains, bool) {
	domains := make(Domains, len(e.graph.Slots()))
	assignment := Assignment{}

	for _, s := range e.graph.Slots() {
		var dom Domain
		for _, cand := range e.supply.Candidates(s.Length) {
			if consistentWithFixed(e.grid, s, cand.Word) {
				dom = append(dom, cand)
			}
		}
		domains[s.ID()] = dom

		if len(dom) == 0 {
			recovered, budgetBlocked := e.recoverEmptyDomain(ctx, domains, assignment, s.ID())
			if !recovered {
				if budgetBlocked {
					e.oracleBudgetHit = true
				}
				return domains, false
			}
		}
	}
	return domains, true
}

func consistentWithFixed(g *grid.Grid, s grid.Slot, word string) bool {
	for idx, coord := range s.Cells {
		cell := g.Cell(coord.Row, coord.Col)
		if cell.Kind == grid.LetterFixed && byte(cell.Letter) != word[idx] {
			return false
		}
	}
	return true
}

// writeBack commits a solved assignment's letters into the grid.
func (e *Engine) writeBack(assignment Assignment) {
	for id, entry := range assignment {
		slot, ok := e.graph.Slot(id)
		if !ok {
			continue
		}
		for idx, coord := range slot.Cells {
			e.grid.WriteLetter(coord.Row, coord.Col, rune(entry.Word[idx]))
		}
	}
}
