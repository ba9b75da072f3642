package csp

import (
	"context"
	"strings"

	"github.com/TrailLensCo/crosswordgenerator/pkg/grid"
	"github.com/TrailLensCo/crosswordgenerator/pkg/wordsupply"
)

// recoverEmptyDomain implements the empty-domain recovery protocol
// (§4.4.4): construct the slot's current pattern, ask the oracle for up to
// NeighbourQuota fresh candidates excluding words already used elsewhere,
// filter the response for validity and pattern compliance, and fold
// whatever survives into both the supply and the slot's domain.
//
// It returns (recovered, budgetBlocked). budgetBlocked is true only when
// the call was refused because the oracle-call budget was already spent —
// the engine remembers that distinction so a solve that exhausts every
// possibility after at least one budget refusal reports
// oracle_budget_exhausted rather than the less specific unsolvable.
func (e *Engine) recoverEmptyDomain(ctx context.Context, domains Domains, assignment Assignment, slotID grid.ID) (recovered, budgetBlocked bool) {
	if e.oracle == nil {
		return false, false
	}
	if e.oracleCalls >= e.budgets.OracleCallBudget {
		return false, true
	}

	pattern := patternFor(e.grid, slotID, e.graph, assignment)
	used := e.usedWords()

	e.oracleCalls++
	e.reportProgress()
	words, err := e.oracle.Request(ctx, pattern, e.budgets.NeighbourQuota, used)
	if err != nil {
		words = nil
	}

	existing := domains[slotID]
	grew := false
	for _, raw := range words {
		word := strings.ToUpper(strings.TrimSpace(raw))
		if len(word) != len(pattern) {
			continue
		}
		if ok, _ := wordsupply.ValidEntry(word); !ok {
			continue
		}
		if !(wordsupply.Entry{Word: word}).Matches(pattern) {
			continue
		}
		if used[word] {
			continue
		}
		if existing.contains(word) {
			continue
		}
		e.supply.Add([]wordsupply.Entry{{Word: word, Origin: wordsupply.FromOracle, Quality: wordsupply.Quality(word)}})
		canonical, ok := e.supply.Get(word)
		if !ok {
			continue
		}
		existing = append(existing, canonical)
		grew = true
	}
	domains[slotID] = existing
	return grew, false
}

// usedWords returns the set of words currently committed to some slot,
// passed to the oracle so it never hands back a word already spoken for.
func (e *Engine) usedWords() map[string]bool {
	out := make(map[string]bool, len(e.used))
	for w := range e.used {
		out[w] = true
	}
	return out
}
