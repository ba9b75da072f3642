package csp

import (
	"testing"

	"github.com/TrailLensCo/crosswordgenerator/pkg/grid"
	"github.com/TrailLensCo/crosswordgenerator/pkg/wordsupply"
)

func TestSelectUnassigned_PrefersSmallestDomain(t *testing.T) {
	g := grid.NewGrid(5)
	e := New(g, wordsupply.New(), nil, DefaultBudgets())

	domains := make(Domains, len(e.graph.Slots()))
	for _, s := range e.graph.Slots() {
		domains[s.ID()] = entries("AAAAA", "BBBBB", "CCCCC")
	}
	smallest := e.graph.Slots()[3].ID()
	domains[smallest] = entries("AAAAA")

	got, ok := e.selectUnassigned(domains, Assignment{})
	if !ok {
		t.Fatalf("expected an unassigned slot")
	}
	if got != smallest {
		t.Errorf("selected %v, want the one-entry domain %v", got, smallest)
	}
}

func TestSelectUnassigned_TiesBreakByRowColOrientation(t *testing.T) {
	g := grid.NewGrid(5)
	e := New(g, wordsupply.New(), nil, DefaultBudgets())

	domains := make(Domains, len(e.graph.Slots()))
	for _, s := range e.graph.Slots() {
		domains[s.ID()] = entries("AAAAA")
	}

	got, ok := e.selectUnassigned(domains, Assignment{})
	if !ok {
		t.Fatalf("expected an unassigned slot")
	}
	want := e.graph.Slots()[0].ID() // Slots() is already sorted by (row, col, orientation)
	if got != want {
		t.Errorf("selected %v, want %v (the first slot in the fixed order)", got, want)
	}
}

func TestOrderValues_PrefersLeastConstraining(t *testing.T) {
	g := grid.NewGrid(5)
	e := New(g, wordsupply.New(), nil, DefaultBudgets())

	across := e.graph.Slots()[0]
	var i, j int
	var down grid.Slot
	for _, edge := range e.graph.Neighbors(across.ID()) {
		down = edge.Other
		i, j = edge.SelfIdx, edge.OtherIdx
		break
	}

	// "flexible" agrees with both of down's current entries' crossing
	// letter at some... no: craft down's domain so that "flexible" agrees
	// with ONE of two entries and "strict" agrees with neither, then
	// "flexible" should rank first because it removes fewer of down's
	// live candidates.
	downA := fillerWord(down.Length, j, 'Y', 'M')
	downB := fillerWord(down.Length, j, 'Y', 'N')
	flexible := fillerWord(across.Length, i, 'X', 'M') // matches downA
	strict := fillerWord(across.Length, i, 'X', 'Q')   // matches neither

	domains := make(Domains, len(e.graph.Slots()))
	for _, s := range e.graph.Slots() {
		domains[s.ID()] = entries("AAAAA")
	}
	domains[down.ID()] = entries(downA, downB)
	domains[across.ID()] = entries(strict, flexible)

	ordered := e.orderValues(across.ID(), domains, Assignment{})
	if len(ordered) != 2 {
		t.Fatalf("expected 2 ordered candidates, got %d", len(ordered))
	}
	if ordered[0].Word != flexible {
		t.Errorf("first candidate = %s, want %s (it rules out fewer of the neighbor's values)", ordered[0].Word, flexible)
	}
}

func TestSimpleConsistent_DetectsCrossingMismatch(t *testing.T) {
	g := grid.NewGrid(5)
	e := New(g, wordsupply.New(), nil, DefaultBudgets())

	across := e.graph.Slots()[0]
	var i, j int
	var down grid.Slot
	for _, edge := range e.graph.Neighbors(across.ID()) {
		down = edge.Other
		i, j = edge.SelfIdx, edge.OtherIdx
		break
	}

	assignment := Assignment{
		down.ID(): wordsupply.Entry{Word: fillerWord(down.Length, j, 'Y', 'M')},
	}

	agree := wordsupply.Entry{Word: fillerWord(across.Length, i, 'X', 'M')}
	disagree := wordsupply.Entry{Word: fillerWord(across.Length, i, 'X', 'Z')}

	if !e.simpleConsistent(across.ID(), agree, assignment) {
		t.Errorf("expected agree to be consistent with the assigned neighbor")
	}
	if e.simpleConsistent(across.ID(), disagree, assignment) {
		t.Errorf("expected disagree to conflict with the assigned neighbor")
	}
}
