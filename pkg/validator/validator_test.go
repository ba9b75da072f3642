package validator

import (
	"testing"

	"github.com/TrailLensCo/crosswordgenerator/pkg/grid"
)

func TestValidate_OpenGridOK(t *testing.T) {
	g := grid.NewGrid(5)
	result := Validate(g, Options{})
	if !result.OK() {
		t.Fatalf("expected ok, got %v (%s)", result.Reason, result.Detail)
	}
	if len(result.Slots) != 10 {
		t.Errorf("expected 10 slots from a 5x5 open grid, got %d", len(result.Slots))
	}
}

func TestValidate_PlaceBlockAlwaysSymmetric(t *testing.T) {
	// PlaceBlock always couples a block with its rotational twin, so any
	// grid built solely through the public grid API should never fail the
	// symmetry check — this test documents that guarantee at the
	// validator boundary.
	g := grid.NewGrid(5)
	if err := g.PlaceBlock(0, 0); err != nil {
		t.Fatalf("PlaceBlock: %v", err)
	}
	if result := Validate(g, Options{}); result.Reason == NotSymmetric {
		t.Errorf("PlaceBlock-built grids should never fail symmetry")
	}
}

func TestValidate_BlockRatioExceeded(t *testing.T) {
	g := grid.NewGrid(5)
	// The validator reports the first failing invariant, so the grid must
	// pass every other check. The 5x5 corners layout (blocks at (0,0) and
	// (4,4)) does, but its ratio 2/25 = 0.08 is under the default 0.16
	// ceiling, so lower the ceiling instead.
	opts := Options{MaxBlockRatio: 0.01}
	result := Validate(g, opts)
	if result.Reason != OK {
		t.Fatalf("open 5x5 grid has zero blocks, so even a tiny ceiling should pass: %v", result.Reason)
	}

	if err := g.PlaceBlock(0, 0); err != nil {
		t.Fatalf("PlaceBlock: %v", err)
	}
	result = Validate(g, opts)
	if result.Reason != BlockRatioExceeded {
		t.Fatalf("expected block_ratio_exceeded for 2 blocks in 25 cells over a 0.01 ceiling, got %v (%s)", result.Reason, result.Detail)
	}
}

func Test3x3CenterColumnBlocks(t *testing.T) {
	g := grid.NewGrid(3)
	if err := g.PlaceBlock(1, 0); err != nil {
		t.Fatalf("PlaceBlock: %v", err)
	}
	result := Validate(g, Options{})
	if result.Reason != NotFullyChecked {
		t.Fatalf("expected the 3x3 centre-column-block grid to fail full checkedness (its corner and centre cells sit in length-1 runs), got %v (%s)", result.Reason, result.Detail)
	}
	if len(result.Slots) != 0 {
		t.Errorf("expected no slots on a rejected grid, got %d", len(result.Slots))
	}
}
