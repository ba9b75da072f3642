package grid

import "testing"

func TestPlaceBlock_Symmetry(t *testing.T) {
	g := NewGrid(5)
	if err := g.PlaceBlock(0, 0); err != nil {
		t.Fatalf("PlaceBlock: %v", err)
	}
	if g.Cell(0, 0).Kind != Block {
		t.Errorf("expected (0,0) to be a block")
	}
	if g.Cell(4, 4).Kind != Block {
		t.Errorf("expected rotational twin (4,4) to be a block")
	}
}

func TestPlaceBlock_RejectsFixedLetter(t *testing.T) {
	g := NewGrid(5)
	if err := g.FixLetter(4, 4, 'A'); err != nil {
		t.Fatalf("FixLetter: %v", err)
	}
	if err := g.PlaceBlock(0, 0); err == nil {
		t.Errorf("expected PlaceBlock to fail when the rotational twin holds a fixed letter")
	}
}

func TestFixLetter_RejectsLowercaseAndNonAlpha(t *testing.T) {
	g := NewGrid(5)
	if err := g.FixLetter(0, 0, 'a'); err == nil {
		t.Errorf("expected lowercase letter to be rejected")
	}
	if err := g.FixLetter(0, 0, '1'); err == nil {
		t.Errorf("expected non-alphabetic rune to be rejected")
	}
}

func TestCheckConnectivity_OpenGrid(t *testing.T) {
	g := NewGrid(5)
	if !g.CheckConnectivity() {
		t.Errorf("expected an open 5x5 grid to be fully connected")
	}
}

func TestCheckConnectivity_CornersPattern(t *testing.T) {
	pattern, ok := StandardLibrary.Lookup(5, "corners")
	if !ok {
		t.Fatalf("expected a 5x5 'corners' pattern to be registered")
	}
	g, err := pattern.ApplyTo()
	if err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if !g.CheckConnectivity() {
		t.Errorf("expected the corners pattern to remain fully connected")
	}
	slots := g.EnumerateSlots()
	if !FullyChecked(g, slots) {
		t.Errorf("expected the corners pattern to be fully checked")
	}
}

func TestBlockRatio(t *testing.T) {
	g := NewGrid(5)
	if err := g.PlaceBlock(0, 0); err != nil {
		t.Fatalf("PlaceBlock: %v", err)
	}
	if got, want := g.BlockRatio(), 2.0/25.0; got != want {
		t.Errorf("BlockRatio() = %v, want %v", got, want)
	}
}

func TestRepr(t *testing.T) {
	g := NewGrid(3)
	if err := g.PlaceBlock(0, 0); err != nil {
		t.Fatalf("PlaceBlock: %v", err)
	}
	g.WriteLetter(0, 1, 'A')
	repr := g.Repr()
	if len(repr) == 0 {
		t.Fatalf("expected non-empty representation")
	}
}
