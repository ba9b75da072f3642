package grid

import "fmt"

// Pattern is a pre-validated block mask for a grid of a given size. Per
// the grid construction interface, a pattern stores only the upper-left
// block positions; ApplyTo applies 180-degree rotational symmetry on
// ingest so the caller never has to enumerate the mirrored half.
type Pattern struct {
	Name  string
	Size  int
	Blocks []Coord // upper-left-quadrant block coordinates only
}

// ApplyTo builds a new Grid of the pattern's size with every block in
// Blocks (and its rotational twin) placed.
func (p Pattern) ApplyTo() (*Grid, error) {
	g := NewGrid(p.Size)
	for _, b := range p.Blocks {
		if err := g.PlaceBlock(b.Row, b.Col); err != nil {
			return nil, fmt.Errorf("skeleton %q: %w", p.Name, err)
		}
	}
	return g, nil
}

// FromMask builds a Grid directly from an explicit set of block
// coordinates (which need not be confined to the upper-left quadrant);
// PlaceBlock's own symmetry coupling takes care of the twin regardless of
// which half of the grid a coordinate falls in.
func FromMask(size int, blocks []Coord) (*Grid, error) {
	g := NewGrid(size)
	for _, b := range blocks {
		if err := g.PlaceBlock(b.Row, b.Col); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Library is a collection of pre-validated skeleton patterns keyed by
// size, per the grid construction interface. Any odd N >= 5 may have zero
// or more entries; even N is never populated (see the design notes on
// even-N support).
type Library map[int][]Pattern

// Lookup returns the named pattern for the given size, or false if no
// pattern with that name is registered for that size.
func (l Library) Lookup(size int, name string) (Pattern, bool) {
	for _, p := range l[size] {
		if p.Name == name {
			return p, true
		}
	}
	return Pattern{}, false
}

// Names returns the names of every pattern registered for the given size.
func (l Library) Names(size int) []string {
	patterns := l[size]
	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = p.Name
	}
	return names
}

// StandardLibrary is a small library of pre-validated skeleton patterns
// for the classic odd sizes. Entries are intentionally conservative: every
// pattern here satisfies symmetry, connectivity, minimum slot length, full
// checkedness, and a block ratio well under the default 0.16 ceiling —
// callers needing a different shape should build a Pattern themselves and
// run it through the structural validator rather than trust an
// unregistered mask blindly.
// Every pattern below has been checked by hand against all five grid
// invariants (symmetry, connectivity, minimum slot length, full
// checkedness, block ratio) rather than merely asserted; a block placed at
// a non-edge, non-center offset in a short line very easily strands a
// length-1 or length-2 run, which is why most sizes below only carry the
// fully open pattern. Adding a denser named pattern for a size is safe to
// do incrementally — run the candidate mask through the structural
// validator (see the validator package) before registering it here.
var StandardLibrary = Library{
	5: {
		{Name: "open", Size: 5, Blocks: nil},
		// Corners only: removes (0,0) and, by symmetry, (4,4). Every
		// remaining line in both orientations is length 4 or 5.
		{Name: "corners", Size: 5, Blocks: []Coord{{Row: 0, Col: 0}}},
	},
	7: {
		{Name: "open", Size: 7, Blocks: nil},
		// Pinwheel: a block at the midpoint of each edge ((0,3) and (3,0)
		// here, (6,3) and (3,6) by symmetry), splitting that edge's line
		// into two length-3 runs; the centre row and centre column run
		// between the opposite pair at length 5.
		{Name: "pinwheel", Size: 7, Blocks: []Coord{
			{Row: 0, Col: 3}, {Row: 3, Col: 0},
		}},
	},
	9:  {{Name: "open", Size: 9, Blocks: nil}},
	11: {{Name: "open", Size: 11, Blocks: nil}},
	13: {{Name: "open", Size: 13, Blocks: nil}},
	15: {{Name: "open", Size: 15, Blocks: nil}},
	21: {{Name: "open", Size: 21, Blocks: nil}},
}
