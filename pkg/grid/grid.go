// Package grid implements the Grid Model: a square array of cells with
// 180-degree rotational symmetry on blocks, slot enumeration, and cell
// numbering. It is the single source of truth for fixed letters while a
// puzzle is being solved.
package grid

import (
	"fmt"
	"strings"
)

// Kind identifies what a Cell currently holds.
type Kind int

const (
	Block Kind = iota
	LetterEmpty
	LetterFixed
)

// Cell is one position in the grid.
//
// Invariant: a Block holds no letter and no entry number. A letter cell
// (LetterEmpty or LetterFixed) holds a letter only once solved or fixed.
type Cell struct {
	Row, Col int
	Kind     Kind
	Letter   rune // valid when Kind == LetterFixed, or after a solve writes it back
	Number   int  // 0 if this cell does not begin a slot
}

func (c Cell) IsLetter() bool {
	return c.Kind != Block
}

// Grid is a square N×N array of Cells.
type Grid struct {
	size  int
	cells [][]Cell
}

// NewGrid returns an N×N grid with every cell empty (no blocks, no fixed
// letters). N must be a positive, and for any puzzle meeting this
// package's invariants, odd.
func NewGrid(n int) *Grid {
	cells := make([][]Cell, n)
	for r := range cells {
		cells[r] = make([]Cell, n)
		for c := range cells[r] {
			cells[r][c] = Cell{Row: r, Col: c, Kind: LetterEmpty}
		}
	}
	return &Grid{size: n, cells: cells}
}

func (g *Grid) Size() int { return g.size }

func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.size && c >= 0 && c < g.size
}

func (g *Grid) Cell(r, c int) Cell {
	return g.cells[r][c]
}

// twin returns the coordinates related to (r, c) by 180-degree rotation.
func (g *Grid) twin(r, c int) (int, int) {
	return g.size - 1 - r, g.size - 1 - c
}

// PlaceBlock sets the cell and its rotational twin to Block. It fails if
// either cell currently holds a fixed letter: blocks never overwrite a
// letter the caller has pinned down.
func (g *Grid) PlaceBlock(r, c int) error {
	if !g.InBounds(r, c) {
		return fmt.Errorf("grid: (%d,%d) out of bounds for size %d", r, c, g.size)
	}
	tr, tc := g.twin(r, c)
	if g.cells[r][c].Kind == LetterFixed {
		return fmt.Errorf("grid: cannot block (%d,%d): holds a fixed letter", r, c)
	}
	if g.cells[tr][tc].Kind == LetterFixed {
		return fmt.Errorf("grid: cannot block (%d,%d): rotational twin (%d,%d) holds a fixed letter", r, c, tr, tc)
	}
	g.cells[r][c] = Cell{Row: r, Col: c, Kind: Block}
	g.cells[tr][tc] = Cell{Row: tr, Col: tc, Kind: Block}
	return nil
}

// FixLetter sets the cell to a fixed letter. There is no symmetry coupling
// on letters: only blocks are rotationally paired.
func (g *Grid) FixLetter(r, c int, ch rune) error {
	if !g.InBounds(r, c) {
		return fmt.Errorf("grid: (%d,%d) out of bounds for size %d", r, c, g.size)
	}
	if ch < 'A' || ch > 'Z' {
		return fmt.Errorf("grid: fixed letter %q is not an uppercase letter", ch)
	}
	if g.cells[r][c].Kind == Block {
		return fmt.Errorf("grid: cannot fix a letter on a block at (%d,%d)", r, c)
	}
	g.cells[r][c].Kind = LetterFixed
	g.cells[r][c].Letter = ch
	return nil
}

// WriteLetter records a solved letter without changing the cell's fixed
// status. Used by the solution hand-off helper (see the csp package).
func (g *Grid) WriteLetter(r, c int, ch rune) {
	g.cells[r][c].Letter = ch
}

// BlockCount returns the number of Block cells in the grid.
func (g *Grid) BlockCount() int {
	n := 0
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c].Kind == Block {
				n++
			}
		}
	}
	return n
}

// BlockRatio returns BlockCount / N^2.
func (g *Grid) BlockRatio() float64 {
	return float64(g.BlockCount()) / float64(g.size*g.size)
}

// Repr renders the grid as N lines of N characters: '.' for an unfilled
// letter cell, '#' for a block, and the letter itself otherwise.
func (g *Grid) Repr() string {
	lines := make([]string, g.size)
	for r := 0; r < g.size; r++ {
		var b strings.Builder
		for c := 0; c < g.size; c++ {
			cell := g.cells[r][c]
			switch {
			case cell.Kind == Block:
				b.WriteByte('#')
			case cell.Letter != 0:
				b.WriteRune(cell.Letter)
			default:
				b.WriteByte('.')
			}
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (g *Grid) DebugString() string {
	return fmt.Sprintf("Grid{size: %d}\n%s", g.size, g.Repr())
}

// Clone returns a deep copy of the grid, for callers that need to try a
// fill and keep the original skeleton untouched. The engine does not use
// it: it writes a solved fill into the grid it was given.
func (g *Grid) Clone() *Grid {
	cells := make([][]Cell, g.size)
	for r := range g.cells {
		cells[r] = make([]Cell, g.size)
		copy(cells[r], g.cells[r])
	}
	return &Grid{size: g.size, cells: cells}
}

// CheckConnectivity reports whether every letter cell is reachable from
// every other letter cell via 4-connected moves through letter cells.
func (g *Grid) CheckConnectivity() bool {
	var start *Cell
outer:
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c].IsLetter() {
				start = &g.cells[r][c]
				break outer
			}
		}
	}
	if start == nil {
		// No letter cells at all: vacuously connected.
		return true
	}

	visited := make([][]bool, g.size)
	for r := range visited {
		visited[r] = make([]bool, g.size)
	}

	queue := []struct{ r, c int }{{start.Row, start.Col}}
	visited[start.Row][start.Col] = true
	visitedCount := 1

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nr, nc := cur.r+d[0], cur.c+d[1]
			if !g.InBounds(nr, nc) || visited[nr][nc] {
				continue
			}
			if !g.cells[nr][nc].IsLetter() {
				continue
			}
			visited[nr][nc] = true
			visitedCount++
			queue = append(queue, struct{ r, c int }{nr, nc})
		}
	}

	totalLetters := 0
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c].IsLetter() {
				totalLetters++
			}
		}
	}
	return visitedCount == totalLetters
}
