package grid

import "fmt"

// Orientation distinguishes an across slot from a down slot.
type Orientation int

const (
	Across Orientation = iota
	Down
)

func (o Orientation) String() string {
	if o == Across {
		return "across"
	}
	return "down"
}

// Coord is a single cell coordinate within a slot.
type Coord struct {
	Row, Col int
}

// Slot is a maximal run of letter cells in one orientation: the unit a
// word fills. Identity is the pair (start, orientation); a Slot is
// immutable once enumeration produces it.
type Slot struct {
	StartRow, StartCol int
	Orientation        Orientation
	Length             int
	Cells              []Coord
	Number             int
}

// ID returns a value usable as a map key uniquely identifying this slot by
// its (start, orientation) identity, per the data model.
type ID struct {
	Row, Col int
	Orientation Orientation
}

func (s Slot) ID() ID {
	return ID{Row: s.StartRow, Col: s.StartCol, Orientation: s.Orientation}
}

func (s Slot) String() string {
	return fmt.Sprintf("%s@(%d,%d)len=%d#%d", s.Orientation, s.StartRow, s.StartCol, s.Length, s.Number)
}

// EnumerateSlots scans the grid for maximal horizontal and vertical runs of
// letter cells of length >= 2 (grid invariants disallow runs of length 1)
// and assigns entry numbers by walking cells in row-major order: a cell
// receives the next number if it begins an across slot or a down slot, and
// the same number is shared between coincident across/down starts.
func (g *Grid) EnumerateSlots() []Slot {
	acrossStarts := make(map[Coord]bool)
	downStarts := make(map[Coord]bool)

	var across, down []Slot

	for r := 0; r < g.size; r++ {
		c := 0
		for c < g.size {
			if !g.cells[r][c].IsLetter() {
				c++
				continue
			}
			start := c
			for c < g.size && g.cells[r][c].IsLetter() {
				c++
			}
			length := c - start
			if length >= 2 {
				cells := make([]Coord, length)
				for i := 0; i < length; i++ {
					cells[i] = Coord{Row: r, Col: start + i}
				}
				across = append(across, Slot{StartRow: r, StartCol: start, Orientation: Across, Length: length, Cells: cells})
				acrossStarts[Coord{Row: r, Col: start}] = true
			}
		}
	}

	for c := 0; c < g.size; c++ {
		r := 0
		for r < g.size {
			if !g.cells[r][c].IsLetter() {
				r++
				continue
			}
			start := r
			for r < g.size && g.cells[r][c].IsLetter() {
				r++
			}
			length := r - start
			if length >= 2 {
				cells := make([]Coord, length)
				for i := 0; i < length; i++ {
					cells[i] = Coord{Row: start + i, Col: c}
				}
				down = append(down, Slot{StartRow: start, StartCol: c, Orientation: Down, Length: length, Cells: cells})
				downStarts[Coord{Row: start, Col: c}] = true
			}
		}
	}

	// Assign numbers by row-major traversal of cells: a cell receives the
	// next number if it begins an across slot or a down slot.
	numberByCoord := make(map[Coord]int)
	next := 1
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			coord := Coord{Row: r, Col: c}
			if acrossStarts[coord] || downStarts[coord] {
				numberByCoord[coord] = next
				next++
			}
		}
	}

	for i := range across {
		start := Coord{Row: across[i].StartRow, Col: across[i].StartCol}
		across[i].Number = numberByCoord[start]
	}
	for i := range down {
		start := Coord{Row: down[i].StartRow, Col: down[i].StartCol}
		down[i].Number = numberByCoord[start]
	}

	// Stamp cell numbers onto the grid itself, for rendering hosts.
	for coord, num := range numberByCoord {
		g.cells[coord.Row][coord.Col].Number = num
	}

	slots := make([]Slot, 0, len(across)+len(down))
	slots = append(slots, across...)
	slots = append(slots, down...)
	return slots
}

// FullyChecked reports whether every letter cell belongs to exactly one
// across slot and exactly one down slot of length >= 3 — the "full
// checkedness" invariant combined with the minimum-slot-length invariant.
func FullyChecked(g *Grid, slots []Slot) bool {
	acrossCover := make(map[Coord]bool)
	downCover := make(map[Coord]bool)

	for _, s := range slots {
		if s.Length < 3 {
			return false
		}
		for _, coord := range s.Cells {
			if s.Orientation == Across {
				if acrossCover[coord] {
					return false // covered twice, shouldn't happen for maximal runs
				}
				acrossCover[coord] = true
			} else {
				if downCover[coord] {
					return false
				}
				downCover[coord] = true
			}
		}
	}

	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if !g.cells[r][c].IsLetter() {
				continue
			}
			coord := Coord{Row: r, Col: c}
			if !acrossCover[coord] || !downCover[coord] {
				return false
			}
		}
	}
	return true
}
