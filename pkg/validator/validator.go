// Package validator implements the Structural Validator: it verifies
// symmetry, full connectivity, minimum slot length, full checkedness, and
// a bounded block ratio, exposing a single predicate that returns a
// tagged result naming the first failing invariant. Validation gates the
// CSP engine; failure is reported upward, never silently repaired.
package validator

import (
	"fmt"

	"github.com/TrailLensCo/crosswordgenerator/pkg/grid"
)

// Reason identifies which invariant failed, or that none did.
type Reason int

const (
	OK Reason = iota
	NotSymmetric
	NotConnected
	SlotTooShort
	NotFullyChecked
	BlockRatioExceeded
)

func (r Reason) String() string {
	switch r {
	case OK:
		return "ok"
	case NotSymmetric:
		return "not_symmetric"
	case NotConnected:
		return "not_connected"
	case SlotTooShort:
		return "slot_too_short"
	case NotFullyChecked:
		return "not_fully_checked"
	case BlockRatioExceeded:
		return "block_ratio_exceeded"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of Validate.
type Result struct {
	Reason  Reason
	Detail  string
	Slots   []grid.Slot // populated only when Reason == OK
}

func (r Result) OK() bool { return r.Reason == OK }

func (r Result) Error() string {
	if r.OK() {
		return ""
	}
	return fmt.Sprintf("%s: %s", r.Reason, r.Detail)
}

// DefaultMaxBlockRatio is the configurable ceiling on blocks / N^2.
const DefaultMaxBlockRatio = 0.16

// Options configures the validator. A zero Options uses DefaultMaxBlockRatio.
type Options struct {
	MaxBlockRatio float64
}

func (o Options) maxBlockRatio() float64 {
	if o.MaxBlockRatio <= 0 {
		return DefaultMaxBlockRatio
	}
	return o.MaxBlockRatio
}

// Validate checks every grid invariant named in the data model, in the
// order symmetry, connectivity, minimum slot length, full checkedness,
// block ratio, and returns the first failing one. The only change it makes
// to g is the cell numbering that g.EnumerateSlots stamps onto it.
func Validate(g *grid.Grid, opts Options) Result {
	if reason, detail := checkSymmetry(g); reason != OK {
		return Result{Reason: reason, Detail: detail}
	}

	if !g.CheckConnectivity() {
		return Result{Reason: NotConnected, Detail: "not every letter cell is reachable from every other letter cell"}
	}

	slots := g.EnumerateSlots()
	for _, s := range slots {
		if s.Length < 3 {
			return Result{Reason: SlotTooShort, Detail: fmt.Sprintf("%s has length %d, minimum is 3", s, s.Length)}
		}
	}

	if !grid.FullyChecked(g, slots) {
		return Result{Reason: NotFullyChecked, Detail: "some letter cell is missing an across or down slot"}
	}

	if ratio, max := g.BlockRatio(), opts.maxBlockRatio(); ratio > max {
		return Result{Reason: BlockRatioExceeded, Detail: fmt.Sprintf("block ratio %.4f exceeds ceiling %.4f", ratio, max)}
	}

	return Result{Reason: OK, Slots: slots}
}

func checkSymmetry(g *grid.Grid) (Reason, string) {
	n := g.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			isBlock := g.Cell(r, c).Kind == grid.Block
			tr, tc := n-1-r, n-1-c
			twinIsBlock := g.Cell(tr, tc).Kind == grid.Block
			if isBlock != twinIsBlock {
				return NotSymmetric, fmt.Sprintf("(%d,%d) block=%v but rotational twin (%d,%d) block=%v", r, c, isBlock, tr, tc, twinIsBlock)
			}
		}
	}
	return OK, ""
}
