package csp

import (
	"github.com/TrailLensCo/crosswordgenerator/pkg/grid"
	"github.com/TrailLensCo/crosswordgenerator/pkg/wordsupply"
)

// Domain is the finite set of Entries currently considered valid for one
// slot. It starts in the supply's quality order; AC-3 revision only ever
// removes elements, preserving relative order, while oracle recovery
// appends new entries at the end. Value ordering (orderValues) sorts its
// own copy and leaves the Domain as it is.
type Domain []wordsupply.Entry

func (d Domain) contains(word string) bool {
	for _, e := range d {
		if e.Word == word {
			return true
		}
	}
	return false
}

// Domains maps every slot to its current Domain. The engine's snapshot
// strategy is a full per-frame copy (design option (a) from §9): simple,
// obviously correct, and cheap enough at the domain sizes a crossword
// slot ever has.
type Domains map[grid.ID]Domain

// Clone returns a deep copy: a new map with a fresh, independently
// mutable slice per slot.
func (d Domains) Clone() Domains {
	out := make(Domains, len(d))
	for k, v := range d {
		cp := make(Domain, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// restoreFrom overwrites every domain in d with the corresponding value
// from snapshot, in place, so callers holding a reference to d observe
// the restored state without having to thread a replacement map back up
// through the call stack.
func (d Domains) restoreFrom(snapshot Domains) {
	for k, v := range snapshot {
		d[k] = v
	}
}
