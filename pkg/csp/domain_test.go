package csp

import (
	"testing"

	"github.com/TrailLensCo/crosswordgenerator/pkg/grid"
)

func TestDomainsClone_IsIndependent(t *testing.T) {
	id := grid.ID{Row: 0, Col: 0, Orientation: grid.Across}
	original := Domains{id: entries("AAAAA", "BBBBB")}

	clone := original.Clone()
	clone[id] = clone[id][:1]

	if len(original[id]) != 2 {
		t.Errorf("mutating the clone affected the original: len = %d, want 2", len(original[id]))
	}
}

func TestDomainsRestoreFrom_UndoesMutation(t *testing.T) {
	idA := grid.ID{Row: 0, Col: 0, Orientation: grid.Across}
	idB := grid.ID{Row: 0, Col: 0, Orientation: grid.Down}

	live := Domains{
		idA: entries("AAAAA", "BBBBB"),
		idB: entries("CCCCC"),
	}
	snapshot := live.Clone()

	live[idA] = live[idA][:1]
	delete(live, idB)
	live[idB] = entries("DDDDD")

	live.restoreFrom(snapshot)

	if len(live[idA]) != 2 {
		t.Errorf("restoreFrom did not undo the shrink: len(live[idA]) = %d, want 2", len(live[idA]))
	}
	if live[idB][0].Word != "CCCCC" {
		t.Errorf("restoreFrom did not undo the overwrite: live[idB] = %v", live[idB])
	}
}
