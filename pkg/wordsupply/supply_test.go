package wordsupply

import "testing"

func TestLoadBase_DropsInvalidSilently(t *testing.T) {
	s := New()
	added := s.LoadBase([]string{"cat", "a", "valid1", "DOG", "cat"})
	// "cat" -> CAT (valid, 3 letters), "a" too short, "valid1" has a digit,
	// "DOG" valid, second "cat" is a duplicate of CAT.
	if added != 2 {
		t.Errorf("LoadBase added = %d, want 2", added)
	}
	if s.Size() != 2 {
		t.Errorf("Size() = %d, want 2", s.Size())
	}
}

func TestLoadThemed_PriorityBoostClamped(t *testing.T) {
	s := New()
	s.LoadThemed([]string{"CAT"}, 10.0)
	cands := s.Candidates(3)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].Quality != 1.0 {
		t.Errorf("Quality = %v, want 1.0 (clamped)", cands[0].Quality)
	}
	if cands[0].Origin != Themed {
		t.Errorf("Origin = %v, want Themed", cands[0].Origin)
	}
}

func TestCandidates_OrderedByQualityDescendingThenLex(t *testing.T) {
	s := New()
	s.Add([]Entry{
		{Word: "ZZZ", Quality: 0.9, Origin: FromOracle},
		{Word: "AAA", Quality: 0.9, Origin: FromOracle},
		{Word: "BBB", Quality: 0.95, Origin: FromOracle},
	})
	cands := s.Candidates(3)
	want := []string{"BBB", "AAA", "ZZZ"}
	if len(cands) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(cands))
	}
	for i, w := range want {
		if cands[i].Word != w {
			t.Errorf("cands[%d] = %s, want %s", i, cands[i].Word, w)
		}
	}
}

func TestAdd_DeduplicatesAcrossWholeSupply(t *testing.T) {
	s := New()
	s.LoadBase([]string{"CAT"})
	added := s.Add([]Entry{{Word: "cat", Quality: 0.5, Origin: FromOracle}})
	if len(added) != 0 {
		t.Errorf("expected the duplicate to be rejected, got %v", added)
	}
	if s.Size() != 1 {
		t.Errorf("Size() = %d, want 1", s.Size())
	}
}

func TestLoadExcluded_DropsFutureAndExistingEntries(t *testing.T) {
	s := New()
	s.LoadBase([]string{"CAT", "DOG"})

	n := s.LoadExcluded([]string{"cat"})
	if n != 1 {
		t.Errorf("LoadExcluded added = %d, want 1", n)
	}
	if s.Contains("CAT") {
		t.Errorf("expected CAT to be removed after exclusion")
	}
	if !s.Contains("DOG") {
		t.Errorf("expected DOG to remain")
	}

	s.LoadBase([]string{"CAT"})
	if s.Contains("CAT") {
		t.Errorf("expected a later LoadBase to still honor the exclusion")
	}

	added := s.Add([]Entry{{Word: "cat", Origin: FromOracle}})
	if len(added) != 0 {
		t.Errorf("expected Add to honor the exclusion too, got %v", added)
	}
}

func TestEntry_Matches(t *testing.T) {
	e := Entry{Word: "LASER"}
	if !e.Matches(".A.ER") {
		t.Errorf("expected LASER to match .A.ER")
	}
	if e.Matches(".A.EQ") {
		t.Errorf("expected LASER not to match .A.EQ")
	}
	if e.Matches("....") {
		t.Errorf("expected length mismatch to fail")
	}
}
