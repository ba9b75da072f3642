// Package wordsupply implements the Word Supply: a length-indexed
// container of candidate Entries with whole-supply uniqueness tracking and
// quality-weighted selection. It is the core's only source of candidate
// words; the CSP engine grows it at runtime through the empty-domain
// recovery protocol (§4.4.4 of the specification) but never otherwise
// mutates it.
package wordsupply

import (
	"sort"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
)

// Supply owns every Entry known to one solve. Equal words are deduplicated
// across the whole supply regardless of which load call introduced them.
type Supply struct {
	byLength map[int][]Entry
	seen     map[string]bool
	excluded map[string]bool
}

// New returns an empty Supply.
func New() *Supply {
	return &Supply{
		byLength: make(map[int][]Entry),
		seen:     make(map[string]bool),
		excluded: make(map[string]bool),
	}
}

// LoadExcluded marks words as permanently ineligible: every later
// LoadBase, LoadThemed, or Add call silently drops them, and any
// already-loaded entry for one of them is removed. There is no
// un-exclude operation, matching the host CLI's one-shot -excluded
// file contract.
func (s *Supply) LoadExcluded(words []string) int {
	n := 0
	for _, raw := range words {
		word := strings.ToUpper(strings.TrimSpace(raw))
		if word == "" || s.excluded[word] {
			continue
		}
		s.excluded[word] = true
		n++
		if s.seen[word] {
			delete(s.seen, word)
			l := len(word)
			kept := s.byLength[l][:0]
			for _, e := range s.byLength[l] {
				if e.Word != word {
					kept = append(kept, e)
				}
			}
			s.byLength[l] = kept
		}
	}
	return n
}

// LoadBase ingests base words. Per the seed interface, entries failing
// length or alphabet validation are dropped silently; LoadBase returns the
// count actually added so callers can still observe drop counts for
// reporting without the core raising an error for bad input.
func (s *Supply) LoadBase(words []string) int {
	return s.load(words, Base, 0)
}

// LoadThemed ingests themed words with a priority boost applied once at
// ingest time: stored quality is min(1.0, base_quality + priority_boost),
// resolving the open question left by the distilled seed interface (see
// SPEC_FULL.md §10.6).
func (s *Supply) LoadThemed(words []string, priorityBoost float64) int {
	return s.load(words, Themed, priorityBoost)
}

func (s *Supply) load(words []string, origin Origin, boost float64) int {
	added := 0
	for _, raw := range words {
		word := strings.ToUpper(strings.TrimSpace(raw))
		ok, _ := ValidEntry(word)
		if !ok {
			continue
		}
		if s.excluded[word] {
			continue
		}
		if s.seen[word] {
			continue
		}
		s.seen[word] = true
		quality := baseQuality(word)
		if boost > 0 {
			quality = quality + boost
			if quality > 1.0 {
				quality = 1.0
			}
		}
		entry := Entry{Word: word, Origin: origin, Quality: quality}
		l := len(word)
		s.byLength[l] = append(s.byLength[l], entry)
		added++
	}
	return added
}

// Add ingests already-constructed Entries, used by the engine's
// empty-domain recovery protocol to fold oracle responses into the supply.
// It returns the entries that were actually novel (not already present).
func (s *Supply) Add(entries []Entry) []Entry {
	var added []Entry
	for _, e := range entries {
		word := strings.ToUpper(strings.TrimSpace(e.Word))
		ok, _ := ValidEntry(word)
		if !ok {
			continue
		}
		if s.excluded[word] {
			continue
		}
		if s.seen[word] {
			continue
		}
		s.seen[word] = true
		e.Word = word
		s.byLength[len(word)] = append(s.byLength[len(word)], e)
		added = append(added, e)
	}
	return added
}

// Candidates returns every Entry of the given length, ordered by quality
// descending (ties broken lexicographically for a deterministic total
// order), per the global ordered-iteration requirement in §4.2.
func (s *Supply) Candidates(length int) []Entry {
	bucket := s.byLength[length]
	if len(bucket) == 0 {
		return nil
	}

	words := make([]string, 0, len(bucket))
	byWord := make(map[string]Entry, len(bucket))
	for _, e := range bucket {
		words = append(words, e.Word)
		byWord[e.Word] = e
	}
	words = slice.Unique(words)

	out := make([]Entry, len(words))
	for i, w := range words {
		out[i] = byWord[w]
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quality != out[j].Quality {
			return out[i].Quality > out[j].Quality
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// Contains reports whether word is already present in the supply,
// regardless of length bucket.
func (s *Supply) Contains(word string) bool {
	return s.seen[strings.ToUpper(word)]
}

// Get returns the canonical Entry for word, if the supply has ever seen it.
func (s *Supply) Get(word string) (Entry, bool) {
	word = strings.ToUpper(strings.TrimSpace(word))
	for _, e := range s.byLength[len(word)] {
		if e.Word == word {
			return e, true
		}
	}
	return Entry{}, false
}

// Size returns the total number of distinct entries across all lengths.
func (s *Supply) Size() int {
	return len(s.seen)
}

// Quality scores a word the same way the supply scores its own base and
// themed entries, exported so callers outside the package (the engine's
// oracle-recovery path) can stamp a comparable score on words they add
// directly via Add.
func Quality(word string) float64 {
	return baseQuality(strings.ToUpper(strings.TrimSpace(word)))
}

// baseQuality scores an entry using the 0.5*frequency-tier +
// 0.5*crossword-friendliness weighting named in §4.2. The core is
// agnostic to how this number is produced; this default heuristic favors
// shorter, vowel-balanced, common-letter words, which is a reasonable
// proxy for "crossword friendly" in the absence of a real frequency
// corpus, and is deliberately simple because the engine only ever needs a
// total order from it, never a particular value.
func baseQuality(word string) float64 {
	const commonLetters = "ETAOINSHRDLU"
	vowels := 0
	common := 0
	for _, r := range word {
		if strings.ContainsRune("AEIOU", r) {
			vowels++
		}
		if strings.ContainsRune(commonLetters, r) {
			common++
		}
	}
	n := float64(len(word))
	vowelBalance := 1.0 - abs(float64(vowels)/n-0.4)/0.4
	if vowelBalance < 0 {
		vowelBalance = 0
	}
	commonness := float64(common) / n

	lengthTier := 1.0 - float64(len(word)-3)/12.0
	if lengthTier < 0 {
		lengthTier = 0
	}

	friendliness := 0.6*vowelBalance + 0.4*commonness
	return clamp01(0.5*lengthTier + 0.5*friendliness)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
