// Package automaton builds the multi-pattern matcher the scanner runs
// every request through: one Aho-Corasick automaton over every kept
// alias, plus the payload lookup needed to turn a raw pattern hit back
// into a registry entry.
package automaton

import (
	"time"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/filstack/VED-jurchecker/internal/logger"
	"github.com/filstack/VED-jurchecker/internal/registry"
)

// buildWarnThreshold is the build-time past which a warning is logged,
// matching spec.md §4.G's "a warning is emitted over 90s".
const buildWarnThreshold = 90 * time.Second

// collisionMediumThreshold and collisionHighThreshold set the risk
// bucket for an alias shared by more than 5 distinct entries.
const (
	collisionMediumThreshold = 6
	collisionHighThreshold   = 11
)

// Match is one raw automaton hit, byte offsets into the haystack that
// was scanned, resolved to the entry that currently owns the alias.
type Match struct {
	Start int
	End   int
	Alias string
	Entry registry.Entry
}

// Index is the immutable, read-only-after-build automaton plus its
// alias→entry payload table. Safe for concurrent use by any number of
// scan goroutines once Build returns.
//
// Payload semantics are last-insert-wins: if more than one entry shares
// the same alias text, only the most recently inserted entry owns it at
// scan time (kept exactly as spec.md documents — collisions are
// reported for offline review, not resolved into a fan-out list).
type Index struct {
	ac       ahocorasick.AhoCorasick
	patterns []string
	payload  []registry.Entry // payload[i] = current owner of patterns[i]
}

// FindAll returns the non-overlapping hits of the kept aliases in
// haystack, one Match per hit resolved to its pattern's current owning
// entry. Hits are found left to right, preferring the longest alias at
// each position; an alias occurrence that overlaps an earlier reported
// hit is not reported.
func (idx *Index) FindAll(haystack string) []Match {
	hits := idx.ac.FindAll(haystack)
	out := make([]Match, 0, len(hits))
	for _, h := range hits {
		pid := h.Pattern()
		out = append(out, Match{
			Start: h.Start(),
			End:   h.End(),
			Alias: idx.patterns[pid],
			Entry: idx.payload[pid],
		})
	}
	return out
}

// PatternCount reports how many distinct aliases the index was built from.
func (idx *Index) PatternCount() int { return len(idx.patterns) }

// Bundle is the serializable snapshot of an Index, gob-encoded by
// internal/cache and reloaded without rerunning alias generation.
type Bundle struct {
	Patterns []string
	Payloads []registry.Entry
}

// ToBundle snapshots idx for persistence.
func (idx *Index) ToBundle() Bundle {
	return Bundle{Patterns: idx.patterns, Payloads: idx.payload}
}

// FromBundle reconstructs an Index from a previously serialized Bundle,
// skipping alias generation and collision logging entirely — the
// bundle's patterns and payload ownership were already decided the last
// time Build ran.
func FromBundle(b Bundle) *Index {
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: false,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	ac := builder.Build(b.Patterns)
	return &Index{ac: ac, patterns: b.Patterns, payload: b.Payloads}
}

// aliasSource supplies, for a given entry, the list of aliases already
// normalized and filtered by the dangerous-alias filter — the automaton
// builder itself does no expansion or filtering, it only indexes.
type aliasSource func(entry registry.Entry) []string

// Build constructs an Index over every entry's aliases (produced by
// aliasFor), logging per-entry alias_count/single_word_count/is_person
// metrics and alias→entry collisions as it goes, grounded on
// other_examples/7dfbf405_..._dafsa-dictionary.go.go's
// ahocorasick.NewAhoCorasickBuilder(...).Build(patterns) usage — "single
// AC automaton serves as both dictionary lookup AND text scanner".
func Build(entries []registry.Entry, aliasFor aliasSource, log *logger.Logger) *Index {
	start := time.Now()

	patternIndex := make(map[string]int)
	var patterns []string
	var payload []registry.Entry
	collisionIDs := make([]map[string]struct{}, 0)

	for _, entry := range entries {
		aliases := aliasFor(entry)

		singleWordCount := 0
		for _, a := range aliases {
			if !containsSpace(a) {
				singleWordCount++
			}
		}
		log.Debugf("ALIAS_METRICS", "entry_id=%s alias_count=%d single_word_count=%d is_person=%v",
			entry.ID, len(aliases), singleWordCount, registry.IsPerson(entry.Name))

		for _, a := range aliases {
			idx, exists := patternIndex[a]
			if !exists {
				idx = len(patterns)
				patterns = append(patterns, a)
				patternIndex[a] = idx
				payload = append(payload, entry)
				collisionIDs = append(collisionIDs, map[string]struct{}{entry.ID: {}})
				continue
			}

			// Last-insert-wins: the newest entry becomes the live owner,
			// but every distinct entry that ever claimed this alias still
			// counts toward the collision risk tally.
			payload[idx] = entry
			collisionIDs[idx][entry.ID] = struct{}{}
			if n := len(collisionIDs[idx]); n == collisionMediumThreshold || n == collisionHighThreshold {
				logCollision(log, a, n)
			}
		}
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: false,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	ac := builder.Build(patterns)

	elapsed := time.Since(start)
	if elapsed > buildWarnThreshold {
		log.Warnf("AUTOMATON_BUILD", "build took %s for %d patterns, exceeding %s budget",
			elapsed, len(patterns), buildWarnThreshold)
	} else {
		log.Infof("AUTOMATON_BUILD", "built %d patterns from %d entries in %s", len(patterns), len(entries), elapsed)
	}

	return &Index{ac: ac, patterns: patterns, payload: payload}
}

func logCollision(log *logger.Logger, alias string, entryCount int) {
	risk := "medium"
	if entryCount > collisionHighThreshold-1 {
		risk = "high"
	}
	log.Warnf("ALIAS_COLLISION", "alias=%q entry_count=%d risk=%s", alias, entryCount, risk)
}

func containsSpace(s string) bool {
	for _, r := range s {
		if r == ' ' {
			return true
		}
	}
	return false
}
