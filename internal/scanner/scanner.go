// Package scanner runs incoming text through the compiled alias
// automaton and turns raw pattern hits into deduplicated Candidate
// results, the core request-path operation the rest of the service
// exists to serve.
package scanner

import (
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/filstack/VED-jurchecker/internal/automaton"
	"github.com/filstack/VED-jurchecker/internal/cache"
	"github.com/filstack/VED-jurchecker/internal/metrics"
	"github.com/filstack/VED-jurchecker/internal/normalize"
	"github.com/filstack/VED-jurchecker/internal/telemetry"
)

// contextRadius is the number of characters of original text kept on
// each side of a match, per spec.md §4.I step 5.
const contextRadius = 150

// Candidate is one candidate registry-entry mention found in a scan,
// not yet confirmed by a downstream verifier.
type Candidate struct {
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	EntityType string `json:"entity_type"`
	FoundAlias string `json:"found_alias"`
	Context    string `json:"context"`
}

// telemetryQueueSize bounds the async telemetry dispatch channel; a
// full queue drops the write rather than blocking the scan path,
// mirroring the teacher's ollamaSem "drop if busy" policy in
// anonymizer.dispatchOllamaAsync.
const telemetryQueueSize = 256

// Scanner holds the immutable automaton index built at startup and
// dispatches optional telemetry writes through a background goroutine
// so Scan itself never performs synchronous I/O beyond the automaton
// lookup — grounded on anonymizer.dispatchOllamaAsync's
// fire-and-forget-goroutine shape, repurposed here for telemetry
// instead of Ollama queries.
type Scanner struct {
	index       *automaton.Index
	quarantine  *cache.QuarantineStore // nil = no quarantine filtering
	telemetry   *telemetry.Writer      // nil = telemetry disabled
	metrics     *metrics.Metrics       // nil = no metrics
	telemetryCh chan telemetryJob
}

type telemetryJob struct {
	rec       telemetry.Record
	requestID string
}

// New constructs a Scanner over index. quarantineStore, telemetryWriter
// and m may all be nil to disable their respective features.
func New(index *automaton.Index, quarantineStore *cache.QuarantineStore, telemetryWriter *telemetry.Writer, m *metrics.Metrics) *Scanner {
	s := &Scanner{
		index:      index,
		quarantine: quarantineStore,
		telemetry:  telemetryWriter,
		metrics:    m,
	}
	if telemetryWriter != nil {
		s.telemetryCh = make(chan telemetryJob, telemetryQueueSize)
		go s.telemetryLoop()
	}
	return s
}

func (s *Scanner) telemetryLoop() {
	for job := range s.telemetryCh {
		rec := job.rec
		rec.RequestID = job.requestID
		s.telemetry.Append(rec)
	}
}

// Scan finds every registry entry mentioned in text, exact port of
// spec.md §4.I steps 1-7. It never fails; an empty slice is a valid
// result. requestID is optional and threaded through to telemetry only.
func (s *Scanner) Scan(ctx context.Context, text string, requestID string) []Candidate {
	norm, offsets := normalize.Normalize(text)
	runes := []rune(norm)

	hits := s.index.FindAll(norm)

	seen := make(map[string]struct{}, len(hits))
	candidates := make([]Candidate, 0, len(hits))

	for _, h := range hits {
		if s.quarantine != nil && s.quarantine.Contains(h.Alias) {
			continue
		}
		// The automaton reports byte offsets into norm; the boundary check
		// and the offset table both work in rune indexes.
		startRune := utf8.RuneCountInString(norm[:h.Start])
		endRune := utf8.RuneCountInString(norm[:h.End])
		if !s.isWordBoundary(runes, startRune, endRune) {
			continue
		}
		if _, dup := seen[h.Entry.ID]; dup {
			continue
		}
		seen[h.Entry.ID] = struct{}{}

		startByte := normalize.ByteOffset(offsets, startRune)
		endByte := normalize.ByteOffset(offsets, endRune)
		ctxText := extractContext(text, startByte, endByte)

		candidates = append(candidates, Candidate{
			EntityID:   h.Entry.ID,
			EntityName: h.Entry.Name,
			EntityType: string(h.Entry.Type),
			FoundAlias: h.Alias,
			Context:    ctxText,
		})
	}

	if s.metrics != nil {
		s.metrics.ScansTotal.Add(1)
		if len(candidates) > 0 {
			s.metrics.ScansWithMatch.Add(1)
		} else {
			s.metrics.ScansNoMatch.Add(1)
		}
		s.metrics.CandidatesEmitted.Add(int64(len(candidates)))
	}

	if s.telemetryCh != nil {
		for _, c := range candidates {
			s.dispatchTelemetry(c, requestID)
		}
	}

	return candidates
}

// isWordBoundary checks that the automaton hit at runes[start:end] is
// not a substring of a larger alphanumeric token, per spec.md §4.I
// step 3: the character immediately before start and immediately after
// end must not exist or must be non-alphanumeric (Unicode-aware).
func (s *Scanner) isWordBoundary(runes []rune, start, end int) bool {
	if start > 0 && isAlnum(runes[start-1]) {
		return false
	}
	if end < len(runes) && isAlnum(runes[end]) {
		return false
	}
	return true
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// extractContext slices the original text around the byte range
// [start,end), widened by up to contextRadius characters on each side
// and clamped to the string's own bounds — exact port of spec.md §4.I
// step 5.
func extractContext(text string, start, end int) string {
	lo := start
	for i := 0; i < contextRadius && lo > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
	}
	hi := end
	for i := 0; i < contextRadius && hi < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
	}
	return text[lo:hi]
}

func (s *Scanner) dispatchTelemetry(c Candidate, requestID string) {
	rec := telemetry.Record{
		Alias:      c.FoundAlias,
		EntityID:   c.EntityID,
		EntityName: c.EntityName,
		EntityType: c.EntityType,
		Context:    c.Context,
	}
	select {
	case s.telemetryCh <- telemetryJob{rec: rec, requestID: requestID}:
	default:
		if s.metrics != nil {
			s.metrics.ErrorsTelemetry.Add(1)
		}
	}
}

// Close stops the background telemetry goroutine, if one was started.
func (s *Scanner) Close() {
	if s.telemetryCh != nil {
		close(s.telemetryCh)
	}
}
