// Package normalize provides the single text-normalization pass shared by
// alias generation and the scanner, so both sides of the match always agree
// on case folding and yo-letter collapsing.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, folds ё to е, and collapses any run of
// whitespace characters into a single space, matching the
// normalization the registry's aliases are built with (spec.md §4.A
// steps 2-3). It returns the normalized string and a table mapping
// each rune index of norm back to the byte offset of the corresponding
// run in s — a collapsed whitespace run maps to the byte offset of its
// first rune — so callers can slice the original text around a match
// found in norm.
func Normalize(s string) (norm string, offsets []int) {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	offsets = make([]int, 0, len(runes))

	byteOffset := 0
	lastWasSpace := false
	for _, r := range runes {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				out = append(out, ' ')
				offsets = append(offsets, byteOffset)
				lastWasSpace = true
			}
			byteOffset += len(string(r))
			continue
		}
		out = append(out, foldRune(r))
		offsets = append(offsets, byteOffset)
		byteOffset += len(string(r))
		lastWasSpace = false
	}
	offsets = append(offsets, byteOffset) // sentinel: end-of-string offset

	return string(out), offsets
}

func foldRune(r rune) rune {
	switch r {
	case 'Ё', 'ё':
		return 'е'
	default:
		return unicode.ToLower(r)
	}
}

// Simple normalizes alias text the same way a CSV-sourced alias is
// normalized before insertion into the automaton: Unicode-NFC-composed
// (registry CSVs and user-typed aliases alike sometimes carry
// decomposed Cyrillic, e.g. a base letter plus a combining breve, which
// would otherwise never match its precomposed counterpart), lowercased,
// ё→е, and whitespace collapsed to single spaces, trimmed. Grounded on
// thanchetlove1-services-address/internal/normalizer/accents.go's
// norm.NFC/transform.String usage.
func Simple(s string) string {
	composed := norm.NFC.String(s)
	normalized, _ := Normalize(composed)
	fields := strings.Fields(normalized)
	return strings.Join(fields, " ")
}

// ByteOffset translates a rune index into norm (as returned by Normalize)
// back to a byte offset into the original string s.
func ByteOffset(offsets []int, runeIdx int) int {
	if runeIdx < 0 {
		return 0
	}
	if runeIdx >= len(offsets) {
		return offsets[len(offsets)-1]
	}
	return offsets[runeIdx]
}
