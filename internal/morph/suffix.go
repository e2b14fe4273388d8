package morph

import "strings"

// suffixTableProvider is the manual-suffix fallback used when petrovich
// can't parse a token — typically a transliterated or foreign-origin name,
// or a generic noun/adjective outside petrovich's FIO scope (organization
// phrases like "правый сектор"). It is grounded on
// original_source/jur_checker.py's apply_heuristic_fallback: a fixed set
// of five surface forms (base + four oblique-case suffixes) rather than a
// real declension, since a foreign surname's true Russian case endings
// can't be derived reliably from its spelling alone.
type suffixTableProvider struct{}

func newSuffixTableProvider() *suffixTableProvider { return &suffixTableProvider{} }

// oblique endings applied to a bare stem, in the fixed order
// original_source/jur_checker.py emits them: genitive, dative,
// instrumental, prepositional (jur_checker.py never produces an
// accusative heuristic form; matched here for fidelity).
var suffixEndings = map[Case]string{
	Genitive:      "ого",
	Dative:        "ому",
	Instrumental:  "ым",
	Prepositional: "ом",
}

func (s *suffixTableProvider) Lexeme(word string) ([]string, bool) {
	stem := lower(word)
	if stem == "" {
		return nil, false
	}
	forms := make([]string, 0, len(suffixEndings)+1)
	forms = append(forms, stem)
	for _, c := range []Case{Genitive, Dative, Instrumental, Prepositional} {
		forms = append(forms, stem+suffixEndings[c])
	}
	return forms, true
}

func (s *suffixTableProvider) LexemeByCase(word string) (map[Case]string, bool) {
	stem := lower(word)
	if stem == "" {
		return nil, false
	}
	byCase := make(map[Case]string, len(suffixEndings))
	for c, ending := range suffixEndings {
		byCase[c] = stem + ending
	}
	// No accusative heuristic in the reference source; surrogate with
	// the genitive ending for animate-noun agreement.
	byCase[Accusative] = byCase[Genitive]
	return byCase, true
}

func (s *suffixTableProvider) DeclineName(token string, role NameRole, c Case, g Gender) (string, bool) {
	stem := lower(token)
	if stem == "" {
		return "", false
	}
	if c == Nominative {
		return stem, true
	}
	ending, ok := suffixEndings[c]
	if !ok {
		// Accusative has no heuristic suffix in the reference source;
		// fall back to the genitive ending, which is the closest
		// surrogate for animate nouns in Russian declension.
		ending = suffixEndings[Genitive]
	}
	return stem + ending, true
}

func (s *suffixTableProvider) InferGender(patronymic, surname string) Gender {
	return Androgynous
}

// adjectiveNominativeEndings are the masculine singular nominative endings
// stripped before applying the shared oblique-case suffix table — the same
// five endings apply to adjectives and to the surname heuristic fallback
// in the reference source, so one table serves both.
var adjectiveNominativeEndings = []string{"ый", "ий", "ой"}

func (s *suffixTableProvider) AgreeAdjective(word string, c Case) (string, bool) {
	stem := lower(word)
	for _, ending := range adjectiveNominativeEndings {
		if strings.HasSuffix(stem, ending) {
			stem = strings.TrimSuffix(stem, ending)
			if c == Nominative {
				return word, true
			}
			suffix, ok := suffixEndings[c]
			if !ok {
				suffix = suffixEndings[Genitive]
			}
			return stem + suffix, true
		}
	}
	return "", false
}
