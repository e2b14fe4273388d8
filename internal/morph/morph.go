// Package morph declines Russian words and name phrases into their other
// grammatical cases, for the alias generator's phrase-morphology and
// full-name-declension steps.
//
// Provider is a capability interface rather than a concrete struct so the
// alias generator can be tested against a stub without loading a real
// declension ruleset.
package morph

import "strings"

// Case identifies a Russian grammatical case, independent of any single
// declension library's own naming.
type Case int

// The five oblique cases a registry alias needs, plus the nominative
// (dictionary) form aliases already start from.
const (
	Nominative Case = iota
	Genitive
	Dative
	Accusative
	Instrumental
	Prepositional
)

// AllCases lists every case Lexeme forms are generated for, nominative
// excluded since callers already hold that form.
var AllCases = []Case{Genitive, Dative, Accusative, Instrumental, Prepositional}

// Gender is the grammatical gender used to pick declension endings.
type Gender int

// Gender values. Androgynous covers names whose gender cannot be inferred
// from the available tokens.
const (
	Androgynous Gender = iota
	Male
	Female
)

// Provider declines Russian text. Lexeme produces the case forms of a
// single word's lexeme; AgreeAdjective declines an adjective into the case
// of the noun it modifies; DeclineName declines one token of a person's
// name by its role.
type Provider interface {
	// Lexeme returns every oblique-case form of word, lowercase and
	// deduplicated. ok is false if word could not be parsed as Russian
	// text (spec's "non-Cyrillic or very low confidence parse" case).
	Lexeme(word string) (forms []string, ok bool)

	// LexemeByCase returns word's form for each oblique case, keyed so a
	// caller can agree a second word (e.g. an adjective) to the same case
	// when declining a multi-word phrase.
	LexemeByCase(word string) (forms map[Case]string, ok bool)

	// DeclineName declines a person-name token (surname, given name, or
	// patronymic) into the given case and gender.
	DeclineName(token string, role NameRole, c Case, g Gender) (form string, ok bool)

	// InferGender guesses a person's gender from their patronymic and/or
	// surname, defaulting to Androgynous when no suffix matches.
	InferGender(patronymic, surname string) Gender

	// AgreeAdjective declines an adjective to match the grammatical case
	// of the noun it modifies, for phrase-level agreement (e.g. "правый
	// сектор" → "правого сектора"). ok is false when word isn't
	// recognizable as an adjective; callers should fall back to the
	// unmodified word in that case.
	AgreeAdjective(word string, c Case) (form string, ok bool)
}

// NameRole distinguishes which part of a FIO a token represents, since
// Russian given names, patronymics, and surnames decline with different
// rule tables.
type NameRole int

// Name-part roles for DeclineName.
const (
	RoleSurname NameRole = iota
	RoleGivenName
	RolePatronymic
)

// New returns the default Provider: petrovich-backed person-name
// declension with a suffix-table fallback for words petrovich's
// FIO-specific rules don't cover (organization-phrase nouns/adjectives).
func New() Provider {
	return &compositeProvider{
		petrovich: newPetrovichProvider(),
		suffix:    newSuffixTableProvider(),
	}
}

// compositeProvider tries petrovich's FIO rules first (they're the more
// precise, dictionary-grounded source for person names) and falls back to
// the suffix-table heuristics, matching the reference implementation's
// "morphology succeeded? use it : apply_heuristic_fallback" order.
type compositeProvider struct {
	petrovich Provider
	suffix    Provider
}

func (c *compositeProvider) Lexeme(word string) ([]string, bool) {
	if forms, ok := c.petrovich.Lexeme(word); ok {
		return forms, true
	}
	return c.suffix.Lexeme(word)
}

func (c *compositeProvider) LexemeByCase(word string) (map[Case]string, bool) {
	if forms, ok := c.petrovich.LexemeByCase(word); ok {
		return forms, true
	}
	return c.suffix.LexemeByCase(word)
}

func (c *compositeProvider) DeclineName(token string, role NameRole, cs Case, g Gender) (string, bool) {
	if form, ok := c.petrovich.DeclineName(token, role, cs, g); ok {
		return form, true
	}
	return c.suffix.DeclineName(token, role, cs, g)
}

func (c *compositeProvider) InferGender(patronymic, surname string) Gender {
	return c.petrovich.InferGender(patronymic, surname)
}

func (c *compositeProvider) AgreeAdjective(word string, cs Case) (string, bool) {
	if form, ok := c.petrovich.AgreeAdjective(word, cs); ok {
		return form, true
	}
	return c.suffix.AgreeAdjective(word, cs)
}

func isCyrillic(s string) bool {
	for _, r := range s {
		if r >= 0x0400 && r <= 0x04FF {
			return true
		}
	}
	return false
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
