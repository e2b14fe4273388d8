package registry

import "strings"

// orgKeywords are substrings that, if present anywhere in a lowercased
// entity name, mark it as an organization regardless of word count.
// Verbatim from original_source/jur_checker.py's ORG_KEYWORDS.
var orgKeywords = []string{
	"фонд", "организация", "общество", "проект", "издание",
	"движение", "союз", "партнерство", "центр", "институт",
	"комитет", "ано", "оао", "ооо", "нко", "автономная",
	"некоммерческая", "благотворительный", "региональн",
	"межрегиональн", "общероссийск", "объединение",
	"группа", "компания", "корпорация", "ассоциация",
	"террористическ", "экстремистск", "сообщество",
}

// patronymicEndings identify a person name by a patronymic-shaped word
// among its tokens. Verbatim from original_source/jur_checker.py.
var patronymicEndings = []string{"ович", "евич", "овна", "евна", "ичем", "ична"}

// orgPatternWords exclude two-word phrases that look like a person name
// but are actually an organization ("Исламское государство").
var orgPatternWords = []string{"государство", "движение", "сообщество", "коммунистическ"}

// IsPerson decides whether name is a person's full name or an
// organization's name, following original_source/jur_checker.py's
// is_person_name ordered-rule logic exactly.
func IsPerson(name string) bool {
	nameLower := strings.ToLower(name)
	words := strings.Fields(name)

	// 1. Organization keywords are a hard override.
	for _, kw := range orgKeywords {
		if strings.Contains(nameLower, kw) {
			return false
		}
	}

	// 2. A patronymic-shaped word (longer than 5 runes, to avoid
	// accidental short-word matches) marks a person.
	for _, w := range words {
		if len([]rune(w)) > 5 && hasAnySuffix(strings.ToLower(w), patronymicEndings) {
			return true
		}
	}

	// 3. Two-word heuristic.
	if len(words) == 2 {
		for _, orgWord := range orgPatternWords {
			if strings.Contains(nameLower, orgWord) {
				return false
			}
		}
		if !strings.Contains(name, ".") && !containsDigit(name) {
			return true
		}
	}

	// 4. Three-word heuristic: hyphenated surname or just "no org keywords, 3 words".
	if len(words) == 3 {
		return true
	}

	// 5. Default: organization.
	return false
}

// classifyEntityType derives a canonical EntityType from the registry
// CSV's raw "type" column, which carries a Russian label rather than
// one of the five canonical tags. Matched by substring, in the order
// jur_checker.py's expand_all dispatch checks them: a label naming
// both a terrorist and an extremist list (Rosfinmonitoring publishes
// a single combined list) classifies as terrorist_or_extremist before
// the single-category checks run; an unrecognized or empty label
// defaults to foreign_agent.
func classifyEntityType(raw string) EntityType {
	lower := strings.ToLower(raw)
	isTerrorist := strings.Contains(lower, "террорист")
	isExtremist := strings.Contains(lower, "экстремист")

	switch {
	case isTerrorist && isExtremist:
		return TypeTerroristOrExtremist
	case isTerrorist:
		return TypeTerrorist
	case isExtremist:
		return TypeExtremist
	case strings.Contains(lower, "нежелательн"):
		return TypeUndesirable
	default:
		return TypeForeignAgent
	}
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
