package morph

import (
	"strings"

	"github.com/striker2000/petrovich"
)

// petrovichProvider declines person-name tokens with the petrovich rule
// set, the same library _examples/other_examples/01e57662_..._declension.go.go
// wraps for FIO inflection. Petrovich only knows about given names,
// patronymics and surnames — it has no notion of a generic noun lexeme, so
// Lexeme here only succeeds for tokens that look like one of those three
// roles (surname-shaped by default).
type petrovichProvider struct {
	rules *petrovich.Rules
}

func newPetrovichProvider() *petrovichProvider {
	rules, err := petrovich.LoadRules()
	if err != nil {
		// Ruleset ships with the library; a load failure here means the
		// fallback provider must carry the whole system. Record it as a
		// permanently-failed petrovich so callers fall through cleanly.
		return &petrovichProvider{rules: nil}
	}
	return &petrovichProvider{rules: rules}
}

func petrovichCase(c Case) petrovich.Case {
	switch c {
	case Genitive:
		return petrovich.Genitive
	case Dative:
		return petrovich.Dative
	case Accusative:
		return petrovich.Accusative
	case Instrumental:
		return petrovich.Instrumental
	case Prepositional:
		return petrovich.Prepositional
	default:
		return petrovich.Genitive
	}
}

func petrovichGender(g Gender) petrovich.Gender {
	switch g {
	case Male:
		return petrovich.Male
	case Female:
		return petrovich.Female
	default:
		return petrovich.Androgynous
	}
}

func (p *petrovichProvider) Lexeme(word string) ([]string, bool) {
	byCase, ok := p.LexemeByCase(word)
	if !ok {
		return nil, false
	}
	forms := make([]string, 0, len(byCase))
	seen := make(map[string]struct{}, len(byCase))
	for _, c := range AllCases {
		form, present := byCase[c]
		if !present {
			continue
		}
		if _, dup := seen[form]; dup {
			continue
		}
		seen[form] = struct{}{}
		forms = append(forms, form)
	}
	if len(forms) == 0 {
		return nil, false
	}
	return forms, true
}

func (p *petrovichProvider) LexemeByCase(word string) (map[Case]string, bool) {
	if p.rules == nil || !isCyrillic(word) {
		return nil, false
	}
	gender := p.InferGender("", word)
	byCase := make(map[Case]string, len(AllCases))
	for _, c := range AllCases {
		form := strings.ToLower(p.rules.InfLastname(lower(word), petrovichCase(c), petrovichGender(gender)))
		if form == "" {
			continue
		}
		byCase[c] = form
	}
	if len(byCase) == 0 {
		return nil, false
	}
	return byCase, true
}

func (p *petrovichProvider) DeclineName(token string, role NameRole, c Case, g Gender) (string, bool) {
	if p.rules == nil || strings.TrimSpace(token) == "" {
		return "", false
	}
	pc, pg := petrovichCase(c), petrovichGender(g)
	var out string
	switch role {
	case RoleGivenName:
		out = p.rules.InfFirstname(token, pc, pg)
	case RolePatronymic:
		out = p.rules.InfMiddlename(token, pc, pg)
	default:
		out = p.rules.InfLastname(token, pc, pg)
	}
	if out == "" {
		return "", false
	}
	return strings.ToLower(out), true
}

// AgreeAdjective always fails: petrovich only declines FIO tokens, not
// generic adjectives, so organization-phrase agreement always falls
// through to the suffix-table provider.
func (p *petrovichProvider) AgreeAdjective(word string, c Case) (string, bool) {
	return "", false
}

// InferGender mirrors the heuristic in
// _examples/other_examples/01e57662_normiridium-docxgen__modifiers-declension.go.go:
// patronymic suffix first (most reliable), surname suffix second.
func (p *petrovichProvider) InferGender(patronymic, surname string) Gender {
	pat := lower(patronymic)
	if strings.HasSuffix(pat, "ич") {
		return Male
	}
	if strings.HasSuffix(pat, "на") {
		return Female
	}

	last := lower(surname)
	switch {
	case strings.HasSuffix(last, "ов"), strings.HasSuffix(last, "ев"),
		strings.HasSuffix(last, "ин"), strings.HasSuffix(last, "ский"),
		strings.HasSuffix(last, "цкий"):
		return Male
	case strings.HasSuffix(last, "ова"), strings.HasSuffix(last, "ева"),
		strings.HasSuffix(last, "ина"), strings.HasSuffix(last, "ая"),
		strings.HasSuffix(last, "ская"):
		return Female
	}
	return Androgynous
}
