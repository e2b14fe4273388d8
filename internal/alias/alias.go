package alias

import (
	"strings"

	"github.com/filstack/VED-jurchecker/internal/config"
	"github.com/filstack/VED-jurchecker/internal/morph"
	"github.com/filstack/VED-jurchecker/internal/normalize"
	"github.com/filstack/VED-jurchecker/internal/registry"
)

// diminutiveMap maps a formal Russian given name to its common diminutive
// forms, verbatim from original_source/jur_checker.py's
// _build_diminutive_map.
var diminutiveMap = map[string][]string{
	"александр": {"саша", "сашка", "шура", "саня"},
	"алексей":   {"лёша", "леша", "алекс", "лёха", "алёша"},
	"владимир":  {"вова", "вовка", "володя"},
	"дмитрий":   {"дима", "митя", "димка"},
	"сергей":    {"серёжа", "сережа", "серёга"},
	"андрей":    {"андрюша", "дрюша"},
	"евгений":   {"женя", "женька"},
	"михаил":    {"миша", "мишка"},
	"николай":   {"коля", "колька", "николаша"},
	"иван":      {"ваня", "ванька", "ванечка"},
	"юрий":      {"юра", "юрка"},
	"анна":      {"аня", "анька", "нюра"},
	"мария":     {"маша", "машка", "маруся"},
	"елена":     {"лена", "ленка", "алёна"},
	"ольга":     {"оля", "олька"},
	"татьяна":   {"таня", "танька", "танюша"},
	"наталья":   {"наташа", "наташка"},
	"ирина":     {"ира", "ирка"},
	"екатерина": {"катя", "катюша", "катька"},
}

// Expand generates the complete set of searchable aliases for entry,
// applying the entity-type-specific strategy (or, when the CSV carries
// precomputed aliases, using those instead of generating any),
// filtering dangerous aliases per mode, and truncating to maxAliases.
func Expand(entry registry.Entry, mode config.Strictness, m morph.Provider, maxAliases int) []string {
	var raw []string
	if entry.AliasesPrecomputed != nil {
		raw = entry.AliasesPrecomputed
	} else {
		raw = ExpandAll(entry.Name, entry.Type, m, maxAliases)
	}

	normalized := make([]string, 0, len(raw))
	for _, a := range raw {
		if a == "" {
			continue
		}
		normalized = append(normalized, normalize.Simple(a))
	}

	safe := make([]string, 0, len(normalized))
	for _, a := range normalized {
		if !IsDangerous(a, mode) {
			safe = append(safe, a)
		}
	}

	unique := uniqueOrdered(safe)
	return prioritize(unique, maxAliases)
}

// ExpandAll dispatches to the type-appropriate strategy, mirroring
// original_source/jur_checker.py's expand_all: person names always get the
// full person-name strategy regardless of their registry type; only
// organizations are dispatched by entity type.
func ExpandAll(name string, typ registry.EntityType, m morph.Provider, maxAliases int) []string {
	if registry.IsPerson(name) {
		return expandPersonName(name, m, maxAliases)
	}

	switch typ {
	case registry.TypeTerrorist, registry.TypeTerroristOrExtremist:
		return expandTerrorist(name, m)
	case registry.TypeExtremist:
		return expandExtremist(name, m)
	case registry.TypeUndesirable:
		return expandUndesirable(name)
	default:
		return expandOrganizationName(name)
	}
}

func expandNameOrders(given, patronymic, surname string) []string {
	if patronymic != "" {
		return []string{
			given + " " + patronymic + " " + surname,
			given + " " + surname,
			surname + " " + given,
		}
	}
	return []string{
		given + " " + surname,
		surname + " " + given,
	}
}

func expandInitials(given, patronymic, surname string) []string {
	firstInitial := firstRune(given)
	variants := []string{
		firstInitial + ". " + surname,
		surname + " " + firstInitial + ".",
	}
	if patronymic != "" {
		patronymicInitial := firstRune(patronymic)
		variants = append(variants,
			firstInitial+"."+patronymicInitial+". "+surname,
			surname+" "+firstInitial+"."+patronymicInitial+".",
		)
	}
	return variants
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

func expandDiminutives(given string) []string {
	return diminutiveMap[strings.ToLower(given)]
}

// nameToken pairs a FIO token with the role it plays, so it can be
// declined with DeclineName's role-specific rule table.
type nameToken struct {
	text string
	role morph.NameRole
}

// personNameOrderTokens returns the role-tagged token sequence for each
// name-order variant expandNameOrders produces, so phrase declension
// can decline a given name, patronymic, and surname by their own
// grammar instead of treating the leading tokens as adjectives
// agreeing with a trailing noun.
func personNameOrderTokens(given, patronymic, surname string) [][]nameToken {
	if patronymic != "" {
		return [][]nameToken{
			{{given, morph.RoleGivenName}, {patronymic, morph.RolePatronymic}, {surname, morph.RoleSurname}},
			{{given, morph.RoleGivenName}, {surname, morph.RoleSurname}},
			{{surname, morph.RoleSurname}, {given, morph.RoleGivenName}},
		}
	}
	return [][]nameToken{
		{{given, morph.RoleGivenName}, {surname, morph.RoleSurname}},
		{{surname, morph.RoleSurname}, {given, morph.RoleGivenName}},
	}
}

// declinePersonPhrase declines every token in order by its own FIO
// role and gender, for every oblique case, joining each case's forms
// into one phrase variant. A token DeclineName can't handle falls back
// to its lowercased nominative form rather than dropping the variant.
func declinePersonPhrase(tokens []nameToken, gender morph.Gender, m morph.Provider) []string {
	variants := make([]string, 0, len(morph.AllCases))
	for _, c := range morph.AllCases {
		parts := make([]string, 0, len(tokens))
		for _, t := range tokens {
			if form, ok := m.DeclineName(t.text, t.role, c, gender); ok {
				parts = append(parts, form)
			} else {
				parts = append(parts, strings.ToLower(t.text))
			}
		}
		variants = append(variants, strings.Join(parts, " "))
	}
	return variants
}

// expandPhraseMorphology declines the last maxWords words of phrase as a
// noun phrase with adjective-noun agreement, mirroring
// original_source/jur_checker.py's expand_phrase_morphology. It is for
// organization/entity key phrases (e.g. a terrorist or extremist
// group's name), where the leading words genuinely are adjectives
// agreeing with a trailing noun head; person full names are declined
// by role via declinePersonPhrase instead.
func expandPhraseMorphology(phrase string, maxWords int, m morph.Provider) []string {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return nil
	}
	if len(words) > maxWords {
		words = words[len(words)-maxWords:]
	}

	if len(words) == 1 {
		forms, ok := m.Lexeme(words[0])
		if !ok {
			return nil
		}
		return forms
	}

	mainWord := words[len(words)-1]
	byCase, ok := m.LexemeByCase(mainWord)
	if !ok {
		return nil
	}

	variants := make([]string, 0, len(byCase))
	seen := make(map[string]struct{}, len(byCase))
	for _, c := range morph.AllCases {
		mainForm, present := byCase[c]
		if !present {
			continue
		}
		parts := make([]string, 0, len(words))
		for _, w := range words[:len(words)-1] {
			if infl, ok := m.AgreeAdjective(w, c); ok {
				parts = append(parts, infl)
			} else {
				parts = append(parts, strings.ToLower(w))
			}
		}
		parts = append(parts, mainForm)
		variant := strings.Join(parts, " ")
		if _, dup := seen[variant]; dup {
			continue
		}
		seen[variant] = struct{}{}
		variants = append(variants, variant)
	}
	return variants
}

func expandTerrorist(name string, m morph.Provider) []string {
	normalized := normalize.Simple(name)
	aliases := []string{normalized}

	words := strings.Fields(name)
	switch {
	case len(words) >= 2:
		keyPhrase := strings.Join(words[len(words)-2:], " ")
		prefix := ""
		if len(words) > 2 {
			prefix = strings.Join(words[:len(words)-2], " ")
		}
		for _, form := range expandPhraseMorphology(keyPhrase, 2, m) {
			if prefix != "" {
				aliases = append(aliases, normalize.Simple(prefix+" "+form))
			}
			aliases = append(aliases, normalize.Simple(form))
		}
	case len(words) == 1:
		if forms, ok := m.Lexeme(words[0]); ok {
			for _, f := range forms {
				aliases = append(aliases, normalize.Simple(f))
			}
		}
	}

	if strings.Contains(normalized, "исламское государство") || strings.Contains(normalized, "игил") {
		aliases = append(aliases, "игил", "иг", "isis", "isil", "даиш",
			"игила", "игилу", "игилом", "игиле")
	}
	if strings.Contains(normalized, "аль-каида") || strings.Contains(normalized, "аль каида") {
		aliases = append(aliases, "аль-каида", "аль каида", "al-qaeda", "al qaeda",
			"аль-каиды", "аль-каиде", "аль-каидой", "аль-каиде")
	}
	if strings.Contains(normalized, "талибан") {
		aliases = append(aliases, "талибан", "taliban")
	}

	return uniqueOrdered(aliases)
}

func expandExtremist(name string, m morph.Provider) []string {
	normalized := normalize.Simple(name)
	aliases := []string{normalized}

	words := strings.Fields(name)
	switch {
	case len(words) >= 2:
		keyPhrase := strings.Join(words[len(words)-2:], " ")
		prefix := ""
		if len(words) > 2 {
			prefix = strings.Join(words[:len(words)-2], " ")
		}
		for _, form := range expandPhraseMorphology(keyPhrase, 2, m) {
			if prefix != "" {
				aliases = append(aliases, normalize.Simple(prefix+" "+form))
			}
			// The short key-phrase form is always added, with or without
			// a prefix — matching the reference's "ВСЕГДА добавляем".
			aliases = append(aliases, normalize.Simple(form))
		}
	case len(words) == 1:
		if forms, ok := m.Lexeme(words[0]); ok {
			for _, f := range forms {
				aliases = append(aliases, normalize.Simple(f))
			}
		}
	}

	return uniqueOrdered(aliases)
}

func expandUndesirable(name string) []string {
	normalized := normalize.Simple(name)
	aliases := []string{normalized}

	if start := strings.Index(name, "("); start >= 0 {
		if end := strings.Index(name[start:], ")"); end >= 0 {
			alternate := name[start+1 : start+end]
			aliases = append(aliases, normalize.Simple(alternate))
		}
	}

	return uniqueOrdered(aliases)
}

func expandOrganizationName(name string) []string {
	return []string{normalize.Simple(name)}
}

// expandPersonName is the full expansion strategy for a person's full
// name: name orders, initials, phrase morphology of the full-name
// variants only, diminutives, transliterations, then a single-word
// purge, dedup and truncation — mirroring
// original_source/jur_checker.py's _expand_person_name exactly, including
// its comment that morphology is only ever applied to full (2-3 word)
// name variants, never to isolated surname/patronymic tokens.
func expandPersonName(name string, m morph.Provider, maxAliases int) []string {
	parsed := registry.ParseName(name)

	var allVariants []string

	nameOrders := expandNameOrders(parsed.Given, parsed.Patronymic, parsed.Surname)
	allVariants = append(allVariants, nameOrders...)
	allVariants = append(allVariants, expandInitials(parsed.Given, parsed.Patronymic, parsed.Surname)...)

	gender := m.InferGender(parsed.Patronymic, parsed.Surname)
	for _, tokens := range personNameOrderTokens(parsed.Given, parsed.Patronymic, parsed.Surname) {
		allVariants = append(allVariants, declinePersonPhrase(tokens, gender, m)...)
	}

	for _, dim := range expandDiminutives(parsed.Given) {
		if parsed.Patronymic != "" {
			allVariants = append(allVariants, dim+" "+parsed.Patronymic+" "+parsed.Surname)
		}
		allVariants = append(allVariants, dim+" "+parsed.Surname)
	}

	for _, v := range append([]string(nil), allVariants...) {
		if t, ok := transliterate(v); ok {
			allVariants = append(allVariants, t)
		}
	}

	normalized := make([]string, 0, len(allVariants))
	for _, v := range allVariants {
		normalized = append(normalized, normalize.Simple(v))
	}

	filtered := make([]string, 0, len(normalized))
	for _, v := range normalized {
		if strings.Contains(v, ".") || len(strings.Fields(v)) >= 2 {
			filtered = append(filtered, v)
		}
	}

	unique := uniqueOrdered(filtered)
	return prioritize(unique, maxAliases)
}

func uniqueOrdered(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func prioritize(aliases []string, maxAliases int) []string {
	if len(aliases) <= maxAliases {
		return aliases
	}
	return aliases[:maxAliases]
}
