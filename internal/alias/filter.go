// Package alias generates the full set of surface forms a registry entry
// can be mentioned under, and filters out the generated forms too
// dangerous (too generic) to search for.
package alias

import (
	"strings"
	"unicode"

	"github.com/filstack/VED-jurchecker/internal/config"
)

// commonRussianWords is the dangerous-alias word list, ported verbatim
// from original_source/jur_checker.py's COMMON_RUSSIAN_WORDS.
var commonRussianWords = buildCommonRussianWords()

func buildCommonRussianWords() map[string]struct{} {
	words := []string{
		// Top 50 (ultra-common, definite false positives)
		"и", "в", "не", "на", "с", "что", "а", "как", "по", "это",
		"он", "она", "они", "к", "но", "за", "у", "от", "о", "из",
		"для", "же", "до", "так", "мы", "вы", "я", "все", "был", "была",
		"было", "были", "быть", "если", "есть", "когда", "где", "кто", "или",
		"этот", "этого", "этой", "этих", "может", "можно", "нет", "да", "только",

		// Top 51-100 (common, likely false positives)
		"такой", "такая", "такое", "свой", "своя", "свое", "год", "день", "время",
		"два", "три", "раз", "один", "одна", "одно", "много", "мало", "более",
		"самый", "очень", "еще", "уже", "там", "здесь", "сейчас", "тогда", "потом",
		"тут", "вот", "после", "через", "без", "под", "над", "между", "при",
		"про", "нас", "вас", "них", "ним", "том", "тем", "которые", "который",
		"стать", "сказать", "говорить", "видеть", "знать", "сделать", "хотеть",

		// Abbreviations & prepositions causing false positives
		"со", "во", "ко", "об", "то", "бы", "ли", "ни",
		"ст", "ук", "рф", "км", "дон", "тр", "вс", "гг", "мид",

		// Common words from entity names
		"группа", "центр", "фонд", "союз", "комитет", "движение", "партия",
		"издание", "агентство", "первый", "второй", "развитие", "поддержка",
		"альянс", "команда", "проект", "отдел", "факт", "выбор", "инициатива",
		"весь", "вся", "максим", "сергей", "александр",
		"николай", "союзники", "исключение", "великобритания", "настоящее",
		"мемориал", "объединение",

		// Common words causing false positives (from 500-text analysis)
		"россия", "россии", "россию", "россией", "вместе", "процесс", "другой", "наши", "друг", "собеседник",
		"голосов", "городской", "научный", "выборы", "акцент", "граждане",

		// Common first names (high false positive risk)
		"андрей", "михаил", "антон", "олег", "татьяна", "роман", "илья",
		"виктор", "александра", "роберт", "дарья", "анастасия", "евгений",
		"дмитрий", "алексей", "иван", "петр", "павел", "юрий", "владимир",
		"игорь", "сергей",

		// Common patronymics
		"петрович", "александрович", "иванович", "сергеевич", "владимирович",
		"николаевич", "михайлович", "алексеевич", "дмитриевич", "андреевич",
		"евгеньевич", "олегович", "павлович", "юрьевич", "борисович",
		"анатольевич", "валерьевич", "викторович", "геннадьевич", "григорьевич",
		"петровна", "александровна", "ивановна", "сергеевна", "владимировна",
		"николаевна", "михайловна", "алексеевна", "дмитриевна", "андреевна",

		// Common adjectives causing false positives (single word)
		"свободная", "свободный", "открытый", "открытая", "новый", "новая",
		"старый", "старая", "белый", "белая", "черный", "черная", "красный",
		"красная", "синий", "синяя", "зеленый", "зеленая",

		// Generic organizational terms (too broad)
		"некоммерческая организация", "общественное объединение",
		"межрегиональное общественное объединение", "автономная некоммерческая организация",
		"общественная организация", "религиозная организация",

		// Country/region abbreviations
		"ссср", "сша", "фрг", "кнр", "рсфср", "усср", "бсср",

		// Three-letter words that are too generic
		"аль", "дон", "бен", "эль", "дер", "ван", "фон",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

var patronymicDangerEndings = []string{"ович", "евич", "ич", "овна", "евна", "ична", "инична"}

// IsDangerous reports whether alias is too generic or too risky to search
// for, per the five criteria in original_source/jur_checker.py's
// is_dangerous_alias. mode relaxes or tightens the criteria per spec.md §9.
func IsDangerous(aliasText string, mode config.Strictness) bool {
	a := strings.ToLower(strings.TrimSpace(aliasText))

	// Criterion 1: too short, always enforced regardless of mode — an
	// index with no minimum length defeats whole-word matching entirely.
	if len([]rune(a)) < 3 {
		return true
	}

	if mode == config.StrictnessAggressive {
		return false
	}

	// Criterion 2: in the common-word list.
	if _, common := commonRussianWords[a]; common {
		if mode == config.StrictnessBalanced && isSafeGivenName(a) {
			// balanced mode exempts a common-list word only when it is
			// one of the given names in safeGivenNames; every other
			// common-list word is still rejected.
		} else {
			return true
		}
	}

	// Criterion 3: digits/dots/spaces only.
	if isDigitsDotsSpacesOnly(a) {
		return true
	}

	// Criterion 4: single-word patronymic shorter than/equal to 10 runes.
	if !strings.Contains(a, " ") {
		if hasAnySuffix(a, patronymicDangerEndings) && len([]rune(a)) <= 10 {
			return true
		}
	}

	// Criterion 5: very long phrases.
	if len([]rune(a)) > 35 {
		return true
	}

	return false
}

// safeGivenNames are given names that, on their own, are unlikely to be
// confused with anything else — used only by balanced mode's exemption.
var safeGivenNames = map[string]struct{}{
	"александр": {}, "алексей": {}, "владимир": {}, "дмитрий": {}, "евгений": {},
	"иван": {}, "николай": {}, "юрий": {}, "анна": {}, "мария": {}, "елена": {},
	"ольга": {}, "татьяна": {}, "наталья": {}, "ирина": {}, "екатерина": {},
}

func isSafeGivenName(a string) bool {
	_, ok := safeGivenNames[a]
	return ok
}

func isDigitsDotsSpacesOnly(s string) bool {
	stripped := strings.NewReplacer(".", "", " ", "").Replace(s)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
