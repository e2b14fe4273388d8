package alias

import "strings"

// cyrillicToLatin is the base letter map, matching the reversed "ru"
// scheme of the Python "transliterate" library original_source/jur_checker.py
// calls via translit(variant, 'ru', reversed=True).
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "c", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "ju", 'я': "ja",
}

// transliterate converts a Cyrillic variant to Latin and applies the
// phonetic simplifications from original_source/jur_checker.py's
// expand_transliterations: strip apostrophes, then yj→y, ij→iy, sej→sey,
// ju→yu, in that exact order.
func transliterate(variant string) (string, bool) {
	if !containsCyrillic(variant) {
		return "", false
	}

	var b strings.Builder
	for _, r := range strings.ToLower(variant) {
		if latin, ok := cyrillicToLatin[r]; ok {
			b.WriteString(latin)
		} else {
			b.WriteRune(r)
		}
	}

	out := b.String()
	out = strings.ReplaceAll(out, "'", "")
	out = strings.ReplaceAll(out, "yj", "y")
	out = strings.ReplaceAll(out, "ij", "iy")
	out = strings.ReplaceAll(out, "sej", "sey")
	out = strings.ReplaceAll(out, "ju", "yu")

	return out, true
}

func containsCyrillic(s string) bool {
	for _, r := range s {
		if r >= 0x0400 && r <= 0x04FF {
			return true
		}
	}
	return false
}
