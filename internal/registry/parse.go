package registry

import "strings"

// ParsedName is a Russian full name split into its components. Patronymic
// is empty when name had only one or two tokens.
type ParsedName struct {
	Given      string
	Patronymic string
	Surname    string
}

// ParseName splits a full name string into given name, patronymic, and
// surname, following original_source/jur_checker.py's parse_person_name
// word-count dispatch exactly.
func ParseName(name string) ParsedName {
	parts := strings.Fields(name)

	switch len(parts) {
	case 0:
		return ParsedName{}
	case 1:
		// Single word: treat as both given name and surname.
		return ParsedName{Given: parts[0], Surname: parts[0]}
	case 2:
		return ParsedName{Given: parts[0], Surname: parts[1]}
	case 3:
		return ParsedName{Given: parts[0], Patronymic: parts[1], Surname: parts[2]}
	default:
		// 4+ parts: join the leading parts as the given name, second-to-last
		// is the patronymic, last is the surname.
		return ParsedName{
			Given:      strings.Join(parts[:len(parts)-2], " "),
			Patronymic: parts[len(parts)-2],
			Surname:    parts[len(parts)-1],
		}
	}
}
