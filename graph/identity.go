package graph

import "strconv"

// ParseIdentity strips the 2-character prefix from code and parses the rest as
// a base-10 integer: "nm0000001" -> 1.
//
// It reports false when code is too short, when its first two characters are
// not prefix (an empty prefix accepts any two characters), or when the
// remainder is not a plain run of decimal digits fitting in 31 bits. It never
// panics.
func ParseIdentity(code, prefix string) (int, bool) {
	if len(code) <= prefixLen {
		return 0, false
	}
	if prefix != "" && code[:prefixLen] != prefix {
		return 0, false
	}

	rest := code[prefixLen:]
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return 0, false
		}
	}

	v, err := strconv.ParseUint(rest, 10, 31)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// PersonIdentity parses a person code ("nm...")
func PersonIdentity(code string) (int, bool) {
	return ParseIdentity(code, PersonPrefix)
}

// GroupIdentity parses a title code ("tt...")
func GroupIdentity(code string) (int, bool) {
	return ParseIdentity(code, GroupPrefix)
}
