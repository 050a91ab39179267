package player

import (
	"strings"
	"unicode/utf8"
)

// NameBrief abbreviates a display name using the convention of each sport.
func NameBrief(sport Sport, firstName, lastName string) string {
	firstInitial := firstRune(firstName)
	lastInitial := firstRune(lastName)

	switch sport {
	case SportFootball:
		return firstInitial + ". " + lastName
	case SportBasketball:
		return firstName + " " + lastInitial + "."
	case SportBaseball:
		return firstInitial + ". " + lastInitial + "."
	default:
		return strings.TrimSpace(firstName + " " + lastName)
	}
}

// LastNameInitial is the upper-cased first letter used for last-name search.
func LastNameInitial(lastName string) string {
	return strings.ToUpper(firstRune(strings.TrimSpace(lastName)))
}

func firstRune(v string) string {
	if v == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(v)
	if r == utf8.RuneError && size <= 1 {
		return v[:1]
	}
	return string(r)
}
