package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reCode     = regexp.MustCompile(`^[0-9]{6}$`)
	reSelector = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)
	reChoice   = regexp.MustCompile(`^[A-Za-z][A-Za-z ]{0,29}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Code accepts exactly six digits.
func Code(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reCode.MatchString(s)
}

// Selector validates slug-style ids: categories, subcategory compounds,
// price bands, sort keys.
func Selector(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reSelector.MatchString(s)
}

// Choice validates display values such as occasion and fabric names.
func Choice(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reChoice.MatchString(s)
}
