package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// StripDiacritics removes combining marks, e.g. "Disponibilização"
// becomes "Disponibilizacao".
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeLabel folds a field label from a court page into the key form
// used by label maps: lowercase, no diacritics, no trailing colon, inner
// whitespace collapsed to single spaces.
func NormalizeLabel(label string) string {
	label = StripDiacritics(label)
	label = strings.ToLower(label)
	label = strings.Trim(label, " \n\t")
	label = strings.TrimSuffix(label, ":")
	label = strings.Trim(label, " \n\t")
	return whitespaceRegex.ReplaceAllString(label, " ")
}

// CollapseWhitespace trims the string and squashes inner runs of
// whitespace (including newlines) into single spaces.
func CollapseWhitespace(s string) string {
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

func MatchLabel(label string, matchers []string) bool {
	label = NormalizeLabel(label)
	for _, m := range matchers {
		if strings.Contains(label, m) {
			return true
		}
	}
	return false
}
