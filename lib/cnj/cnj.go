// Package cnj handles the 20-digit standardized process number
// (numeração única) used as a search key by every brazilian court.
package cnj

import (
	"fmt"
	"strings"
)

type InvalidIdentifierError struct {
	Input string
}

func (e InvalidIdentifierError) Error() string {
	return fmt.Sprintf(
		"invalid CNJ number %q: expected 20 digits after cleaning, got %d",
		e.Input, len(Clean(e.Input)),
	)
}

// Parts holds the fixed-offset segments of a clean CNJ number,
// NNNNNNN-DD.AAAA.J.TR.OOOO.
type Parts struct {
	Sequential string
	CheckDigit string
	Year       string
	Branch     string
	Court      string
	Unit       string
}

// Clean strips dots, dashes and any other non-digit characters.
// It is lenient on purpose: validation happens in Split, which is
// the only operation that needs the number to be structurally sound.
func Clean(number string) string {
	var out strings.Builder
	for _, c := range number {
		if c >= '0' && c <= '9' {
			out.WriteRune(c)
		}
	}
	return out.String()
}

// Split slices a CNJ number (clean or formatted) into its segments.
func Split(number string) (Parts, error) {
	clean := Clean(number)
	if len(clean) != 20 {
		return Parts{}, InvalidIdentifierError{Input: number}
	}
	return Parts{
		Sequential: clean[0:7],
		CheckDigit: clean[7:9],
		Year:       clean[9:13],
		Branch:     clean[13:14],
		Court:      clean[14:16],
		Unit:       clean[16:20],
	}, nil
}

// Format renders a CNJ number in the standard NNNNNNN-DD.AAAA.J.TR.OOOO shape.
func Format(number string) (string, error) {
	p, err := Split(number)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"%s-%s.%s.%s.%s.%s",
		p.Sequential, p.CheckDigit, p.Year, p.Branch, p.Court, p.Unit,
	), nil
}
