package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripDiacritics(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Disponibilização", "Disponibilizacao"},
		{"Órgão Julgador", "Orgao Julgador"},
		{"já ascii", "ja ascii"},
		{"plain", "plain"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, StripDiacritics(test.input))
	}
}

func TestNormalizeLabel(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Relator:", "relator"},
		{"Data  de \n Disponibilização:", "data de disponibilizacao"},
		{" Órgão Julgador : ", "orgao julgador"},
		{"Classe/Assunto:", "classe/assunto"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeLabel(test.input))
	}
}

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "a b c", CollapseWhitespace("  a \n\t b   c "))
}

func TestMatchLabel(t *testing.T) {
	require.True(t, MatchLabel("Data de Publicação:", []string{"publicacao"}))
	require.False(t, MatchLabel("Relator:", []string{"publicacao"}))
}
