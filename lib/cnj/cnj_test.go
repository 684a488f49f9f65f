package cnj

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"1234567-89.2023.8.26.0100", "12345678920238260100"},
		{"12345678920238260100", "12345678920238260100"},
		{"0000000-00.0000.0.00.0000", "00000000000000000000"},
		{"123", "123"},
		{"", ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, Clean(test.input))
	}
}

func TestSplit(t *testing.T) {
	parts, err := Split("1234567-89.2023.8.26.0100")
	require.NoError(t, err)
	require.Equal(t, Parts{
		Sequential: "1234567",
		CheckDigit: "89",
		Year:       "2023",
		Branch:     "8",
		Court:      "26",
		Unit:       "0100",
	}, parts)
}

func TestSplitRejectsMalformedNumbers(t *testing.T) {
	for _, input := range []string{"", "123", "1234567-89.2023.8.26.01000", "abc"} {
		_, err := Split(input)
		var invalid InvalidIdentifierError
		require.True(t, errors.As(err, &invalid), "input %q should be rejected", input)
		require.Equal(t, input, invalid.Input)
	}
}

func TestFormat(t *testing.T) {
	formatted, err := Format("12345678920238260100")
	require.NoError(t, err)
	require.Equal(t, "1234567-89.2023.8.26.0100", formatted)
}

// normalize -> format -> normalize must be a fixed point.
func TestFormatRoundTrip(t *testing.T) {
	inputs := []string{
		"12345678920238260100",
		"1234567-89.2023.8.26.0100",
		"0000001-02.1999.4.03.6100",
	}
	for _, input := range inputs {
		formatted, err := Format(input)
		require.NoError(t, err)
		require.Equal(t, Clean(input), Clean(formatted))

		again, err := Format(formatted)
		require.NoError(t, err)
		require.Equal(t, formatted, again)
	}
}
