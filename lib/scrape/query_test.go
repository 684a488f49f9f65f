package scrape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageRangeClamp(t *testing.T) {
	testCases := []struct {
		name     string
		in       PageRange
		lastPage int
		expect   PageRange
		empty    bool
	}{
		{
			name:     "inside",
			in:       PageRange{Start: 2, End: 4},
			lastPage: 10,
			expect:   PageRange{Start: 2, End: 4},
		},
		{
			name:     "end past last page",
			in:       PageRange{Start: 2, End: 99},
			lastPage: 5,
			expect:   PageRange{Start: 2, End: 5},
		},
		{
			name:     "start below one",
			in:       PageRange{Start: 0, End: 3},
			lastPage: 10,
			expect:   PageRange{Start: 1, End: 3},
		},
		{
			name:     "entirely past the last page",
			in:       PageRange{Start: 7, End: 9},
			lastPage: 3,
			expect:   PageRange{Start: 7, End: 3},
			empty:    true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := tc.in.Clamp(tc.lastPage)
			require.Equal(t, tc.expect, out)
			require.Equal(t, tc.empty, out.Empty())
		})
	}
}
