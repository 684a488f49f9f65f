package courts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	entry, err := Lookup("tjsp-cjsg")
	if err != nil {
		t.Fatal(err)
	}

	profile := entry.Profile()
	require.Equal(t, "tjsp-cjsg", profile.Name())
	require.NotEmpty(t, entry.BaseUrl)

	_, err = Lookup("tjxx")
	require.Error(t, err)
}

func TestEveryEntryIsComplete(t *testing.T) {
	for _, name := range Names() {
		entry, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		profile := entry.Profile()
		require.NotNil(t, profile.Strategy, name)
		require.NotNil(t, profile.PageCount, name)
		require.NotNil(t, profile.Extractor, name)
		require.Greater(t, profile.PageSize, 0, name)
	}
}

func TestNamesAreSorted(t *testing.T) {
	names := Names()
	require.IsIncreasing(t, names)
	require.Contains(t, names, "tjrs")
	require.Contains(t, names, "tjpr")
}
