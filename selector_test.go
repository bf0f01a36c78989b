package skyblockextractor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	skyblockextractor "github.com/Sahaj33-op/Hypixel-SkyBlock-Profile-Extractor"
)

func summaries(names ...string) []skyblockextractor.ProfileSummary {
	profiles := make([]skyblockextractor.ProfileSummary, len(names))
	for i, name := range names {
		profiles[i] = skyblockextractor.ProfileSummary{ProfileID: name, CuteName: name}
	}
	if len(profiles) > 0 {
		profiles[0].Current = true
	}
	return profiles
}

func TestSelectEmpty(t *testing.T) {
	selected, err := skyblockextractor.Select(nil, "anything", nil)
	require.NoError(t, err)
	require.Nil(t, selected)
}

func TestSelectSingleIgnoresRequestedName(t *testing.T) {
	selected, err := skyblockextractor.Select(summaries("Apple"), "Banana", nil)
	require.NoError(t, err)
	require.Equal(t, "Apple", selected.CuteName)
}

func TestSelectByNameCaseFolded(t *testing.T) {
	selected, err := skyblockextractor.Select(summaries("Apple", "Banana"), "banana", nil)
	require.NoError(t, err)
	require.Equal(t, "Banana", selected.CuteName)
}

func TestSelectDefaultsToMostRecent(t *testing.T) {
	selected, err := skyblockextractor.Select(summaries("Apple", "Banana"), "", nil)
	require.NoError(t, err)
	require.Equal(t, "Apple", selected.CuteName)
	require.True(t, selected.Current)
}

func TestSelectUnmatchedNameFallsThroughToChooser(t *testing.T) {
	called := false
	choose := func(profiles []skyblockextractor.ProfileSummary) (int, error) {
		called = true
		return 1, nil
	}

	selected, err := skyblockextractor.Select(summaries("Apple", "Banana"), "Cherry", choose)
	require.NoError(t, err)
	require.True(t, called)
	require.Equal(t, "Banana", selected.CuteName)
}

func TestSelectChooserOutOfRangeDefaultsToFirst(t *testing.T) {
	choose := func(profiles []skyblockextractor.ProfileSummary) (int, error) {
		return 99, nil
	}

	selected, err := skyblockextractor.Select(summaries("Apple", "Banana"), "", choose)
	require.NoError(t, err)
	require.Equal(t, "Apple", selected.CuteName)
}
