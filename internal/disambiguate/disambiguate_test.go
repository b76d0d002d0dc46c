package disambiguate

import (
	"errors"
	"slices"
	"testing"

	"address-normalizer/internal/gazetteer"
	"address-normalizer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *gazetteer.Store {
	t.Helper()
	store, err := gazetteer.Build(slices.Values([]models.GazetteerEntry{
		{Prefecture: "東京都", Municipality: "府中市", TownArea: "本町"},
		{Prefecture: "東京都", Municipality: "府中市", TownArea: "宮西町"},
		{Prefecture: "広島県", Municipality: "府中市", TownArea: "府中町"},
		{Prefecture: "広島県", Municipality: "府中市", TownArea: "本町"},
		{Prefecture: "北海道", Municipality: "伊達市", TownArea: "末永町"},
		{Prefecture: "福島県", Municipality: "伊達市", TownArea: "保原町"},
		{Prefecture: "東京都", Municipality: "千代田区", TownArea: "丸の内"},
		{Prefecture: "山形県", Municipality: "朝日町", TownArea: "宮宿"},
		{Prefecture: "富山県", Municipality: "朝日町", TownArea: "道下"},
	}))
	require.NoError(t, err)
	return store
}

func TestDisambiguator_Resolve(t *testing.T) {
	d := New(newTestStore(t), DefaultTable())

	tests := []struct {
		name         string
		municipality string
		hints        Hints
		expected     string
		ambiguous    bool
	}{
		{name: "unique municipality", municipality: "千代田区", expected: "東京都"},
		{name: "unknown municipality", municipality: "存在しない市", expected: ""},
		{name: "empty municipality", municipality: "", expected: ""},
		{name: "default without hints", municipality: "府中市", expected: "東京都"},
		{name: "town-area owned by the other prefecture", municipality: "府中市", hints: Hints{TownArea: "府中町"}, expected: "広島県"},
		{name: "town-area owned by the default prefecture", municipality: "府中市", hints: Hints{TownArea: "宮西町"}, expected: "東京都"},
		{name: "town-area in both falls back to default", municipality: "府中市", hints: Hints{TownArea: "本町"}, expected: "東京都"},
		{name: "unknown town-area falls back to default", municipality: "府中市", hints: Hints{TownArea: "存在しない町"}, expected: "東京都"},
		{name: "date city default", municipality: "伊達市", expected: "北海道"},
		{name: "date city in fukushima", municipality: "伊達市", hints: Hints{TownArea: "保原町"}, expected: "福島県"},
		{name: "no override entry", municipality: "朝日町", ambiguous: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Resolve(tt.municipality, tt.hints)
			if tt.ambiguous {
				var ambiguous *AmbiguousMunicipalityError
				require.True(t, errors.As(err, &ambiguous))
				assert.Equal(t, tt.municipality, ambiguous.Municipality)
				assert.Equal(t, []string{"山形県", "富山県"}, ambiguous.Candidates)
				assert.Empty(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDisambiguator_ConfiguredOverride(t *testing.T) {
	d := New(newTestStore(t), DefaultTable().Merge(Table{"朝日町": {"富山県", "山形県"}}))

	got, err := d.Resolve("朝日町", Hints{})
	require.NoError(t, err)
	assert.Equal(t, "富山県", got)

	got, err = d.Resolve("朝日町", Hints{TownArea: "宮宿"})
	require.NoError(t, err)
	assert.Equal(t, "山形県", got)
}

func TestDisambiguator_OverrideWithoutMatchingCandidates(t *testing.T) {
	d := New(newTestStore(t), Table{"朝日町": {"大阪府"}})

	_, err := d.Resolve("朝日町", Hints{})
	var ambiguous *AmbiguousMunicipalityError
	assert.True(t, errors.As(err, &ambiguous))
}

func TestDisambiguator_NilStore(t *testing.T) {
	got, err := New(nil, DefaultTable()).Resolve("府中市", Hints{})
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestTable_Merge(t *testing.T) {
	base := DefaultTable()
	merged := base.Merge(Table{"府中市": {"広島県", "東京都"}})

	assert.Equal(t, []string{"広島県", "東京都"}, merged["府中市"])
	assert.Equal(t, []string{"東京都", "広島県"}, base["府中市"])
	assert.Equal(t, []string{"北海道", "福島県"}, merged["伊達市"])
}
