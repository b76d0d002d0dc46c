package gazetteer

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"address-normalizer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []models.GazetteerEntry {
	return []models.GazetteerEntry{
		{Prefecture: "東京都", Municipality: "千代田区", TownArea: "丸の内", Chome: "1丁目"},
		{Prefecture: "東京都", Municipality: "千代田区", TownArea: "丸の内", Chome: "2丁目"},
		{Prefecture: "東京都", Municipality: "府中市", TownArea: "本町"},
		{Prefecture: "広島県", Municipality: "府中市", TownArea: "府中町"},
		{Prefecture: "広島県", Municipality: "府中市", TownArea: "本町"},
		{Prefecture: "京都府", Municipality: "京都市中京区", Street: "寺町通御池上る", TownArea: "上本能寺前町"},
		{Prefecture: "北海道", Municipality: "伊達市", TownArea: "末永町"},
		{Prefecture: "福島県", Municipality: "伊達市", TownArea: "保原町"},
	}
}

func buildTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Build(slices.Values(testEntries()))
	require.NoError(t, err)
	return store
}

func TestBuild_LookupPath(t *testing.T) {
	store := buildTestStore(t)

	tests := []struct {
		name     string
		path     []string
		expected bool
	}{
		{name: "municipality", path: []string{"東京都", "千代田区"}, expected: true},
		{name: "town area", path: []string{"東京都", "千代田区", "丸の内"}, expected: true},
		{name: "chome", path: []string{"東京都", "千代田区", "丸の内", "1丁目"}, expected: true},
		{name: "full-width chome", path: []string{"東京都", "千代田区", "丸の内", "２丁目"}, expected: true},
		{name: "unknown chome", path: []string{"東京都", "千代田区", "丸の内", "9丁目"}, expected: false},
		{name: "street tier", path: []string{"京都府", "京都市中京区", "寺町通り御池上ル", "上本能寺前町"}, expected: true},
		{name: "town area under street is not a direct child", path: []string{"京都府", "京都市中京区", "上本能寺前町"}, expected: false},
		{name: "wrong prefecture", path: []string{"大阪府", "千代田区"}, expected: false},
		{name: "empty tail is ignored", path: []string{"東京都", "府中市", ""}, expected: true},
		{name: "missing municipality", path: []string{"東京都", ""}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, store.LookupPath(tt.path[0], tt.path[1], tt.path[2:]...))
		})
	}
}

func TestBuild_CandidatePrefectures(t *testing.T) {
	store := buildTestStore(t)

	assert.Equal(t, []string{"東京都", "広島県"}, store.CandidatePrefectures("府中市"))
	assert.Equal(t, []string{"北海道", "福島県"}, store.CandidatePrefectures("伊達市"))
	assert.Equal(t, []string{"東京都"}, store.CandidatePrefectures("千代田区"))
	assert.Empty(t, store.CandidatePrefectures("存在しない市"))
	assert.Equal(t, 8, store.Len())
}

func TestBuild_CandidatesAreCopies(t *testing.T) {
	store := buildTestStore(t)

	got := store.CandidatePrefectures("府中市")
	got[0] = "changed"

	assert.Equal(t, []string{"東京都", "広島県"}, store.CandidatePrefectures("府中市"))
}

func TestBuild_MalformedRecord(t *testing.T) {
	entries := []models.GazetteerEntry{
		{Prefecture: "東京都", Municipality: "千代田区"},
		{TownArea: "丸の内"},
		{Municipality: "府中市"},
		{Prefecture: "東京都", Municipality: "港区"},
	}

	t.Run("aborts by default", func(t *testing.T) {
		store, err := Build(slices.Values(entries))
		assert.Nil(t, store)

		var malformed *MalformedRecordError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, 1, malformed.Index)
		assert.Equal(t, "missing prefecture and municipality", malformed.Reason)
	})

	t.Run("skip and continue", func(t *testing.T) {
		var skipped []error
		store, err := Build(slices.Values(entries), WithSkipMalformed(func(err error) {
			skipped = append(skipped, err)
		}))
		require.NoError(t, err)
		assert.Len(t, skipped, 2)
		assert.True(t, store.LookupPath("東京都", "港区"))
		assert.Empty(t, store.CandidatePrefectures("府中市"))
	})
}

func TestStore_LongestChild(t *testing.T) {
	store := buildTestStore(t)

	key, ok := store.LongestChild("丸の内1丁目", "東京都", "千代田区")
	assert.True(t, ok)
	assert.Equal(t, "丸の内", key)

	key, ok = store.LongestChild("府中市府中町", "広島県")
	assert.True(t, ok)
	assert.Equal(t, "府中市", key)

	_, ok = store.LongestChild("大手町1丁目", "東京都", "千代田区")
	assert.False(t, ok)

	_, ok = store.LongestChild("丸の内", "大阪府")
	assert.False(t, ok)
}

func TestStore_LongestMunicipality(t *testing.T) {
	store := buildTestStore(t)

	key, ok := store.LongestMunicipality("京都市中京区寺町通")
	assert.True(t, ok)
	assert.Equal(t, "京都市中京区", key)

	_, ok = store.LongestMunicipality("札幌市中央区")
	assert.False(t, ok)
}

func TestStore_ContainsTownArea(t *testing.T) {
	store := buildTestStore(t)

	assert.True(t, store.ContainsTownArea("広島県", "府中市", "府中町"))
	assert.False(t, store.ContainsTownArea("東京都", "府中市", "府中町"))
	assert.True(t, store.ContainsTownArea("京都府", "京都市中京区", "上本能寺前町"))
	assert.False(t, store.ContainsTownArea("東京都", "府中市", ""))
}

func TestStore_Canonical(t *testing.T) {
	store := buildTestStore(t)

	label, ok := store.Canonical("京都府", "京都市中京区", "寺町通御池上る")
	assert.True(t, ok)
	assert.Equal(t, "寺町通御池上る", label)

	_, ok = store.Canonical()
	assert.False(t, ok)
}

func TestStore_ConcurrentReads(t *testing.T) {
	store := buildTestStore(t)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.True(t, store.LookupPath("東京都", "千代田区", "丸の内"))
				assert.Len(t, store.CandidatePrefectures("府中市"), 2)
			}
		}()
	}
	wg.Wait()
}

func TestStore_Prefectures(t *testing.T) {
	store := buildTestStore(t)

	assert.Equal(t, []string{"京都府", "北海道", "広島県", "東京都", "福島県"}, store.Prefectures())
	assert.Equal(t, len(testEntries()), store.Len())
}

func TestStore_HasPrefecture(t *testing.T) {
	store := buildTestStore(t)

	assert.True(t, store.HasPrefecture("東京都"))
	assert.True(t, store.HasPrefecture("東京 都"))
	assert.False(t, store.HasPrefecture("太宰府"))
}

func TestBuild_CandidatesDeduplicateSpellings(t *testing.T) {
	store, err := Build(slices.Values([]models.GazetteerEntry{
		{Prefecture: "東京都", Municipality: "府中市", TownArea: "本町"},
		{Prefecture: "東京 都", Municipality: "府中市", TownArea: "宮町"},
		{Prefecture: "広島県", Municipality: "府中市", TownArea: "府中町"},
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"東京都", "広島県"}, store.CandidatePrefectures("府中市"))
}
