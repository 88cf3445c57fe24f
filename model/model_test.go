package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsingjyujing/langdetect/errs"
	"github.com/tsingjyujing/langdetect/profile"
)

func newProfile(name string, totals [3]int, freq map[string]int) *profile.LanguageProfile {
	p := profile.New(name)
	p.NGramTotals = totals
	for k, v := range freq {
		p.Frequencies[k] = v
	}
	return p
}

func TestBuild(t *testing.T) {
	en := newProfile("en", [3]int{4, 2, 1}, map[string]int{"a": 3, "b": 1, "ab": 2, "abc": 1})
	fr := newProfile("fr", [3]int{2, 0, 0}, map[string]int{"a": 1, "c": 1})

	m, err := Build([]*profile.LanguageProfile{en, fr})
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr"}, m.Languages())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 5, m.Size())

	tests := []struct {
		gram string
		want []float64
	}{
		{"a", []float64{0.75, 0.5}},
		{"b", []float64{0.25, 0}},
		{"c", []float64{0, 0.5}},
		{"ab", []float64{1, 0}},
		{"abc", []float64{1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.gram, func(t *testing.T) {
			vec, ok := m.Lookup(tt.gram)
			require.True(t, ok)
			assert.InDeltaSlice(t, tt.want, vec, 1e-12)
		})
	}
	_, ok := m.Lookup("zz")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Index("fr"))
	assert.Equal(t, -1, m.Index("de"))
	assert.Equal(t, "en", m.Language(0))
}

func TestBuild_VectorLength(t *testing.T) {
	profiles := []*profile.LanguageProfile{
		newProfile("a", [3]int{1, 0, 0}, map[string]int{"x": 1}),
		newProfile("b", [3]int{1, 0, 0}, map[string]int{"y": 1}),
		newProfile("c", [3]int{1, 0, 0}, map[string]int{"z": 1}),
	}
	m, err := Build(profiles)
	require.NoError(t, err)
	for _, gram := range []string{"x", "y", "z"} {
		vec, _ := m.Lookup(gram)
		assert.Len(t, vec, 3)
	}
}

func TestBuild_Duplicate(t *testing.T) {
	_, err := Build([]*profile.LanguageProfile{
		newProfile("en", [3]int{1, 0, 0}, map[string]int{"a": 1}),
		newProfile("en", [3]int{1, 0, 0}, map[string]int{"b": 1}),
	})
	assert.ErrorIs(t, err, errs.ErrDuplicateLanguage)
}

func TestBuild_Empty(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, errs.ErrProfileNotLoaded)
}

func TestBuild_SkipsBadEntries(t *testing.T) {
	p := newProfile("en", [3]int{1, 0, 0}, map[string]int{
		"a":    1,
		"abcd": 1,
		"":     1,
		"ab":   1, // length total is zero
	})
	m, stats, err := BuildWithStats([]*profile.LanguageProfile{p})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Skipped)
	assert.Equal(t, 1, stats.Grams)
	assert.Equal(t, 1, m.Size())
}

func TestLanguagesIsCopy(t *testing.T) {
	m, err := Build([]*profile.LanguageProfile{newProfile("en", [3]int{1, 0, 0}, map[string]int{"a": 1})})
	require.NoError(t, err)
	langs := m.Languages()
	langs[0] = "xx"
	assert.Equal(t, "en", m.Language(0))
}

func TestLoadModel(t *testing.T) {
	ctx := context.Background()
	store, err := profile.NewDirStore(t.TempDir(), profile.FormatJSON)
	require.NoError(t, err)

	for _, name := range []string{"fr", "en"} {
		p := profile.New(name)
		p.Update("bonjour hello")
		require.NoError(t, store.Save(ctx, p.ToDocument()))
	}
	m, err := LoadModel(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr"}, m.Languages())

	empty, err := profile.NewDirStore(t.TempDir(), profile.FormatJSON)
	require.NoError(t, err)
	_, err = LoadModel(ctx, empty)
	assert.ErrorIs(t, err, errs.ErrProfileNotLoaded)
}
