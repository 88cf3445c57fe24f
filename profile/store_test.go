package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfiles() []*LanguageProfile {
	en := New("en")
	en.Update("the cat sat on the mat")
	ja := New("ja")
	ja.Update("ねこがいる")
	zh := New("zh-cn")
	zh.Update("猫在垫子上")
	return []*LanguageProfile{zh, en, ja}
}

func assertRoundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	for _, p := range sampleProfiles() {
		require.NoError(t, store.Save(ctx, p.ToDocument()))
	}

	loaded, err := LoadProfiles(ctx, store)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	byName := make(map[string]*LanguageProfile)
	for _, p := range sampleProfiles() {
		byName[p.Name] = p
	}
	names := make([]string, 0, len(loaded))
	for _, p := range loaded {
		names = append(names, p.Name)
		assert.Equal(t, byName[p.Name].NGramTotals, p.NGramTotals, p.Name)
		assert.Equal(t, byName[p.Name].Frequencies, p.Frequencies, p.Name)
	}
	assert.Equal(t, []string{"en", "ja", "zh-cn"}, names)
}

func TestDirStore_JSON(t *testing.T) {
	store, err := NewDirStore(t.TempDir(), FormatJSON)
	require.NoError(t, err)
	assertRoundTrip(t, store)
	assert.NoError(t, store.Close())
}

func TestDirStore_YAML(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir, FormatYAML)
	require.NoError(t, err)
	assertRoundTrip(t, store)
	assert.FileExists(t, filepath.Join(dir, "en.yaml"))
}

func TestDirStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewDirStore(t.TempDir(), "")
	require.NoError(t, err)

	p := New("en")
	p.Add("a")
	require.NoError(t, store.Save(ctx, p.ToDocument()))
	p.Add("b")
	require.NoError(t, store.Save(ctx, p.ToDocument()))

	docs, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, docs[0].Frequencies)
}

func TestDirStore_InvalidName(t *testing.T) {
	store, err := NewDirStore(t.TempDir(), FormatJSON)
	require.NoError(t, err)
	for _, name := range []string{"", "../x", "a/b", ".hidden"} {
		assert.Error(t, store.Save(context.Background(), Document{Name: name}), name)
	}
}

func TestDirStore_UnknownFormat(t *testing.T) {
	_, err := NewDirStore(t.TempDir(), "xml")
	assert.Error(t, err)
}

func TestDirStore_ReadsPublishedFormat(t *testing.T) {
	dir := t.TempDir()
	published := `{"freq":{"a":3,"ab":2,"abc":1},"n_words":[3,2,1],"name":"xx"}`
	legacy := `{"freq":{"b":1},"n_word_totals":[1,0,0],"name":"yy"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xx.json"), []byte(published), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "yy.json"), []byte(legacy), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("ignored"), 0o644))

	store, err := NewDirStore(dir, FormatJSON)
	require.NoError(t, err)
	profiles, err := LoadProfiles(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, [3]int{3, 2, 1}, profiles[0].NGramTotals)
	assert.Equal(t, 2, profiles[0].Frequencies["ab"])
	assert.Equal(t, [3]int{1, 0, 0}, profiles[1].NGramTotals)
}

func TestDirStore_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xx.json"), []byte("{"), 0o644))
	store, err := NewDirStore(dir, FormatJSON)
	require.NoError(t, err)
	_, err = store.Load(context.Background())
	assert.Error(t, err)
}

func TestSQLStore(t *testing.T) {
	store, err := OpenSQLStore(context.Background(), ":memory:")
	require.NoError(t, err)
	defer store.Close()
	assertRoundTrip(t, store)
}

func TestSQLStore_ReplaceAndDelete(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLStore(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	p := New("en")
	p.Update("abc")
	require.NoError(t, store.Save(ctx, p.ToDocument()))

	q := New("en")
	q.Add("z")
	require.NoError(t, store.Save(ctx, q.ToDocument()))

	docs, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, map[string]int{"z": 1}, docs[0].Frequencies)
	assert.Equal(t, []int{1, 0, 0}, docs[0].NGramTotals)

	require.NoError(t, store.Delete(ctx, "en"))
	require.NoError(t, store.Delete(ctx, "missing"))
	docs, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSQLStore_InvalidName(t *testing.T) {
	store, err := OpenSQLStore(context.Background(), ":memory:")
	require.NoError(t, err)
	defer store.Close()
	assert.Error(t, store.Save(context.Background(), Document{Name: ""}))
}
