package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type gramStep struct {
	add  rune
	want [MaxNGramLength]string // "" means no gram
}

func runSteps(t *testing.T, steps []gramStep) {
	t.Helper()
	g := NewNGram()
	for i, step := range steps {
		g.AddChar(step.add)
		for n := 1; n <= MaxNGramLength; n++ {
			got, ok := g.Get(n)
			want := step.want[n-1]
			if want == "" {
				assert.False(t, ok, "step %d (%q): Get(%d) = %q, want none", i, step.add, n, got)
				continue
			}
			if assert.True(t, ok, "step %d (%q): Get(%d) missing", i, step.add, n) {
				assert.Equal(t, want, got, "step %d (%q): Get(%d)", i, step.add, n)
			}
		}
	}
}

func TestNGram_Empty(t *testing.T) {
	g := NewNGram()
	for n := 0; n <= MaxNGramLength+1; n++ {
		_, ok := g.Get(n)
		assert.False(t, ok)
	}
}

func TestNGram_Scripts(t *testing.T) {
	runSteps(t, []gramStep{
		{'A', [3]string{"A", " A", ""}},
		{'ی', [3]string{"ي", "Aي", " Aي"}},
		{'Ạ', [3]string{"ể", "يể", "Aيể"}},
		{'い', [3]string{"あ", "ểあ", "يểあ"}},
		{'イ', [3]string{"ア", "あア", "ểあア"}},
		{'ㄆ', [3]string{"ㄅ", "アㄅ", "あアㄅ"}},
		{'각', [3]string{"가", "ㄅ가", "アㄅ가"}},
		{'‐', [3]string{"", "가 ", "ㄅ가 "}},
		{'a', [3]string{"a", " a", ""}},
	})
}

func TestNGram_SeparatorResets(t *testing.T) {
	runSteps(t, []gramStep{
		{'A', [3]string{"A", " A", ""}},
		{'1', [3]string{"", "A ", " A "}},
		{'B', [3]string{"B", " B", ""}},
	})
}

func TestNGram_CollapsesSeparators(t *testing.T) {
	runSteps(t, []gramStep{
		{'a', [3]string{"a", " a", ""}},
		{' ', [3]string{"", "a ", " a "}},
		{' ', [3]string{"", "", ""}},
		{'.', [3]string{"", "", ""}},
		{'b', [3]string{"b", " b", ""}},
	})
}

func TestNGram_CapitalRun(t *testing.T) {
	runSteps(t, []gramStep{
		{'N', [3]string{"N", " N", ""}},
		{'A', [3]string{"", "", ""}},
		{'T', [3]string{"", "", ""}},
		{'o', [3]string{"o", "To", "ATo"}},
		{' ', [3]string{"", "o ", "To "}},
		{'I', [3]string{"I", " I", ""}},
		{'t', [3]string{"t", "It", " It"}},
	})
}

func TestEach(t *testing.T) {
	var grams []string
	Each("ab c", func(gram string) {
		grams = append(grams, gram)
	})
	assert.Equal(t, []string{"a", " a", "b", "ab", " ab", "b ", "ab ", "c", " c"}, grams)
}

func BenchmarkEach(b *testing.B) {
	input := "The quick brown fox jumps over the lazy dog. これは日本語です。"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Each(input, func(string) {})
	}
}
