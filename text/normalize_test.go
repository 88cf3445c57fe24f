package text

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input rune
		want  rune
	}{
		{name: "NUL", input: '\u0000', want: ' '},
		{name: "tab", input: '\t', want: ' '},
		{name: "space", input: ' ', want: ' '},
		{name: "digit", input: '0', want: ' '},
		{name: "at sign", input: '@', want: ' '},
		{name: "upper A", input: 'A', want: 'A'},
		{name: "upper Z", input: 'Z', want: 'Z'},
		{name: "left bracket", input: '[', want: ' '},
		{name: "backtick", input: '`', want: ' '},
		{name: "lower a", input: 'a', want: 'a'},
		{name: "lower z", input: 'z', want: 'z'},
		{name: "left brace", input: '{', want: ' '},
		{name: "DEL", input: '\u007f', want: ' '},
		{name: "C1 control", input: '\u0080', want: '\u0080'},
		{name: "no-break space", input: '\u00a0', want: ' '},
		{name: "guillemet", input: '«', want: ' '},
		{name: "degree", input: '°', want: ' '},
		{name: "inverted exclamation", input: '¡', want: '¡'},
		{name: "e acute", input: 'é', want: 'é'},
		{name: "hyphen", input: '‐', want: ' '},
		{name: "ellipsis", input: '…', want: ' '},
		{name: "s cedilla", input: 'ş', want: 'ş'},
		{name: "t cedilla", input: 'ţ', want: 'ţ'},
		{name: "s comma below", input: 'ș', want: 'ş'},
		{name: "t comma below", input: 'ț', want: 'ţ'},
		{name: "farsi yeh", input: 'ی', want: 'ي'},
		{name: "arabic alef", input: 'ا', want: 'ا'},
		{name: "latin ext additional low", input: 'Ḁ', want: 'Ḁ'},
		{name: "vietnamese A dot below", input: 'Ạ', want: VietVowel},
		{name: "vietnamese y tilde", input: 'ỹ', want: VietVowel},
		{name: "hiragana i", input: 'い', want: Hiragana},
		{name: "katakana i", input: 'イ', want: Katakana},
		{name: "bopomofo p", input: 'ㄆ', want: Bopomofo},
		{name: "bopomofo extended", input: 'ㆠ', want: Bopomofo},
		{name: "hangul", input: '각', want: Hangul},
		{name: "cyrillic", input: 'ж', want: 'ж'},
		{name: "CJK one", input: '一', want: '一'},
		{name: "CJK ding", input: '丁', want: '丁'},
		{name: "CJK 4E02", input: '丂', want: '丂'},
		{name: "CJK seven", input: '七', want: '丁'},
		{name: "CJK 4E04", input: '丄', want: '丄'},
		{name: "CJK 4E09", input: '三', want: '三'},
		{name: "CJK 4E10", input: '丐', want: '丐'},
		{name: "CJK 4E13", input: '专', want: '专'},
		{name: "CJK 4E15", input: '丕', want: '丕'},
		{name: "CJK 4E1E", input: '丞', want: '丞'},
		{name: "CJK 4E22", input: '丢', want: '丢'},
		{name: "CJK liang", input: '两', want: '专'},
		{name: "CJK yan", input: '严', want: '专'},
		{name: "CJK 4E30", input: '丰', want: '丰'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input), "Normalize(%U)", tt.input)
		})
	}
}

func TestNormalize_BasicLatinNonLetters(t *testing.T) {
	for r := rune(0); r <= 0x7f; r++ {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			assert.Equal(t, r, Normalize(r))
			continue
		}
		assert.Equal(t, ' ', Normalize(r), "Normalize(%U)", r)
	}
}

func TestNormalize_CJKClasses(t *testing.T) {
	lines := 0
	for _, line := range strings.Split(cjkClassData, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines++
		assert.GreaterOrEqual(t, utf8.RuneCountInString(line), 2, "class %q has a single member", line)
		representative, _ := utf8.DecodeRuneInString(line)
		for _, r := range line {
			assert.Equal(t, representative, Normalize(r), "Normalize(%U) in class %q", r, string(representative))
		}
	}
	assert.Greater(t, lines, 100)
}

func TestNormalize_FixedRepresentatives(t *testing.T) {
	tests := []struct {
		in   rune
		want rune
	}{
		{'\u4e03', '\u4e01'},
		{'\u4e24', '\u4e13'},
		{'\u4e25', '\u4e13'},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%U)", tt.in)
	}
}

func TestParseCJKClasses(t *testing.T) {
	m := parseCJKClasses("# comment\n\n甲乙丙\n丁\n")
	assert.Equal(t, map[rune]rune{'甲': '甲', '乙': '甲', '丙': '甲', '丁': '丁'}, m)
}

func BenchmarkNormalize(b *testing.B) {
	input := []rune("Hello, wörld! これは日本語のテキストです 这是中文 안녕하세요")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, r := range input {
			Normalize(r)
		}
	}
}
