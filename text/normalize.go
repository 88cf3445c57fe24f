package text

import (
	"bufio"
	_ "embed"
	"strings"
	"unicode/utf8"
)

// Unicode block bounds used by Normalize. The standard unicode package only
// exposes scripts, and the rules below are defined per block.
const (
	generalPunctuationFirst = 0x2000
	generalPunctuationLast  = 0x206F
	basicLatinLast          = 0x007F
	latin1SupplementLast    = 0x00FF
	latinExtendedBFirst     = 0x0180
	latinExtendedBLast      = 0x024F
	arabicFirst             = 0x0600
	arabicLast              = 0x06FF
	latinExtAdditionalFirst = 0x1E00
	latinExtAdditionalLast  = 0x1EFF
	hiraganaFirst           = 0x3040
	hiraganaLast            = 0x309F
	katakanaFirst           = 0x30A0
	katakanaLast            = 0x30FF
	bopomofoFirst           = 0x3100
	bopomofoLast            = 0x312F
	bopomofoExtendedFirst   = 0x31A0
	bopomofoExtendedLast    = 0x31BF
	cjkUnifiedFirst         = 0x4E00
	cjkUnifiedLast          = 0x9FFF
	hangulSyllablesFirst    = 0xAC00
	hangulSyllablesLast     = 0xD7AF
)

// Representatives for scripts that collapse to a single rune.
const (
	Hiragana  = 'あ'
	Katakana  = 'ア'
	Bopomofo  = 'ㄅ'
	Hangul    = '가'
	VietVowel = 'ể'
)

// latin1Excluded lists Latin-1 Supplement symbols that act as separators.
const latin1Excluded = "\u00a0\u00ab\u00b0\u00bb"

//go:embed data/cjk_classes.txt
var cjkClassData string

var cjkMap = parseCJKClasses(cjkClassData)

// parseCJKClasses maps every rune of a class line to the first rune of that line.
func parseCJKClasses(data string) map[rune]rune {
	m := make(map[rune]rune)
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		representative, _ := utf8.DecodeRuneInString(line)
		for _, r := range line {
			m[r] = representative
		}
	}
	return m
}

// Normalize maps a rune to the canonical form used in n-gram keys.
func Normalize(r rune) rune {
	switch {
	case r >= generalPunctuationFirst && r <= generalPunctuationLast:
		return ' '
	case r <= basicLatinLast:
		if r < 'A' || (r < 'a' && r > 'Z') || r > 'z' {
			return ' '
		}
		return r
	case r <= latin1SupplementLast:
		if strings.ContainsRune(latin1Excluded, r) {
			return ' '
		}
		return r
	case r >= latinExtendedBFirst && r <= latinExtendedBLast:
		// Romanian comma below => cedilla
		switch r {
		case 'ș':
			return 'ş'
		case 'ț':
			return 'ţ'
		}
		return r
	case r >= arabicFirst && r <= arabicLast:
		if r == 'ی' { // Farsi yeh
			return 'ي'
		}
		return r
	case r >= latinExtAdditionalFirst && r <= latinExtAdditionalLast:
		if r >= 'Ạ' {
			return VietVowel
		}
		return r
	case r >= hiraganaFirst && r <= hiraganaLast:
		return Hiragana
	case r >= katakanaFirst && r <= katakanaLast:
		return Katakana
	case (r >= bopomofoFirst && r <= bopomofoLast) || (r >= bopomofoExtendedFirst && r <= bopomofoExtendedLast):
		return Bopomofo
	case r >= cjkUnifiedFirst && r <= cjkUnifiedLast:
		if rep, ok := cjkMap[r]; ok {
			return rep
		}
		return r
	case r >= hangulSyllablesFirst && r <= hangulSyllablesLast:
		return Hangul
	}
	return r
}

// IsLatinExtendedAdditional reports whether r lies in the Latin Extended Additional block.
func IsLatinExtendedAdditional(r rune) bool {
	return r >= latinExtAdditionalFirst && r <= latinExtAdditionalLast
}
