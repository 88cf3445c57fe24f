package text

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// vietnameseBases are the vowels that take a combining tone mark.
const vietnameseBases = "AEIOUYaeiouyÂÊÔâêôĂăƠơƯư"

// vietnameseMarks are grave, acute, tilde, hook above and dot below.
const vietnameseMarks = "\u0300\u0301\u0303\u0309\u0323"

// vietnameseComposed holds one row per mark, one column per base.
var vietnameseComposed = [...]string{
	"ÀÈÌÒÙỲàèìòùỳẦỀỒầềồẰằỜờỪừ",
	"ÁÉÍÓÚÝáéíóúýẤẾỐấếốẮắỚớỨứ",
	"ÃẼĨÕŨỸãẽĩõũỹẪỄỖẫễỗẴẵỠỡỮữ",
	"ẢẺỈỎỦỶảẻỉỏủỷẨỂỔẩểổẲẳỞởỬử",
	"ẠẸỊỌỤỴạẹịọụỵẬỆỘậệộẶặỢợỰự",
}

var (
	alphabetWithMark = regexp.MustCompile("[" + vietnameseBases + "][" + vietnameseMarks + "]")
	vietnameseTable  = buildVietnameseTable()
)

type baseMark struct {
	base, mark rune
}

func buildVietnameseTable() map[baseMark]string {
	bases := []rune(vietnameseBases)
	table := make(map[baseMark]string, len(bases)*len(vietnameseComposed))
	for row, mark := range []rune(vietnameseMarks) {
		composed := []rune(vietnameseComposed[row])
		for col, base := range bases {
			table[baseMark{base, mark}] = string(composed[col])
		}
	}
	return table
}

// NormalizeVietnamese merges a vowel followed by a combining tone mark into
// the precomposed rune.
func NormalizeVietnamese(s string) string {
	if !strings.ContainsAny(s, vietnameseMarks) {
		return s
	}
	return alphabetWithMark.ReplaceAllStringFunc(s, func(m string) string {
		base, size := utf8.DecodeRuneInString(m)
		mark, _ := utf8.DecodeRuneInString(m[size:])
		if composed, ok := vietnameseTable[baseMark{base, mark}]; ok {
			return composed
		}
		return m
	})
}
