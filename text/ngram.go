package text

import "unicode"

// MaxNGramLength is the longest n-gram produced by NGram.
const MaxNGramLength = 3

// NGram is a rolling window over the last MaxNGramLength normalized runes.
// The zero value is not usable, create one with NewNGram.
type NGram struct {
	chars   []rune
	capital bool
}

// NewNGram returns a buffer holding only the space sentinel.
func NewNGram() *NGram {
	return &NGram{chars: []rune{' '}}
}

// AddChar normalizes r and appends it to the window.
func (g *NGram) AddChar(r rune) {
	normalized := Normalize(r)
	last := g.chars[len(g.chars)-1]

	if last == ' ' {
		g.chars = g.chars[:1]
		g.chars[0] = ' '
		g.capital = false
		if normalized == ' ' {
			return
		}
	} else if len(g.chars) >= MaxNGramLength {
		copy(g.chars, g.chars[1:])
		g.chars = g.chars[:len(g.chars)-1]
	}
	g.chars = append(g.chars, normalized)

	if unicode.IsUpper(normalized) {
		if unicode.IsUpper(last) {
			g.capital = true
		}
	} else {
		g.capital = false
	}
}

// Get returns the trailing n runes of the window. It reports false inside a
// run of capitals, for n outside 1..MaxNGramLength, when the window is too
// short, or when the only rune asked for is the space sentinel.
func (g *NGram) Get(n int) (string, bool) {
	if g.capital {
		return "", false
	}
	size := len(g.chars)
	if n < 1 || n > MaxNGramLength || size < n {
		return "", false
	}
	if n == 1 {
		r := g.chars[size-1]
		if r == ' ' {
			return "", false
		}
		return string(r), true
	}
	return string(g.chars[size-n:]), true
}

// Each feeds every rune of s through a fresh window and calls fn for each
// producible n-gram, shortest first at every position.
func Each(s string, fn func(gram string)) {
	g := NewNGram()
	for _, r := range s {
		g.AddChar(r)
		for n := 1; n <= MaxNGramLength; n++ {
			if w, ok := g.Get(n); ok {
				fn(w)
			}
		}
	}
}
