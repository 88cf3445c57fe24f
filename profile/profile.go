// Package profile accumulates per-language n-gram statistics and stores them.
package profile

import (
	"fmt"
	"maps"
	"unicode/utf8"

	"github.com/tsingjyujing/langdetect/text"
)

const (
	minimumFreq   = 2
	lessFreqRatio = 100000
	romanRatio    = 3
)

// LanguageProfile holds n-gram counts of one language.
type LanguageProfile struct {
	Name        string
	Frequencies map[string]int
	// NGramTotals[n-1] is the total count of all n-grams of length n.
	NGramTotals [text.MaxNGramLength]int
}

// New creates an empty profile.
func New(name string) *LanguageProfile {
	return &LanguageProfile{
		Name:        name,
		Frequencies: make(map[string]int),
	}
}

// FromDocument restores a profile from its stored form.
func FromDocument(doc Document) (*LanguageProfile, error) {
	if len(doc.NGramTotals) != text.MaxNGramLength {
		return nil, fmt.Errorf("profile %q: invalid n-gram totals length %d", doc.Name, len(doc.NGramTotals))
	}
	p := New(doc.Name)
	copy(p.NGramTotals[:], doc.NGramTotals)
	maps.Copy(p.Frequencies, doc.Frequencies)
	return p, nil
}

// ToDocument returns a copy of the profile in its stored form.
func (p *LanguageProfile) ToDocument() Document {
	return Document{
		Name:        p.Name,
		NGramTotals: append([]int(nil), p.NGramTotals[:]...),
		Frequencies: maps.Clone(p.Frequencies),
	}
}

// Add counts one n-gram. Empty grams, grams longer than text.MaxNGramLength
// and unnamed profiles are ignored.
func (p *LanguageProfile) Add(gram string) {
	if p.Name == "" {
		return
	}
	n := utf8.RuneCountInString(gram)
	if n < 1 || n > text.MaxNGramLength {
		return
	}
	p.NGramTotals[n-1]++
	p.Frequencies[gram]++
}

// Update extracts the n-grams of a training fragment and counts them.
func (p *LanguageProfile) Update(fragment string) {
	text.Each(text.NormalizeVietnamese(fragment), p.Add)
}

// OmitLessFreq drops rare n-grams and, when Latin letters are a small minority
// of the unigram mass, every n-gram containing one.
func (p *LanguageProfile) OmitLessFreq() {
	if p.Name == "" {
		return
	}
	threshold := p.NGramTotals[0] / lessFreqRatio
	if threshold < minimumFreq {
		threshold = minimumFreq
	}

	roman := 0
	for gram, count := range p.Frequencies {
		if count <= threshold {
			p.remove(gram, count)
			continue
		}
		if isSingleASCIILetter(gram) {
			roman += count
		}
	}

	// TODO: this also strips mixed-script grams such as "aあ"; check against a
	// non-Latin regression corpus before narrowing it to pure Latin grams.
	if roman < p.NGramTotals[0]/romanRatio {
		for gram, count := range p.Frequencies {
			if containsASCIILetter(gram) {
				p.remove(gram, count)
			}
		}
	}
}

func (p *LanguageProfile) remove(gram string, count int) {
	p.NGramTotals[utf8.RuneCountInString(gram)-1] -= count
	delete(p.Frequencies, gram)
}

func isASCIILetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isSingleASCIILetter(gram string) bool {
	return len(gram) == 1 && isASCIILetter(rune(gram[0]))
}

func containsASCIILetter(gram string) bool {
	for _, r := range gram {
		if isASCIILetter(r) {
			return true
		}
	}
	return false
}
