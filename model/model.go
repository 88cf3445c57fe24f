// Package model merges language profiles into the probability table used by
// the detector.
package model

import (
	"context"
	"slices"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/tsingjyujing/langdetect/errs"
	"github.com/tsingjyujing/langdetect/profile"
	"github.com/tsingjyujing/langdetect/text"
)

var logger = logrus.StandardLogger()

// ProbabilityModel maps every known n-gram to its probability in each
// language. It is never modified after Build and may be shared freely.
type ProbabilityModel struct {
	languages []string
	table     map[string][]float64
}

// BuildStats reports entries Build could not use.
type BuildStats struct {
	Grams   int
	Skipped int
}

// Build merges profiles into one model. The position of a profile in the
// slice is the index of its language in every probability vector.
func Build(profiles []*profile.LanguageProfile) (*ProbabilityModel, error) {
	m, _, err := BuildWithStats(profiles)
	return m, err
}

// BuildWithStats is Build that also returns how many entries were skipped.
func BuildWithStats(profiles []*profile.LanguageProfile) (*ProbabilityModel, BuildStats, error) {
	var stats BuildStats
	m := &ProbabilityModel{
		languages: make([]string, 0, len(profiles)),
		table:     make(map[string][]float64),
	}
	size := len(profiles)
	for i, p := range profiles {
		if slices.Contains(m.languages, p.Name) {
			return nil, stats, errs.New(errs.DuplicateLanguage, "duplicate the same language profile: %s", p.Name)
		}
		m.languages = append(m.languages, p.Name)

		for gram, count := range p.Frequencies {
			n := utf8.RuneCountInString(gram)
			if n < 1 || n > text.MaxNGramLength {
				logger.WithField("language", p.Name).WithField("gram", gram).Warn("Skipping n-gram with unsupported length")
				stats.Skipped++
				continue
			}
			total := p.NGramTotals[n-1]
			if total <= 0 {
				logger.WithField("language", p.Name).WithField("gram", gram).WithField("length", n).Warn("Skipping n-gram without a length total")
				stats.Skipped++
				continue
			}
			vec, ok := m.table[gram]
			if !ok {
				vec = make([]float64, size)
				m.table[gram] = vec
			}
			vec[i] = float64(count) / float64(total)
		}
	}
	if len(m.languages) == 0 {
		return nil, stats, errs.ErrProfileNotLoaded
	}
	stats.Grams = len(m.table)
	logger.WithField("languages", len(m.languages)).WithField("grams", stats.Grams).Debug("Built probability model")
	return m, stats, nil
}

// LoadModel reads every profile of a store and builds a model from them.
func LoadModel(ctx context.Context, store profile.Store) (*ProbabilityModel, error) {
	profiles, err := profile.LoadProfiles(ctx, store)
	if err != nil {
		return nil, errs.Wrap(err, errs.FailedToInitialize, "load language profiles")
	}
	return Build(profiles)
}

// Languages returns the language names in index order.
func (m *ProbabilityModel) Languages() []string {
	return slices.Clone(m.languages)
}

// Language returns the name at index i.
func (m *ProbabilityModel) Language(i int) string {
	return m.languages[i]
}

// Index returns the position of a language, or -1.
func (m *ProbabilityModel) Index(lang string) int {
	return slices.Index(m.languages, lang)
}

// Lookup returns the probability vector of a gram. The slice is shared with
// the model and must not be modified.
func (m *ProbabilityModel) Lookup(gram string) ([]float64, bool) {
	vec, ok := m.table[gram]
	return vec, ok
}

// Len is the number of languages.
func (m *ProbabilityModel) Len() int {
	return len(m.languages)
}

// Size is the number of distinct grams.
func (m *ProbabilityModel) Size() int {
	return len(m.table)
}
