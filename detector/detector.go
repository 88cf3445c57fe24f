// Package detector guesses the language of a text with a randomized naive
// Bayes estimate over character n-grams.
package detector

import (
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tsingjyujing/langdetect/errs"
	"github.com/tsingjyujing/langdetect/model"
	"github.com/tsingjyujing/langdetect/text"
)

var logger = logrus.StandardLogger()

const (
	DefaultAlpha         = 0.5
	DefaultMaxTextLength = 10000
	// Unknown is returned by Detect when no language is likely enough.
	Unknown = "unknown"

	alphaWidth     = 0.05
	iterationLimit = 1000
	probThreshold  = 0.1
	convThreshold  = 0.99999
	baseFreq       = 10000
	nTrial         = 7
	checkInterval  = 5
)

// RE2 caps a single repeat count at 1000, so the 2076 rune URL bound is
// split over three counted runs.
var (
	urlRegex  = regexp.MustCompile(`https?://[-_.?&~;+=/#0-9A-Za-z]{1,1000}[-_.?&~;+=/#0-9A-Za-z]{0,1000}[-_.?&~;+=/#0-9A-Za-z]{0,76}`)
	mailRegex = regexp.MustCompile(`[-_.0-9A-Za-z]{1,64}@[-_0-9A-Za-z]{1,255}[-_.0-9A-Za-z]{1,255}`)
)

// Language is a detected language with its probability.
type Language struct {
	Lang        string  `json:"lang"`
	Probability float64 `json:"prob"`
}

// Detector accumulates text and classifies it. A Detector belongs to a single
// request and must not be used from several goroutines.
type Detector struct {
	model         *model.ProbabilityModel
	text          []rune
	alpha         float64
	maxTextLength int
	prior         []float64
	langprob      []float64
	rng           *rand.Rand
	verbose       bool
}

type Option func(*Detector)

// WithRand sets the random source used by the trials.
func WithRand(rng *rand.Rand) Option {
	return func(d *Detector) {
		d.rng = rng
	}
}

func WithAlpha(alpha float64) Option {
	return func(d *Detector) {
		d.alpha = alpha
	}
}

func WithMaxTextLength(n int) Option {
	return func(d *Detector) {
		d.maxTextLength = n
	}
}

// WithVerbose logs the ranking of every trial at debug level.
func WithVerbose(verbose bool) Option {
	return func(d *Detector) {
		d.verbose = verbose
	}
}

// New creates an empty detector over m.
func New(m *model.ProbabilityModel, opts ...Option) *Detector {
	d := &Detector{
		model:         m,
		alpha:         DefaultAlpha,
		maxTextLength: DefaultMaxTextLength,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = newRand()
	}
	return d
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// SetAlpha changes the smoothing parameter.
func (d *Detector) SetAlpha(alpha float64) {
	d.alpha = alpha
	d.langprob = nil
}

// SetMaxTextLength bounds the total number of runes kept by Append.
func (d *Detector) SetMaxTextLength(n int) {
	d.maxTextLength = n
}

// SetPriorMap sets the initial probability of each language. Languages that
// are not in the map start at zero; names unknown to the model are ignored.
func (d *Detector) SetPriorMap(priors map[string]float64) error {
	prior, err := priorVector(d.model, priors)
	if err != nil {
		return err
	}
	d.prior = prior
	d.langprob = nil
	return nil
}

func priorVector(m *model.ProbabilityModel, priors map[string]float64) ([]float64, error) {
	for lang, p := range priors {
		if p < 0 || math.IsNaN(p) {
			return nil, errs.New(errs.InitParam, "prior probability of %s must be non-negative, got %v", lang, p)
		}
	}
	prior := make([]float64, m.Len())
	sum := 0.0
	for i := range prior {
		if p, ok := priors[m.Language(i)]; ok {
			prior[i] = p
			sum += p
		}
	}
	if sum <= 0 || math.IsInf(sum, 0) {
		return nil, errs.New(errs.InitParam, "sum of prior probabilities must be positive")
	}
	for i := range prior {
		prior[i] /= sum
	}
	return prior, nil
}

// Append adds text to the detector. URLs and mail addresses are dropped and
// runs of spaces are collapsed.
func (d *Detector) Append(s string) {
	s = urlRegex.ReplaceAllString(s, " ")
	s = mailRegex.ReplaceAllString(s, " ")
	s = text.NormalizeVietnamese(s)

	var pre rune
	if len(d.text) > 0 {
		pre = d.text[len(d.text)-1]
	}
	for _, r := range s {
		if len(d.text) >= d.maxTextLength {
			break
		}
		if r != ' ' || pre != ' ' {
			d.text = append(d.text, r)
		}
		pre = r
	}
	d.langprob = nil
}

// Text returns the accumulated text.
func (d *Detector) Text() string {
	return string(d.text)
}

// Detect returns the most probable language, or Unknown.
func (d *Detector) Detect() (string, error) {
	probabilities, err := d.GetProbabilities()
	if err != nil {
		return "", err
	}
	if len(probabilities) == 0 {
		return Unknown, nil
	}
	return probabilities[0].Lang, nil
}

// GetProbabilities returns the languages above 0.1, most probable first.
// The estimate is computed once and reused until more text is appended.
func (d *Detector) GetProbabilities() ([]Language, error) {
	if d.langprob == nil {
		if err := d.detectBlock(); err != nil {
			return nil, err
		}
	}
	return d.sortProbability(d.langprob), nil
}

func (d *Detector) detectBlock() error {
	grams := d.extractNGrams(cleanupText(d.text))
	if len(grams) == 0 {
		return errs.New(errs.CannotDetect, "no features in text")
	}

	langprob := make([]float64, d.model.Len())
	for trial := 0; trial < nTrial; trial++ {
		prob := d.initProbability()
		alpha := d.alpha + d.rng.NormFloat64()*alphaWidth
		for i := 0; ; i++ {
			d.updateLangProb(prob, grams[d.rng.IntN(len(grams))], alpha)
			if i%checkInterval == 0 {
				if normalizeProb(prob) > convThreshold || i >= iterationLimit {
					break
				}
			}
		}
		if d.verbose {
			logger.WithField("trial", trial).WithField("ranking", String(d.sortProbability(prob))).Debug("Finished detection trial")
		}
		for j := range langprob {
			langprob[j] += prob[j] / nTrial
		}
	}
	d.langprob = langprob
	return nil
}

func (d *Detector) initProbability() []float64 {
	if d.prior != nil {
		return append([]float64(nil), d.prior...)
	}
	prob := make([]float64, d.model.Len())
	for i := range prob {
		prob[i] = 1.0 / float64(len(prob))
	}
	return prob
}

func (d *Detector) extractNGrams(runes []rune) []string {
	var grams []string
	text.Each(string(runes), func(gram string) {
		if _, ok := d.model.Lookup(gram); ok {
			grams = append(grams, gram)
		}
	})
	return grams
}

func (d *Detector) updateLangProb(prob []float64, gram string, alpha float64) {
	vec, ok := d.model.Lookup(gram)
	if !ok {
		return
	}
	weight := alpha / baseFreq
	for i := range prob {
		prob[i] *= weight + vec[i]
	}
}

// sortProbability keeps languages above the threshold, most probable first.
// Equal probabilities keep their language order.
func (d *Detector) sortProbability(prob []float64) []Language {
	list := make([]Language, 0, 2)
	for j, p := range prob {
		if p <= probThreshold {
			continue
		}
		i := 0
		for i < len(list) && list[i].Probability >= p {
			i++
		}
		list = append(list, Language{})
		copy(list[i+1:], list[i:])
		list[i] = Language{Lang: d.model.Language(j), Probability: p}
	}
	return list
}

// normalizeProb scales prob to sum to one and returns its maximum.
func normalizeProb(prob []float64) float64 {
	sum := 0.0
	for _, p := range prob {
		sum += p
	}
	maxp := 0.0
	for i := range prob {
		prob[i] /= sum
		if maxp < prob[i] {
			maxp = prob[i]
		}
	}
	return maxp
}

// cleanupText drops ASCII letters from text that is mostly non-Latin.
func cleanupText(runes []rune) []rune {
	latin, nonLatin := 0, 0
	for _, r := range runes {
		if r >= 'A' && r <= 'z' {
			latin++
		} else if r >= '\u0300' && !text.IsLatinExtendedAdditional(r) {
			nonLatin++
		}
	}
	if latin*2 >= nonLatin {
		return runes
	}
	cleaned := make([]rune, 0, len(runes))
	for _, r := range runes {
		if r < 'A' || r > 'z' {
			cleaned = append(cleaned, r)
		}
	}
	return cleaned
}

func (l Language) String() string {
	return l.Lang + ":" + strconv.FormatFloat(l.Probability, 'f', 5, 64)
}

// String renders the ranking like "[en:0.99999, fr:0.10000]".
func String(list []Language) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, l := range list {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
