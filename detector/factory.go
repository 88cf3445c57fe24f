package detector

import (
	"math/rand/v2"
	"sync"

	"github.com/tsingjyujing/langdetect/model"
)

// Factory creates detectors sharing one model and one set of defaults.
// It is safe for concurrent use.
type Factory struct {
	model *model.ProbabilityModel

	mu            sync.RWMutex
	alpha         float64
	maxTextLength int
	prior         []float64
	verbose       bool
}

func NewFactory(m *model.ProbabilityModel) *Factory {
	return &Factory{
		model:         m,
		alpha:         DefaultAlpha,
		maxTextLength: DefaultMaxTextLength,
	}
}

func (f *Factory) Model() *model.ProbabilityModel {
	return f.model
}

// Languages lists the languages of the model in index order.
func (f *Factory) Languages() []string {
	return f.model.Languages()
}

// Alpha is the smoothing parameter given to new detectors.
func (f *Factory) Alpha() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.alpha
}

func (f *Factory) SetAlpha(alpha float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alpha = alpha
}

func (f *Factory) SetMaxTextLength(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maxTextLength = n
}

func (f *Factory) SetVerbose(verbose bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verbose = verbose
}

// SetPriorMap sets the prior given to every new detector. A nil map clears it.
func (f *Factory) SetPriorMap(priors map[string]float64) error {
	var prior []float64
	if priors != nil {
		var err error
		if prior, err = priorVector(f.model, priors); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prior = prior
	return nil
}

// Create returns a detector with its own random source.
func (f *Factory) Create() *Detector {
	return f.create(newRand())
}

// CreateSeeded returns a detector whose results are reproducible for a seed.
func (f *Factory) CreateSeeded(seed uint64) *Detector {
	return f.create(rand.New(rand.NewPCG(seed, seed)))
}

func (f *Factory) create(rng *rand.Rand) *Detector {
	f.mu.RLock()
	defer f.mu.RUnlock()
	d := New(f.model,
		WithRand(rng),
		WithAlpha(f.alpha),
		WithMaxTextLength(f.maxTextLength),
		WithVerbose(f.verbose),
	)
	if f.prior != nil {
		d.prior = append([]float64(nil), f.prior...)
	}
	return d
}
