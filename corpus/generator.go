package corpus

import (
	"context"

	"github.com/tsingjyujing/langdetect/errs"
	"github.com/tsingjyujing/langdetect/profile"
	"github.com/tsingjyujing/langdetect/text"
)

// Generator builds a language profile from a training source.
type Generator struct {
	// Converter, when set, rewrites every fragment before it is counted.
	Converter text.Converter
	// KeepRare skips OmitLessFreq.
	KeepRare bool
}

func (g *Generator) Generate(ctx context.Context, lang string, src Source) (*profile.LanguageProfile, error) {
	if lang == "" {
		return nil, errs.New(errs.InitParam, "language name is required")
	}
	p := profile.New(lang)
	fragments := 0
	err := src.Each(ctx, func(fragment string) error {
		if g.Converter != nil {
			converted, err := g.Converter.Convert(fragment)
			if err != nil {
				return errs.Wrap(err, errs.TrainDataFormat, "cannot convert training text")
			}
			fragment = converted
		}
		p.Update(fragment)
		fragments++
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.WithField("language", lang).WithField("fragments", fragments).Info("Read training data")

	if !g.KeepRare {
		before := len(p.Frequencies)
		p.OmitLessFreq()
		logger.WithField("language", lang).WithField("before", before).WithField("after", len(p.Frequencies)).Debug("Dropped rare n-grams")
	}
	return p, nil
}
