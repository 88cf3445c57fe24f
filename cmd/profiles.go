package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tsingjyujing/langdetect/detector"
	"github.com/tsingjyujing/langdetect/errs"
	"github.com/tsingjyujing/langdetect/model"
	"github.com/tsingjyujing/langdetect/profile"
)

// profileFlags selects a profile store from the command line.
type profileFlags struct {
	dir      string
	database string
	format   string
}

func (f *profileFlags) bind(cmd *cobra.Command, dirFlag string) {
	cmd.Flags().StringVar(&f.dir, dirFlag, "", "directory of profile files")
	cmd.Flags().StringVar(&f.database, "db", "", "SQLite profile database, used instead of a directory")
	cmd.Flags().StringVar(&f.format, "profile-format", profile.FormatJSON, "profile file format written to a directory (json|yaml)")
}

func (f *profileFlags) open(ctx context.Context) (profile.Store, error) {
	return openStore(ctx, f.dir, f.database, f.format)
}

func openStore(ctx context.Context, dir, database, format string) (profile.Store, error) {
	if database != "" {
		return profile.OpenSQLStore(ctx, database)
	}
	if dir == "" {
		return nil, errs.New(errs.InitParam, "a profile directory or database is required")
	}
	return profile.NewDirStore(dir, format)
}

// detectorSettings are the tunables shared by the commands that detect.
type detectorSettings struct {
	alpha         float64
	maxTextLength int
	prior         map[string]string
	verbose       bool
}

func (s *detectorSettings) bind(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&s.alpha, "alpha", detector.DefaultAlpha, "smoothing parameter")
	cmd.Flags().IntVar(&s.maxTextLength, "max-text-length", detector.DefaultMaxTextLength, "maximum number of characters read from a text")
	cmd.Flags().StringToStringVar(&s.prior, "prior", nil, "prior probabilities, e.g. en=0.7,fr=0.3")
}

func parsePrior(raw map[string]string) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	prior := make(map[string]float64, len(raw))
	for lang, value := range raw {
		p, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, errs.Wrap(err, errs.InitParam, fmt.Sprintf("invalid prior for %s", lang))
		}
		prior[lang] = p
	}
	return prior, nil
}

// loadFactory builds the model of a store and a detector factory over it.
func loadFactory(ctx context.Context, store profile.Store, settings detectorSettings, prior map[string]float64) (*detector.Factory, error) {
	m, err := model.LoadModel(ctx, store)
	if err != nil {
		return nil, err
	}
	logger.WithField("languages", m.Len()).WithField("grams", m.Size()).Info("Loaded language profiles")

	factory := detector.NewFactory(m)
	factory.SetAlpha(settings.alpha)
	if settings.maxTextLength > 0 {
		factory.SetMaxTextLength(settings.maxTextLength)
	}
	factory.SetVerbose(settings.verbose)
	if prior != nil {
		if err := factory.SetPriorMap(prior); err != nil {
			return nil, err
		}
	}
	return factory, nil
}
