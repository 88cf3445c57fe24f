package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tsingjyujing/langdetect/detector"
	"github.com/tsingjyujing/langdetect/errs"
	"github.com/tsingjyujing/langdetect/text"
)

// evaluation counts the answers given for one expected language.
type evaluation struct {
	total    int
	correct  int
	baseline int
	detected map[string]int
}

// Sample is one labelled line of test data.
type Sample struct {
	Lang string
	Text string
}

// readSamples parses "lang<TAB>text" lines; lines without a tab are skipped.
func readSamples(r io.Reader) ([]Sample, error) {
	var samples []Sample
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lang, body, ok := strings.Cut(scanner.Text(), "\t")
		if !ok || lang == "" {
			continue
		}
		samples = append(samples, Sample{Lang: lang, Text: body})
	}
	return samples, scanner.Err()
}

func evaluate(factory *detector.Factory, baseline *text.BaselineDetector, samples []Sample) map[string]*evaluation {
	results := make(map[string]*evaluation)
	for _, sample := range samples {
		result, ok := results[sample.Lang]
		if !ok {
			result = &evaluation{detected: make(map[string]int)}
			results[sample.Lang] = result
		}
		result.total++

		d := factory.Create()
		d.Append(sample.Text)
		language, err := d.Detect()
		if err != nil {
			if errs.CodeOf(err) != errs.CannotDetect {
				logger.WithError(err).Warn("Detection failed")
			}
			language = detector.Unknown
		}
		result.detected[language]++
		if language == sample.Lang {
			result.correct++
		}
		if baseline != nil && baseline.Detect(sample.Text) == text.BaseCode(sample.Lang) {
			result.baseline++
		}
	}
	return results
}

func writeReport(w io.Writer, results map[string]*evaluation, withBaseline bool) error {
	languages := lo.Keys(results)
	slices.Sort(languages)
	total, correct, baseline := 0, 0, 0
	for _, lang := range languages {
		r := results[lang]
		total += r.total
		correct += r.correct
		baseline += r.baseline

		detected := lo.Keys(r.detected)
		slices.Sort(detected)
		counts := lo.Map(detected, func(l string, _ int) string {
			return fmt.Sprintf("%s:%d", l, r.detected[l])
		})
		line := fmt.Sprintf("%s (%d/%d=%.2f): {%s}", lang, r.correct, r.total, ratio(r.correct, r.total), strings.Join(counts, ","))
		if withBaseline {
			line += fmt.Sprintf(" baseline=%.2f", ratio(r.baseline, r.total))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	summary := fmt.Sprintf("total: %d/%d = %.3f", correct, total, ratio(correct, total))
	if withBaseline {
		summary += fmt.Sprintf(" baseline: %d/%d = %.3f", baseline, total, ratio(baseline, total))
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

func NewEvaluateCommand() *cobra.Command {
	var (
		profiles     profileFlags
		settings     detectorSettings
		testData     string
		withBaseline bool
	)
	evaluateCommand := &cobra.Command{
		Use:   "evaluate",
		Short: "Measure accuracy on labelled lines (lang<TAB>text)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prior, err := parsePrior(settings.prior)
			if err != nil {
				return err
			}
			store, err := profiles.open(ctx)
			if err != nil {
				return err
			}
			defer store.Close()
			factory, err := loadFactory(ctx, store, settings, prior)
			if err != nil {
				return err
			}

			f, err := os.Open(testData)
			if err != nil {
				return err
			}
			defer f.Close()
			samples, err := readSamples(f)
			if err != nil {
				return err
			}

			var baseline *text.BaselineDetector
			if withBaseline {
				baseline, err = text.NewBaselineDetector(factory.Languages())
				if err != nil {
					return err
				}
				logger.WithField("languages", baseline.Codes()).Info("Comparing against lingua")
			}
			return writeReport(cmd.OutOrStdout(), evaluate(factory, baseline, samples), withBaseline)
		},
	}
	profiles.bind(evaluateCommand, "profiles")
	settings.bind(evaluateCommand)
	evaluateCommand.Flags().StringVarP(&testData, "testdata", "t", "", "labelled test data file")
	evaluateCommand.Flags().BoolVar(&withBaseline, "baseline", false, "also report lingua accuracy on the same data")
	_ = evaluateCommand.MarkFlagRequired("testdata")
	return evaluateCommand
}
