package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tsingjyujing/langdetect/corpus"
	"github.com/tsingjyujing/langdetect/text"
)

const (
	formatText     = "text"
	formatAbstract = "abstract"
)

func NewTrainCommand() *cobra.Command {
	var (
		lang     string
		input    string
		format   string
		gz       bool
		encoding string
		chinese  string
		keepRare bool
		out      profileFlags
	)
	trainCommand := &cobra.Command{
		Use:   "train",
		Short: "Build a language profile from training text",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			generator := &corpus.Generator{KeepRare: keepRare}
			if chinese != "" {
				converter, err := text.NewChineseConverter(chinese)
				if err != nil {
					return err
				}
				generator.Converter = converter
			}

			r, err := corpus.Open(input, gz)
			if err != nil {
				return err
			}
			defer func(r io.ReadCloser) {
				if err := r.Close(); err != nil {
					logger.WithError(err).Warn("Failed to close training data")
				}
			}(r)

			var src corpus.Source
			switch format {
			case formatAbstract:
				src = corpus.NewAbstractSource(r)
			case formatText:
				decoded, err := corpus.Decode(r, encoding)
				if err != nil {
					return err
				}
				src = corpus.NewTextSource(decoded)
			default:
				return fmt.Errorf("unknown training data format: %s", format)
			}

			p, err := generator.Generate(ctx, lang, src)
			if err != nil {
				return err
			}

			store, err := out.open(ctx)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Save(ctx, p.ToDocument()); err != nil {
				return err
			}
			logger.WithField("language", lang).WithField("grams", len(p.Frequencies)).Info("Saved language profile")
			return nil
		},
	}
	trainCommand.Flags().StringVarP(&lang, "lang", "l", "", "language name of the profile")
	trainCommand.Flags().StringVarP(&input, "input", "i", "", "training data file")
	trainCommand.Flags().StringVar(&format, "format", formatText, "training data format (text|abstract)")
	trainCommand.Flags().BoolVar(&gz, "gzip", false, "training data is gzip compressed (implied by a .gz suffix)")
	trainCommand.Flags().StringVar(&encoding, "encoding", "", "charset of plain text training data, UTF-8 by default")
	trainCommand.Flags().StringVar(&chinese, "chinese", "", "convert Chinese text before training (t2s|s2t)")
	trainCommand.Flags().BoolVar(&keepRare, "keep-rare", false, "keep rare n-grams")
	out.bind(trainCommand, "out")
	_ = trainCommand.MarkFlagRequired("lang")
	_ = trainCommand.MarkFlagRequired("input")
	return trainCommand
}
