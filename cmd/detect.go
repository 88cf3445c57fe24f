package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tsingjyujing/langdetect/detector"
)

func NewDetectCommand() *cobra.Command {
	var (
		profiles profileFlags
		settings detectorSettings
		seed     uint64
		all      bool
	)
	detectCommand := &cobra.Command{
		Use:   "detect [text...]",
		Short: "Detect the language of the arguments, or of every line of stdin",
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
			settings.verbose = logger.IsLevelEnabled(logrus.DebugLevel)
			factory, err := loadFactory(ctx, store, settings, prior)
			if err != nil {
				return err
			}

			seeded := cmd.Flags().Changed("seed")
			detect := func(text string) error {
				var d *detector.Detector
				if seeded {
					d = factory.CreateSeeded(seed)
				} else {
					d = factory.Create()
				}
				d.Append(text)
				return printDetection(cmd.OutOrStdout(), d, all)
			}

			if len(args) > 0 {
				return detect(strings.Join(args, " "))
			}
			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
			for scanner.Scan() {
				line := scanner.Text()
				if strings.TrimSpace(line) == "" {
					continue
				}
				if err := detect(line); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
	profiles.bind(detectCommand, "profiles")
	settings.bind(detectCommand)
	detectCommand.Flags().Uint64Var(&seed, "seed", 0, "seed of the random source, for reproducible results")
	detectCommand.Flags().BoolVarP(&all, "all", "a", false, "print every probable language with its probability")
	return detectCommand
}

func printDetection(w io.Writer, d *detector.Detector, all bool) error {
	probabilities, err := d.GetProbabilities()
	if err != nil {
		return err
	}
	if all {
		_, err = fmt.Fprintln(w, detector.String(probabilities))
		return err
	}
	language := detector.Unknown
	if len(probabilities) > 0 {
		language = probabilities[0].Lang
	}
	_, err = fmt.Fprintln(w, language)
	return err
}
