package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tsingjyujing/langdetect/utils"
)

var logger = logrus.New()

// NewRootCommand assembles every sub command under one root.
func NewRootCommand(extra ...*cobra.Command) *cobra.Command {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:          "langdetect",
		Short:        "langdetect identifies the natural language of a text",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				utils.SetVerbose()
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	commands := []*cobra.Command{
		NewTrainCommand(),
		NewDetectCommand(),
		NewEvaluateCommand(),
		NewServerCommand(),
		NewMcpCommand(),
	}
	for _, command := range append(commands, extra...) {
		rootCmd.AddCommand(command)
	}
	return rootCmd
}
