package main

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Polish customer-service LLM benchmark",
	Long: `Runs Polish customer-service scenarios against LLMs and scores the
transcripts with a multi-judge consensus: every enabled judge evaluates each
transcript independently against a weighted rubric, and the per-criterion
scores are averaged into a consensus verdict.

Use "benchmark run --help" for run options.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/evaluation.yaml", "path to the evaluation config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
