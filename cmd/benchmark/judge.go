package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arturpietrzak/customer-service-llm/internal/config"
	"github.com/arturpietrzak/customer-service-llm/internal/models"
	"github.com/arturpietrzak/customer-service-llm/internal/runner"
	"github.com/arturpietrzak/customer-service-llm/internal/setup"
	"github.com/arturpietrzak/customer-service-llm/internal/setup/logger"
)

var rejudgeRunID string

// judgeCmd re-scores the transcripts of a saved run with the currently
// configured judge ensemble. Useful after a rubric or judge change: the
// expensive model-under-test calls are reused, only judging repeats.
var judgeCmd = &cobra.Command{
	Use:   "judge",
	Short: "Re-judge the transcripts of a saved run",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New(logLevel)
		ctx := cmd.Context()

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		deps, err := setup.Wire(ctx, cfg, setup.LoadEnv(), "", &log)
		if err != nil {
			return fmt.Errorf("failed to wire dependencies: %w", err)
		}

		source, err := deps.Reader.GetRun(ctx, rejudgeRunID)
		if err != nil {
			return fmt.Errorf("failed to load run %s: %w", rejudgeRunID, err)
		}

		run := &models.RunRecord{
			RunID:         time.Now().Format("20060102_150405"),
			Name:          source.Name + "-rejudge",
			Models:        source.Models,
			Judges:        deps.Pool.Judges(),
			RubricVersion: deps.Rubric.Version(),
			ScenarioCount: source.ScenarioCount,
			Status:        models.RunRunning,
			StartTime:     time.Now(),
		}
		if err := deps.Store.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("failed to persist run start: %w", err)
		}

		for _, record := range source.Records {
			if record.Transcript == nil {
				// Execution failures have nothing to re-judge.
				run.Records = append(run.Records, record)
				continue
			}

			verdicts := deps.Pool.EvaluateAll(ctx, *record.Transcript)
			rejudged := deps.Aggregator.Aggregate(*record.Transcript, verdicts)
			if err := deps.Store.SaveRecord(ctx, run.RunID, rejudged); err != nil {
				log.Error().Err(err).Str("key", rejudged.Key()).Msg("failed to persist record")
			}
			run.Records = append(run.Records, rejudged)
		}

		run.Status = models.RunCompleted
		run.JudgeStats = runner.ComputeJudgeStats(run.Records)
		run.EndTime = time.Now()
		if err := deps.Store.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("failed to persist run result: %w", err)
		}

		printSummary(run)
		return nil
	},
}

func init() {
	judgeCmd.Flags().StringVar(&rejudgeRunID, "run", "", "run id to re-judge")
	_ = judgeCmd.MarkFlagRequired("run")
	rootCmd.AddCommand(judgeCmd)
}
