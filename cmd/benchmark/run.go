package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arturpietrzak/customer-service-llm/internal/config"
	"github.com/arturpietrzak/customer-service-llm/internal/scenario"
	"github.com/arturpietrzak/customer-service-llm/internal/setup"
	"github.com/arturpietrzak/customer-service-llm/internal/setup/logger"
)

var (
	runName       string
	scenariosPath string
	catalogPath   string
	runModels     []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark: execute scenarios and judge the transcripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New(logLevel)
		ctx := cmd.Context()

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		scenarios, err := scenario.Load(scenariosPath)
		if err != nil {
			return fmt.Errorf("failed to load scenarios: %w", err)
		}

		modelCfgs := cfg.Models
		if len(runModels) > 0 {
			var selected []config.ModelConfig
			for _, id := range runModels {
				m, ok := cfg.Model(id)
				if !ok {
					return fmt.Errorf("unknown model %q", id)
				}
				selected = append(selected, m)
			}
			modelCfgs = selected
		}

		deps, err := setup.Wire(ctx, cfg, setup.LoadEnv(), catalogPath, &log)
		if err != nil {
			return fmt.Errorf("failed to wire dependencies: %w", err)
		}

		run, err := deps.Coordinator.Run(ctx, runName, modelCfgs, scenarios)
		if err != nil {
			return err
		}

		printSummary(run)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runName, "name", "", "human-readable run name")
	runCmd.Flags().StringVar(&scenariosPath, "scenarios", "configs/scenarios.json", "path to the scenario file")
	runCmd.Flags().StringVar(&catalogPath, "catalog", "configs/products.json", "path to the product catalog")
	runCmd.Flags().StringSliceVar(&runModels, "models", nil, "subset of configured model ids to run (default all)")
	rootCmd.AddCommand(runCmd)
}
