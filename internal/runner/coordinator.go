// Package runner coordinates a full benchmark run: every configured model
// against every scenario, bounded concurrency, incremental persistence.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arturpietrzak/customer-service-llm/internal/config"
	"github.com/arturpietrzak/customer-service-llm/internal/models"
)

//go:generate mockgen -source=coordinator.go -destination=mocks/coordinator_mocks.go -package=mocks

// ScenarioExecutor produces a transcript for one (model, scenario) pair.
type ScenarioExecutor interface {
	Execute(ctx context.Context, model config.ModelConfig, scenario models.Scenario) (*models.Transcript, error)
}

// JudgePool fans one transcript out to the judge ensemble.
type JudgePool interface {
	EvaluateAll(ctx context.Context, transcript models.Transcript) []models.JudgeVerdict
	Judges() []string
}

// Aggregator folds the verdicts for one transcript into a record.
type Aggregator interface {
	Aggregate(transcript models.Transcript, verdicts []models.JudgeVerdict) models.EvaluationRecord
}

// RecordStore persists the run and its records.
type RecordStore interface {
	SaveRun(ctx context.Context, run *models.RunRecord) error
	SaveRecord(ctx context.Context, runID string, record models.EvaluationRecord) error
}

// Coordinator owns one run at a time. Individual task failures never abort
// the run; they become execution-failure records and the remaining tasks
// continue.
type Coordinator struct {
	executor   ScenarioExecutor
	pool       JudgePool
	aggregator Aggregator
	store      RecordStore

	cfg           config.RunConfig
	rubricVersion string

	logger zerolog.Logger
}

func NewCoordinator(executor ScenarioExecutor, pool JudgePool, aggregator Aggregator, store RecordStore, cfg config.RunConfig, rubricVersion string, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		executor:      executor,
		pool:          pool,
		aggregator:    aggregator,
		store:         store,
		cfg:           cfg,
		rubricVersion: rubricVersion,
		logger:        logger,
	}
}

// Run executes every scenario against every model and returns the completed
// run record. The run document is persisted at start (status running) and at
// the end; each evaluation record is persisted as soon as it exists so an
// interrupted run keeps its finished work.
func (c *Coordinator) Run(ctx context.Context, name string, modelCfgs []config.ModelConfig, scenarios []models.Scenario) (*models.RunRecord, error) {
	if len(modelCfgs) == 0 {
		return nil, fmt.Errorf("no models to run")
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios to run")
	}

	run := &models.RunRecord{
		RunID:         time.Now().Format("20060102_150405"),
		Name:          name,
		Judges:        c.pool.Judges(),
		RubricVersion: c.rubricVersion,
		ScenarioCount: len(scenarios),
		Status:        models.RunRunning,
		StartTime:     time.Now(),
	}
	for _, m := range modelCfgs {
		run.Models = append(run.Models, m.ID)
	}

	if err := c.store.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to persist run start: %w", err)
	}

	c.logger.Info().
		Str("run_id", run.RunID).
		Int("models", len(modelCfgs)).
		Int("scenarios", len(scenarios)).
		Msg("benchmark run started")

	var mu sync.Mutex
	records := make([]models.EvaluationRecord, 0, len(modelCfgs)*len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.ConcurrentTasks)

	for _, model := range modelCfgs {
		for _, scn := range scenarios {
			model, scn := model, scn
			g.Go(func() error {
				record := c.evaluateOne(gctx, model, scn)

				if err := c.store.SaveRecord(gctx, run.RunID, record); err != nil {
					c.logger.Error().Err(err).Str("key", record.Key()).Msg("failed to persist record")
				}

				mu.Lock()
				records = append(records, record)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		run.Status = models.RunFailed
	} else {
		run.Status = models.RunCompleted
	}

	run.Records = records
	run.JudgeStats = ComputeJudgeStats(records)
	run.EndTime = time.Now()

	if err := c.store.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to persist run result: %w", err)
	}

	c.logger.Info().
		Str("run_id", run.RunID).
		Str("status", string(run.Status)).
		Int("records", len(records)).
		Dur("elapsed", run.EndTime.Sub(run.StartTime)).
		Msg("benchmark run finished")

	return run, nil
}

// evaluateOne runs the full pipeline for a single (model, scenario) pair.
// Execution failures become explicit failure records, never lost tasks.
func (c *Coordinator) evaluateOne(ctx context.Context, model config.ModelConfig, scn models.Scenario) models.EvaluationRecord {
	transcript, err := c.executor.Execute(ctx, model, scn)
	if err != nil {
		c.logger.Warn().
			Str("model_id", model.ID).
			Str("scenario_id", scn.ID).
			Err(err).
			Msg("scenario execution failed")
		return models.EvaluationRecord{
			ScenarioID: scn.ID,
			ModelID:    model.ID,
			Status:     models.RecordExecutionFailed,
			Reason:     err.Error(),
		}
	}

	verdicts := c.pool.EvaluateAll(ctx, *transcript)
	return c.aggregator.Aggregate(*transcript, verdicts)
}

// ComputeJudgeStats tallies per-judge reliability over a record set. Every
// verdict counts, including those from failed records.
func ComputeJudgeStats(records []models.EvaluationRecord) map[string]models.JudgeStats {
	stats := make(map[string]models.JudgeStats)
	for _, record := range records {
		for _, v := range record.Verdicts {
			s := stats[v.JudgeID]
			s.Evaluations++
			switch v.Status {
			case models.StatusOk:
				s.Ok++
			case models.StatusParseFailure:
				s.ParseFailures++
			case models.StatusCallFailure:
				s.CallFailures++
			case models.StatusTimeout:
				s.Timeouts++
			}
			stats[v.JudgeID] = s
		}
	}
	for id, s := range stats {
		if s.Evaluations > 0 {
			s.FailureRate = float64(s.Evaluations-s.Ok) / float64(s.Evaluations)
		}
		stats[id] = s
	}
	return stats
}
