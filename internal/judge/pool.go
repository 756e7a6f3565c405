package judge

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/arturpietrzak/customer-service-llm/internal/config"
	"github.com/arturpietrzak/customer-service-llm/internal/models"
)

// Pacer spaces out calls sharing a key, typically one key per provider.
type Pacer interface {
	Wait(ctx context.Context, key string) error
}

// Pool fans one transcript out to every judge in the ensemble. Calls to
// different judges run concurrently; calls to the same judge are serialized
// through a per-judge semaphore shared across all concurrent transcripts.
type Pool struct {
	judges []Judge
	sems   map[string]chan struct{}
	cfg    config.PoolConfig

	pacer     Pacer
	pacerKeys map[string]string

	logger zerolog.Logger
}

// NewPool builds a pool over the enabled judges. pacerKeys maps judge IDs to
// pacing keys (usually the provider name); judges without an entry pace on
// their own ID. pacer may be nil.
func NewPool(judges []Judge, cfg config.PoolConfig, pacer Pacer, pacerKeys map[string]string, logger zerolog.Logger) *Pool {
	sems := make(map[string]chan struct{}, len(judges))
	for _, j := range judges {
		sems[j.ID()] = make(chan struct{}, cfg.MaxConcurrentPerJudge)
	}
	return &Pool{
		judges:    judges,
		sems:      sems,
		cfg:       cfg,
		pacer:     pacer,
		pacerKeys: pacerKeys,
		logger:    logger,
	}
}

// Judges returns the IDs of the pooled judges in their configured order.
func (p *Pool) Judges() []string {
	ids := make([]string, len(p.judges))
	for i, j := range p.judges {
		ids[i] = j.ID()
	}
	return ids
}

// EvaluateAll collects exactly one verdict per judge for the transcript, in
// the judges' configured order. It always returns len(judges) verdicts; a
// judge that kept failing is represented by its last failed verdict.
func (p *Pool) EvaluateAll(ctx context.Context, transcript models.Transcript) []models.JudgeVerdict {
	verdicts := make([]models.JudgeVerdict, len(p.judges))

	var wg sync.WaitGroup
	for i, j := range p.judges {
		wg.Add(1)
		go func(i int, j Judge) {
			defer wg.Done()
			verdicts[i] = p.evaluateOne(ctx, j, transcript)
		}(i, j)
	}
	wg.Wait()

	return verdicts
}

func (p *Pool) evaluateOne(ctx context.Context, j Judge, transcript models.Transcript) models.JudgeVerdict {
	sem := p.sems[j.ID()]

	var verdict models.JudgeVerdict
	attempts := 1 + p.cfg.RetriesPerJudge
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return p.cancelledVerdict(j, transcript, ctx.Err())
			case <-time.After(p.cfg.RetryDelay.Std()):
			}
			p.logger.Info().
				Str("judge_id", j.ID()).
				Str("scenario_id", transcript.ScenarioID).
				Str("model_id", transcript.ModelID).
				Int("attempt", attempt+1).
				Msg("retrying judge evaluation")
		}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return p.cancelledVerdict(j, transcript, ctx.Err())
		}

		verdict = p.callWithTimeout(ctx, j, transcript)
		<-sem

		switch verdict.Status {
		case models.StatusCallFailure, models.StatusTimeout:
			continue
		default:
			return verdict
		}
	}

	return verdict
}

func (p *Pool) callWithTimeout(ctx context.Context, j Judge, transcript models.Transcript) models.JudgeVerdict {
	if p.pacer != nil {
		key, ok := p.pacerKeys[j.ID()]
		if !ok {
			key = j.ID()
		}
		if err := p.pacer.Wait(ctx, key); err != nil {
			return p.cancelledVerdict(j, transcript, err)
		}
	}

	callCtx := ctx
	if timeout := p.cfg.PerCallTimeout.Std(); timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return j.Evaluate(callCtx, transcript)
}

// cancelledVerdict records a run-level cancellation as a call failure so the
// verdict count stays complete.
func (p *Pool) cancelledVerdict(j Judge, transcript models.Transcript, err error) models.JudgeVerdict {
	return models.JudgeVerdict{
		JudgeID:    j.ID(),
		ScenarioID: transcript.ScenarioID,
		ModelID:    transcript.ModelID,
		Status:     models.StatusCallFailure,
		Error:      err.Error(),
	}
}
