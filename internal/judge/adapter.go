package judge

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/arturpietrzak/customer-service-llm/internal/config"
	"github.com/arturpietrzak/customer-service-llm/internal/llm"
	"github.com/arturpietrzak/customer-service-llm/internal/models"
	"github.com/arturpietrzak/customer-service-llm/internal/rubric"
)

// Adapter wraps one configured judge model behind the Judge interface. It
// isolates the rest of the pipeline from provider errors and malformed
// responses: whatever happens downstream, Evaluate returns a verdict with a
// terminal status.
type Adapter struct {
	cfg    config.JudgeConfig
	client llm.Client
	rubric *rubric.Rubric
	logger zerolog.Logger
}

func NewAdapter(cfg config.JudgeConfig, client llm.Client, rub *rubric.Rubric, logger zerolog.Logger) *Adapter {
	return &Adapter{
		cfg:    cfg,
		client: client,
		rubric: rub,
		logger: logger.With().Str("judge_id", cfg.ID).Logger(),
	}
}

func (a *Adapter) ID() string {
	return a.cfg.ID
}

// Evaluate scores one transcript. Timeouts and transport errors become
// StatusTimeout and StatusCallFailure verdicts, both retryable by the pool;
// a response that comes back but violates the scoring contract becomes a
// non-retryable StatusParseFailure with the offending excerpt retained.
func (a *Adapter) Evaluate(ctx context.Context, transcript models.Transcript) models.JudgeVerdict {
	verdict := models.JudgeVerdict{
		JudgeID:    a.cfg.ID,
		ScenarioID: transcript.ScenarioID,
		ModelID:    transcript.ModelID,
	}

	start := time.Now()
	defer func() {
		verdict.Duration = time.Since(start)
	}()

	prompt, err := BuildPrompt(a.rubric, transcript)
	if err != nil {
		verdict.Status = models.StatusCallFailure
		verdict.Error = err.Error()
		return verdict
	}

	response, err := a.client.Complete(ctx, llm.Request{
		Model:       a.cfg.Model,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			verdict.Status = models.StatusTimeout
		} else {
			verdict.Status = models.StatusCallFailure
		}
		verdict.Error = err.Error()
		a.logger.Warn().
			Str("scenario_id", transcript.ScenarioID).
			Str("model_id", transcript.ModelID).
			Str("status", string(verdict.Status)).
			Err(err).
			Msg("judge call failed")
		return verdict
	}

	scores, rationale, err := parseScores(response.Content, a.rubric)
	if err != nil {
		verdict.Status = models.StatusParseFailure
		verdict.Error = err.Error()
		verdict.RawExcerpt = excerpt(response.Content)
		a.logger.Warn().
			Str("scenario_id", transcript.ScenarioID).
			Str("model_id", transcript.ModelID).
			Err(err).
			Msg("judge response failed to parse")
		return verdict
	}

	verdict.Status = models.StatusOk
	verdict.Scores = scores
	verdict.Rationale = rationale

	a.logger.Debug().
		Str("scenario_id", transcript.ScenarioID).
		Str("model_id", transcript.ModelID).
		Dur("duration", time.Since(start)).
		Msg("judge verdict ok")

	return verdict
}
