// Package judge turns raw LLM clients into scoring judges: each adapter owns
// prompt construction, response parsing and failure classification for one
// configured judge, and the pool fans a transcript out across the ensemble.
package judge

import (
	"context"

	"github.com/arturpietrzak/customer-service-llm/internal/models"
)

// Judge scores a single transcript. Evaluate never returns an error for a
// bad model response; failures are encoded in the verdict status so the
// aggregator and the reliability stats can account for them.
type Judge interface {
	ID() string
	Evaluate(ctx context.Context, transcript models.Transcript) models.JudgeVerdict
}
