// Package store persists benchmark runs. Two implementations exist: a JSON
// file store for local runs and a Redis store for shared deployments.
package store

import (
	"context"
	"errors"

	"github.com/arturpietrzak/customer-service-llm/internal/models"
)

var ErrNotFound = errors.New("not found")

// Store is the write side used by the run coordinator. SaveRecord persists
// incrementally so an interrupted run keeps its finished records; SaveRun
// writes the full run document and is called at least at start and end.
type Store interface {
	SaveRun(ctx context.Context, run *models.RunRecord) error
	SaveRecord(ctx context.Context, runID string, record models.EvaluationRecord) error
}

// Reader is the read side used by the API and the re-judge command.
type Reader interface {
	ListRuns(ctx context.Context) ([]models.RunRecord, error)
	GetRun(ctx context.Context, runID string) (*models.RunRecord, error)
	GetRecord(ctx context.Context, runID, modelID, scenarioID string) (*models.EvaluationRecord, error)
}
