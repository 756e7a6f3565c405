package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arturpietrzak/customer-service-llm/internal/models"
)

// FileStore lays runs out as <dir>/<run_id>/run.json plus one
// <model>__<scenario>.json per evaluation record. Writes go through a temp
// file and rename so a crash never leaves a half-written document.
type FileStore struct {
	dir    string
	logger zerolog.Logger
}

func NewFileStore(dir string, logger zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) SaveRun(ctx context.Context, run *models.RunRecord) error {
	runDir := filepath.Join(s.dir, sanitize(run.RunID))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("failed to create run dir: %w", err)
	}
	return writeJSON(filepath.Join(runDir, "run.json"), run)
}

func (s *FileStore) SaveRecord(ctx context.Context, runID string, record models.EvaluationRecord) error {
	runDir := filepath.Join(s.dir, sanitize(runID))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("failed to create run dir: %w", err)
	}
	name := fmt.Sprintf("%s__%s.json", sanitize(record.ModelID), sanitize(record.ScenarioID))
	return writeJSON(filepath.Join(runDir, name), record)
}

func (s *FileStore) ListRuns(ctx context.Context) ([]models.RunRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	var runs []models.RunRecord
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		var run models.RunRecord
		if err := readJSON(filepath.Join(s.dir, entry.Name(), "run.json"), &run); err != nil {
			s.logger.Warn().Str("run_id", entry.Name()).Err(err).Msg("skipping unreadable run")
			continue
		}
		// The listing carries summaries only.
		run.Records = nil
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].StartTime.After(runs[j].StartTime) })
	return runs, nil
}

func (s *FileStore) GetRun(ctx context.Context, runID string) (*models.RunRecord, error) {
	var run models.RunRecord
	if err := readJSON(filepath.Join(s.dir, sanitize(runID), "run.json"), &run); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &run, nil
}

func (s *FileStore) GetRecord(ctx context.Context, runID, modelID, scenarioID string) (*models.EvaluationRecord, error) {
	name := fmt.Sprintf("%s__%s.json", sanitize(modelID), sanitize(scenarioID))
	var record models.EvaluationRecord
	if err := readJSON(filepath.Join(s.dir, sanitize(runID), name), &record); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// sanitize keeps identifiers from escaping the store directory.
func sanitize(id string) string {
	id = strings.ReplaceAll(id, "/", "_")
	return strings.ReplaceAll(id, "..", "_")
}
