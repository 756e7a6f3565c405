package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"github.com/arturpietrzak/customer-service-llm/internal/api"
	"github.com/arturpietrzak/customer-service-llm/internal/api/middleware"
	"github.com/arturpietrzak/customer-service-llm/internal/models"
	"github.com/arturpietrzak/customer-service-llm/internal/store"
)

func setupTestAPI(t *testing.T) *restful.Container {
	t.Helper()

	fileStore, err := store.NewFileStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	run := &models.RunRecord{
		RunID:         "20260823_120000",
		Name:          "api-test",
		Models:        []string{"m1"},
		Judges:        []string{"judge_a"},
		RubricVersion: "pl-ecommerce-v1",
		Status:        models.RunCompleted,
		StartTime:     time.Now(),
	}
	if err := fileStore.SaveRun(ctx, run); err != nil {
		t.Fatalf("failed to seed run: %v", err)
	}
	record := models.EvaluationRecord{
		ScenarioID: "correct_001",
		ModelID:    "m1",
		Status:     models.RecordOk,
		Consensus: &models.ConsensusVerdict{
			ScenarioID: "correct_001",
			ModelID:    "m1",
			Scores:     map[string]int{"task_performance": 5},
			Overall:    5.0,
			Judges:     []string{"judge_a"},
		},
	}
	if err := fileStore.SaveRecord(ctx, run.RunID, record); err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}

	logger := zerolog.Nop()
	handler := api.NewHandler(fileStore, &logger)
	container := restful.NewContainer()
	container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(container, handler)
	return container
}

func TestAPI_Health(t *testing.T) {
	container := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
}

func TestAPI_ListRuns(t *testing.T) {
	container := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var runs []models.RunRecord
	if err := json.Unmarshal(recorder.Body.Bytes(), &runs); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != "20260823_120000" {
		t.Errorf("unexpected runs: %+v", runs)
	}
}

func TestAPI_GetRun(t *testing.T) {
	container := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/20260823_120000", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var run models.RunRecord
	if err := json.Unmarshal(recorder.Body.Bytes(), &run); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if run.Name != "api-test" {
		t.Errorf("unexpected run: %+v", run)
	}
}

func TestAPI_GetRun_NotFound(t *testing.T) {
	container := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/missing", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", recorder.Code)
	}
}

func TestAPI_GetRecord(t *testing.T) {
	container := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/20260823_120000/records/m1/correct_001", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var record models.EvaluationRecord
	if err := json.Unmarshal(recorder.Body.Bytes(), &record); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if record.Consensus == nil || record.Consensus.Overall != 5.0 {
		t.Errorf("unexpected record: %+v", record)
	}
}
