package consensus

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arturpietrzak/customer-service-llm/internal/models"
	"github.com/arturpietrzak/customer-service-llm/internal/rubric"
)

func fiveCriteriaRubric(t *testing.T) *rubric.Rubric {
	t.Helper()
	rub, err := rubric.Load(rubric.Spec{
		Version: "pl-ecommerce-v1",
		Criteria: []rubric.CriterionSpec{
			{Name: "task_performance", Weight: 0.30},
			{Name: "response_quality", Weight: 0.25},
			{Name: "language_quality", Weight: 0.15},
			{Name: "tool_usage", Weight: 0.15},
			{Name: "factual_accuracy", Weight: 0.15},
		},
	})
	if err != nil {
		t.Fatalf("failed to load rubric: %v", err)
	}
	return rub
}

func transcript() models.Transcript {
	return models.Transcript{ScenarioID: "s1", ModelID: "m1", ScenarioType: models.ScenarioCorrect}
}

func okVerdict(judgeID string, scores map[string]int) models.JudgeVerdict {
	return models.JudgeVerdict{
		JudgeID:    judgeID,
		ScenarioID: "s1",
		ModelID:    "m1",
		Status:     models.StatusOk,
		Scores:     scores,
	}
}

func uniformScores(v int) map[string]int {
	return map[string]int{
		"task_performance": v,
		"response_quality": v,
		"language_quality": v,
		"tool_usage":       v,
		"factual_accuracy": v,
	}
}

func TestAggregate_TieRoundsUp(t *testing.T) {
	agg := NewAggregator(fiveCriteriaRubric(t), zerolog.Nop())

	record := agg.Aggregate(transcript(), []models.JudgeVerdict{
		okVerdict("a", uniformScores(4)),
		okVerdict("b", uniformScores(5)),
	})

	if record.Status != models.RecordOk {
		t.Fatalf("expected ok record, got %s", record.Status)
	}
	for name, score := range record.Consensus.Scores {
		if score != 5 {
			t.Errorf("criterion %s: expected 4.5 to round up to 5, got %d", name, score)
		}
	}
	if record.Consensus.Overall != 5.0 {
		t.Errorf("expected overall 5.0, got %v", record.Consensus.Overall)
	}
}

func TestAggregate_IdenticalScoresExact(t *testing.T) {
	agg := NewAggregator(fiveCriteriaRubric(t), zerolog.Nop())

	record := agg.Aggregate(transcript(), []models.JudgeVerdict{
		okVerdict("a", uniformScores(3)),
		okVerdict("b", uniformScores(3)),
		okVerdict("c", uniformScores(3)),
	})

	for name, score := range record.Consensus.Scores {
		if score != 3 {
			t.Errorf("criterion %s: expected 3, got %d", name, score)
		}
	}
	if record.Consensus.Overall != 3.0 {
		t.Errorf("expected overall exactly 3.0, got %v", record.Consensus.Overall)
	}
	ag := record.Consensus.Agreement
	if ag == nil {
		t.Fatal("expected agreement for multi-judge consensus")
	}
	if ag.MeanPairwiseDelta != 0 || ag.MaxPairwiseDelta != 0 || ag.WithinOnePoint != 1.0 {
		t.Errorf("expected perfect agreement, got %+v", ag)
	}
}

func TestAggregate_RoundThenWeight(t *testing.T) {
	agg := NewAggregator(fiveCriteriaRubric(t), zerolog.Nop())

	// Means: task 4.5→5, response 3.5→4, others identical.
	a := map[string]int{"task_performance": 4, "response_quality": 3, "language_quality": 4, "tool_usage": 4, "factual_accuracy": 2}
	b := map[string]int{"task_performance": 5, "response_quality": 4, "language_quality": 4, "tool_usage": 4, "factual_accuracy": 2}

	record := agg.Aggregate(transcript(), []models.JudgeVerdict{okVerdict("a", a), okVerdict("b", b)})

	want := map[string]int{"task_performance": 5, "response_quality": 4, "language_quality": 4, "tool_usage": 4, "factual_accuracy": 2}
	if !reflect.DeepEqual(record.Consensus.Scores, want) {
		t.Errorf("unexpected consensus scores: %v", record.Consensus.Scores)
	}

	// 0.30*5 + 0.25*4 + 0.15*4 + 0.15*4 + 0.15*2
	wantOverall := 0.30*5 + 0.25*4 + 0.15*4 + 0.15*4 + 0.15*2
	if math.Abs(record.Consensus.Overall-wantOverall) > 1e-9 {
		t.Errorf("expected overall %v, got %v", wantOverall, record.Consensus.Overall)
	}
}

func TestAggregate_SingleJudgePassthrough(t *testing.T) {
	agg := NewAggregator(fiveCriteriaRubric(t), zerolog.Nop())

	scores := map[string]int{"task_performance": 5, "response_quality": 4, "language_quality": 5, "tool_usage": 3, "factual_accuracy": 4}
	record := agg.Aggregate(transcript(), []models.JudgeVerdict{okVerdict("solo", scores)})

	if !reflect.DeepEqual(record.Consensus.Scores, scores) {
		t.Errorf("single judge scores must pass through, got %v", record.Consensus.Scores)
	}
	if record.Consensus.Agreement != nil {
		t.Error("agreement must be undefined for a single judge")
	}
	if !reflect.DeepEqual(record.Consensus.Judges, []string{"solo"}) {
		t.Errorf("unexpected judges: %v", record.Consensus.Judges)
	}
}

func TestAggregate_FailedVerdictsExcludedFromScores(t *testing.T) {
	agg := NewAggregator(fiveCriteriaRubric(t), zerolog.Nop())

	failed := models.JudgeVerdict{JudgeID: "broken", ScenarioID: "s1", ModelID: "m1", Status: models.StatusParseFailure}
	record := agg.Aggregate(transcript(), []models.JudgeVerdict{okVerdict("a", uniformScores(2)), failed})

	for name, score := range record.Consensus.Scores {
		if score != 2 {
			t.Errorf("criterion %s: failed judge must not contribute, got %d", name, score)
		}
	}
	if len(record.Verdicts) != 2 {
		t.Errorf("failed verdicts must stay on the record, got %d", len(record.Verdicts))
	}
	if record.Consensus.Agreement != nil {
		t.Error("agreement must be undefined with one contributing judge")
	}
}

func TestAggregate_NoSuccessfulJudges(t *testing.T) {
	agg := NewAggregator(fiveCriteriaRubric(t), zerolog.Nop())

	verdicts := []models.JudgeVerdict{
		{JudgeID: "a", ScenarioID: "s1", ModelID: "m1", Status: models.StatusCallFailure},
		{JudgeID: "b", ScenarioID: "s1", ModelID: "m1", Status: models.StatusTimeout},
	}
	record := agg.Aggregate(transcript(), verdicts)

	if record.Status != models.RecordFailed {
		t.Fatalf("expected failed record, got %s", record.Status)
	}
	if record.Reason != models.ReasonNoSuccessfulJudges {
		t.Errorf("unexpected reason: %s", record.Reason)
	}
	if record.Consensus != nil {
		t.Error("failed record must not carry a consensus verdict")
	}
	if !reflect.DeepEqual(record.Attempted, []string{"a", "b"}) {
		t.Errorf("unexpected attempted judges: %v", record.Attempted)
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	agg := NewAggregator(fiveCriteriaRubric(t), zerolog.Nop())

	verdicts := []models.JudgeVerdict{
		okVerdict("a", map[string]int{"task_performance": 4, "response_quality": 3, "language_quality": 5, "tool_usage": 2, "factual_accuracy": 4}),
		okVerdict("b", map[string]int{"task_performance": 5, "response_quality": 4, "language_quality": 4, "tool_usage": 3, "factual_accuracy": 3}),
		okVerdict("c", map[string]int{"task_performance": 3, "response_quality": 4, "language_quality": 5, "tool_usage": 3, "factual_accuracy": 5}),
	}

	first := agg.Aggregate(transcript(), verdicts)
	second := agg.Aggregate(transcript(), verdicts)

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(firstJSON) != string(secondJSON) {
		t.Error("aggregation must be deterministic for identical input")
	}
}

func TestAggregate_ConsensusScoresInRange(t *testing.T) {
	agg := NewAggregator(fiveCriteriaRubric(t), zerolog.Nop())

	record := agg.Aggregate(transcript(), []models.JudgeVerdict{
		okVerdict("a", uniformScores(1)),
		okVerdict("b", uniformScores(5)),
	})

	for name, score := range record.Consensus.Scores {
		if score < 1 || score > 5 {
			t.Errorf("criterion %s: consensus score %d outside scale", name, score)
		}
	}
	ag := record.Consensus.Agreement
	if ag == nil || ag.MaxPairwiseDelta != 4 {
		t.Errorf("expected max pairwise delta 4, got %+v", ag)
	}
	if ag.WithinOnePoint != 0 {
		t.Errorf("expected within-one-point 0, got %v", ag.WithinOnePoint)
	}
}
