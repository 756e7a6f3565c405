// Package consensus folds the judge ensemble's verdicts for one transcript
// into a single deterministic record.
package consensus

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arturpietrzak/customer-service-llm/internal/models"
	"github.com/arturpietrzak/customer-service-llm/internal/rubric"
)

// Aggregator computes consensus verdicts under a fixed rubric. Aggregation
// is pure: the same verdicts in the same order always produce the same
// record.
type Aggregator struct {
	rubric *rubric.Rubric
	logger zerolog.Logger
}

func NewAggregator(rub *rubric.Rubric, logger zerolog.Logger) *Aggregator {
	return &Aggregator{rubric: rub, logger: logger}
}

// Aggregate builds the evaluation record for one transcript from the full
// verdict set. Only StatusOk verdicts contribute scores; failed verdicts are
// carried on the record for audit. With zero successful verdicts the record
// is an explicit failure, never a default score.
func (a *Aggregator) Aggregate(transcript models.Transcript, verdicts []models.JudgeVerdict) models.EvaluationRecord {
	record := models.EvaluationRecord{
		ScenarioID: transcript.ScenarioID,
		ModelID:    transcript.ModelID,
		Transcript: &transcript,
		Verdicts:   verdicts,
	}

	var ok []models.JudgeVerdict
	for _, v := range verdicts {
		if v.Status == models.StatusOk {
			ok = append(ok, v)
		}
	}

	if len(ok) == 0 {
		record.Status = models.RecordFailed
		record.Reason = models.ReasonNoSuccessfulJudges
		for _, v := range verdicts {
			record.Attempted = append(record.Attempted, v.JudgeID)
		}
		a.logger.Warn().
			Str("scenario_id", transcript.ScenarioID).
			Str("model_id", transcript.ModelID).
			Int("attempted", len(verdicts)).
			Msg("no successful judges for transcript")
		return record
	}

	consensus := &models.ConsensusVerdict{
		ScenarioID: transcript.ScenarioID,
		ModelID:    transcript.ModelID,
		Scores:     make(map[string]int, a.rubric.Len()),
	}
	for _, v := range ok {
		consensus.Judges = append(consensus.Judges, v.JudgeID)
	}

	for _, c := range a.rubric.Criteria() {
		var sum int
		for _, v := range ok {
			sum += v.Scores[c.Name]
		}
		mean := float64(sum) / float64(len(ok))
		consensus.Scores[c.Name] = c.Clamp(roundHalfUp(mean))
	}

	// Consensus scores are in range by construction, so the weighted sum
	// cannot fail.
	overall, err := a.rubric.WeightedScore(consensus.Scores)
	if err != nil {
		a.logger.Error().Err(err).Msg("weighted score failed on consensus scores")
	}
	consensus.Overall = overall
	consensus.Agreement = agreement(ok, a.rubric)
	consensus.Rationale = combineRationales(ok)

	record.Status = models.RecordOk
	record.Consensus = consensus
	return record
}

// roundHalfUp rounds to the nearest integer with ties going up, so a 4.5
// mean becomes 5.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// agreement summarizes pairwise disagreement between the successful judges.
// It is undefined for a single judge.
func agreement(ok []models.JudgeVerdict, rub *rubric.Rubric) *models.Agreement {
	if len(ok) < 2 {
		return nil
	}

	var (
		deltaSum      int
		deltaCount    int
		maxDelta      int
		criteriaTight int
	)
	criteria := rub.Criteria()
	for _, c := range criteria {
		tight := true
		for i := 0; i < len(ok); i++ {
			for j := i + 1; j < len(ok); j++ {
				delta := ok[i].Scores[c.Name] - ok[j].Scores[c.Name]
				if delta < 0 {
					delta = -delta
				}
				deltaSum += delta
				deltaCount++
				if delta > maxDelta {
					maxDelta = delta
				}
				if delta > 1 {
					tight = false
				}
			}
		}
		if tight {
			criteriaTight++
		}
	}

	return &models.Agreement{
		MeanPairwiseDelta: float64(deltaSum) / float64(deltaCount),
		MaxPairwiseDelta:  maxDelta,
		WithinOnePoint:    float64(criteriaTight) / float64(len(criteria)),
	}
}

func combineRationales(ok []models.JudgeVerdict) string {
	var parts []string
	for _, v := range ok {
		if v.Rationale == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("[%s]\n%s", v.JudgeID, v.Rationale))
	}
	return strings.Join(parts, "\n\n")
}
