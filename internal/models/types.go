package models

import (
	"fmt"
	"time"
)

// ScenarioType classifies what the model under test is expected to do.
type ScenarioType string

const (
	ScenarioCorrect   ScenarioType = "correct"
	ScenarioIncorrect ScenarioType = "incorrect"
	ScenarioMalicious ScenarioType = "malicious"
)

func (t ScenarioType) Valid() bool {
	switch t {
	case ScenarioCorrect, ScenarioIncorrect, ScenarioMalicious:
		return true
	}
	return false
}

// Scenario is one test case presented to a model under test.
type Scenario struct {
	ID               string       `json:"id"`
	ScenarioType     ScenarioType `json:"scenario_type"`
	UserQuery        string       `json:"user_query"`
	ExpectedBehavior string       `json:"expected_behavior"`
	Difficulty       int          `json:"difficulty,omitempty"`
	Category         string       `json:"category,omitempty"`
	Producer         string       `json:"producer,omitempty"`
	ProductIDs       []int        `json:"product_ids,omitempty"`
}

// Turn is one message in a recorded interaction.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolInvocation records a single tool call made by the model under test,
// together with the result the tool returned (or the error it produced).
type ToolInvocation struct {
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
	Result    map[string]any `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Transcript is the full recorded interaction produced by one model for one
// scenario. Immutable after the executor returns it.
type Transcript struct {
	ScenarioID       string           `json:"scenario_id"`
	ModelID          string           `json:"model_id"`
	ScenarioType     ScenarioType     `json:"scenario_type"`
	UserQuery        string           `json:"user_query"`
	ExpectedBehavior string           `json:"expected_behavior,omitempty"`
	Turns            []Turn           `json:"turns"`
	ToolInvocations  []ToolInvocation `json:"tool_invocations,omitempty"`
	ExecutionTime    time.Duration    `json:"execution_time_ns"`
	Timestamp        time.Time        `json:"timestamp"`
}

// Key identifies the (model, scenario) pair this transcript belongs to.
// Exactly one transcript exists per key per run.
func (t Transcript) Key() string {
	return fmt.Sprintf("%s/%s", t.ModelID, t.ScenarioID)
}

// FinalResponse returns the content of the last assistant turn, which is the
// answer the judges score.
func (t Transcript) FinalResponse() string {
	for i := len(t.Turns) - 1; i >= 0; i-- {
		if t.Turns[i].Role == "assistant" {
			return t.Turns[i].Content
		}
	}
	return ""
}

// VerdictStatus is the terminal state of one judge invocation.
type VerdictStatus string

const (
	StatusOk           VerdictStatus = "ok"
	StatusParseFailure VerdictStatus = "parse_failure"
	StatusCallFailure  VerdictStatus = "call_failure"
	StatusTimeout      VerdictStatus = "timeout"
)

// JudgeVerdict is one judge's scoring of one transcript. Failed verdicts are
// retained for failure-rate accounting, never silently dropped.
type JudgeVerdict struct {
	JudgeID    string         `json:"judge_id"`
	ScenarioID string         `json:"scenario_id"`
	ModelID    string         `json:"model_id"`
	Status     VerdictStatus  `json:"status"`
	Scores     map[string]int `json:"scores,omitempty"`
	Rationale  string         `json:"rationale,omitempty"`
	// RawExcerpt holds the unparseable response fragment on parse failures.
	RawExcerpt string        `json:"raw_excerpt,omitempty"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
}

// Agreement summarizes cross-judge disagreement for one transcript. It is
// only computed when at least two judges contributed; a nil pointer on the
// consensus verdict means "undefined", not zero disagreement.
type Agreement struct {
	MeanPairwiseDelta float64 `json:"mean_pairwise_delta"`
	MaxPairwiseDelta  int     `json:"max_pairwise_delta"`
	// WithinOnePoint is the fraction of criteria where every pairwise
	// delta is at most one point.
	WithinOnePoint float64 `json:"within_one_point"`
}

// ConsensusVerdict is the aggregated cross-judge result for one transcript.
type ConsensusVerdict struct {
	ScenarioID string         `json:"scenario_id"`
	ModelID    string         `json:"model_id"`
	Scores     map[string]int `json:"scores"`
	Overall    float64        `json:"overall"`
	Agreement  *Agreement     `json:"agreement,omitempty"`
	Judges     []string       `json:"judges"`
	Rationale  string         `json:"rationale"`
}

// Evaluation record status values.
const (
	RecordOk              = "ok"
	RecordFailed          = "failed"
	RecordExecutionFailed = "execution_failed"
)

// ReasonNoSuccessfulJudges marks records where every judge reached a
// terminal failure.
const ReasonNoSuccessfulJudges = "no_successful_judges"

// EvaluationRecord is the persisted outcome for one (model, scenario) pair:
// either a consensus verdict or an explicit failure marker, always with the
// full set of underlying judge verdicts for audit.
type EvaluationRecord struct {
	ScenarioID string            `json:"scenario_id"`
	ModelID    string            `json:"model_id"`
	Status     string            `json:"status"`
	Reason     string            `json:"reason,omitempty"`
	Transcript *Transcript       `json:"transcript,omitempty"`
	Consensus  *ConsensusVerdict `json:"consensus,omitempty"`
	Verdicts   []JudgeVerdict    `json:"verdicts,omitempty"`
	// Attempted lists the judges that were asked when no verdict succeeded.
	Attempted []string `json:"attempted_judges,omitempty"`
}

func (r EvaluationRecord) Key() string {
	return fmt.Sprintf("%s/%s", r.ModelID, r.ScenarioID)
}

// JudgeStats is the per-judge reliability summary for a run.
type JudgeStats struct {
	Evaluations   int     `json:"evaluations"`
	Ok            int     `json:"ok"`
	ParseFailures int     `json:"parse_failures"`
	CallFailures  int     `json:"call_failures"`
	Timeouts      int     `json:"timeouts"`
	FailureRate   float64 `json:"failure_rate"`
}

// RunStatus tracks the lifecycle of a benchmark run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// RunRecord is the complete persisted output of one benchmark run.
type RunRecord struct {
	RunID         string                `json:"run_id"`
	Name          string                `json:"name"`
	Models        []string              `json:"models"`
	Judges        []string              `json:"judges"`
	RubricVersion string                `json:"rubric_version"`
	ScenarioCount int                   `json:"scenario_count"`
	Status        RunStatus             `json:"status"`
	StartTime     time.Time             `json:"start_time"`
	EndTime       time.Time             `json:"end_time,omitempty"`
	Records       []EvaluationRecord    `json:"records"`
	JudgeStats    map[string]JudgeStats `json:"judge_stats,omitempty"`
}
