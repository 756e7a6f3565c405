// Package scenario loads the benchmark test cases.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arturpietrzak/customer-service-llm/internal/models"
)

// Load reads scenarios from a JSON file holding either a bare array or an
// object with a "scenarios" key. IDs must be unique and every scenario must
// carry a known type and a user query.
func Load(path string) ([]models.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios: %w", err)
	}

	var scenarios []models.Scenario
	var wrapped struct {
		Scenarios []models.Scenario `json:"scenarios"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && len(wrapped.Scenarios) > 0 {
		scenarios = wrapped.Scenarios
	} else if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios %s: %w", path, err)
	}

	if err := validate(scenarios); err != nil {
		return nil, err
	}
	return scenarios, nil
}

func validate(scenarios []models.Scenario) error {
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios")
	}
	seen := make(map[string]bool, len(scenarios))
	for _, s := range scenarios {
		if s.ID == "" {
			return fmt.Errorf("scenario with empty id")
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate scenario id %q", s.ID)
		}
		seen[s.ID] = true
		if !s.ScenarioType.Valid() {
			return fmt.Errorf("scenario %s: unknown type %q", s.ID, s.ScenarioType)
		}
		if s.UserQuery == "" {
			return fmt.Errorf("scenario %s: empty user query", s.ID)
		}
	}
	return nil
}
