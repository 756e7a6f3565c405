package judge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arturpietrzak/customer-service-llm/internal/rubric"
)

const rawExcerptLimit = 280

type criterionVerdict struct {
	Score     json.Number `json:"score"`
	Reasoning string      `json:"reasoning"`
}

// parseScores extracts per-criterion integer scores from a judge response.
// Judges wrap JSON in markdown fences or chatter around it often enough that
// the parser trims to the outermost object before decoding. Any violation of
// the contract (missing criterion, non-integer score, score outside the
// criterion's scale) is a parse failure; scores are never invented or
// clamped on the read path.
func parseScores(content string, rub *rubric.Rubric) (map[string]int, string, error) {
	cleaned := stripFences(content)

	start := strings.IndexByte(cleaned, '{')
	end := strings.LastIndexByte(cleaned, '}')
	if start < 0 || end < start {
		return nil, "", fmt.Errorf("no JSON object in response")
	}
	cleaned = cleaned[start : end+1]

	var decoded map[string]criterionVerdict
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, "", fmt.Errorf("invalid JSON: %w", err)
	}

	scores := make(map[string]int, rub.Len())
	var rationale []string
	for _, c := range rub.Criteria() {
		cv, ok := decoded[c.Name]
		if !ok {
			return nil, "", fmt.Errorf("missing criterion %q", c.Name)
		}
		score, err := cv.Score.Int64()
		if err != nil {
			return nil, "", fmt.Errorf("criterion %q score %q is not an integer", c.Name, cv.Score.String())
		}
		if !c.InRange(int(score)) {
			return nil, "", fmt.Errorf("criterion %q score %d outside [%d,%d]", c.Name, score, c.ScaleMin, c.ScaleMax)
		}
		scores[c.Name] = int(score)
		if cv.Reasoning != "" {
			rationale = append(rationale, fmt.Sprintf("%s: %s", c.Name, cv.Reasoning))
		}
	}

	return scores, strings.Join(rationale, "\n"), nil
}

func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = content[len("```json"):]
	} else if strings.HasPrefix(content, "```") {
		content = content[len("```"):]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// excerpt truncates an unparseable response for the verdict record.
func excerpt(content string) string {
	content = strings.TrimSpace(content)
	if len(content) <= rawExcerptLimit {
		return content
	}
	return content[:rawExcerptLimit] + "..."
}
