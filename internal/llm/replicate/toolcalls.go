package replicate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/arturpietrzak/customer-service-llm/internal/llm"
)

var toolCallPattern = regexp.MustCompile(`(?i)TOOL_CALL:\s*(\w+)\s*\((\{[^}]*\})\)`)

// toolInstructions builds the Polish prompt preamble that coaches
// prompt-only models into the TOOL_CALL convention.
func toolInstructions(tools []llm.ToolSpec) string {
	var descriptions []string
	for _, tool := range tools {
		var params []string
		if props, ok := tool.Schema["properties"].(map[string]any); ok {
			required := requiredParams(tool.Schema)
			names := make([]string, 0, len(props))
			for name := range props {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if required[name] {
					params = append(params, fmt.Sprintf(`"%s": "example_value"`, name))
				}
			}
		}
		descriptions = append(descriptions, fmt.Sprintf("- %s: %s\n  Example: %s({%s})",
			tool.Name, tool.Description, tool.Name, strings.Join(params, ", ")))
	}

	return fmt.Sprintf(`=== OBOWIĄZKOWE INSTRUKCJE UŻYCIA NARZĘDZI ===
Jesteś asystentem obsługi klienta w sklepie elektronicznym.

Dostępne narzędzia:
%s

KRYTYCZNA ZASADA: Gdy użytkownik pyta o produkty, ceny lub dostępność, MUSISZ użyć narzędzi do przeszukania bazy danych.

WYMAGANY DOKŁADNY FORMAT:
TOOL_CALL: nazwa_funkcji({"parametr": "wartość"})

Przykłady:
- Użytkownik pyta "Pokaż mi laptopy Lenovo" → MUSISZ odpowiedzieć: TOOL_CALL: search_products({"query": "Lenovo laptops"})
- Użytkownik pyta "Ile kosztuje iPhone?" → MUSISZ odpowiedzieć: TOOL_CALL: search_products({"query": "iPhone"})

NIE wymyślaj cen ani informacji o produktach. ZAWSZE używaj formatu TOOL_CALL najpierw.
=== KONIEC INSTRUKCJI ===`, strings.Join(descriptions, "\n"))
}

func requiredParams(schema map[string]any) map[string]bool {
	out := make(map[string]bool)
	required, _ := schema["required"].([]any)
	for _, r := range required {
		if name, ok := r.(string); ok {
			out[name] = true
		}
	}
	return out
}

// extractToolCalls scans the completion text for TOOL_CALL lines naming a
// declared tool. Single-quoted pseudo-JSON is repaired before giving up on
// an argument blob.
func extractToolCalls(content string, tools []llm.ToolSpec) []llm.ToolCall {
	known := make(map[string]bool, len(tools))
	for _, t := range tools {
		known[t.Name] = true
	}

	var calls []llm.ToolCall
	for _, match := range toolCallPattern.FindAllStringSubmatch(content, -1) {
		name, args := match[1], strings.TrimSpace(match[2])
		if !known[name] {
			continue
		}
		if !json.Valid([]byte(args)) {
			repaired := strings.ReplaceAll(args, "'", `"`)
			if !json.Valid([]byte(repaired)) {
				continue
			}
			args = repaired
		}
		calls = append(calls, llm.ToolCall{
			ID:        fmt.Sprintf("call_%d", len(calls)),
			Name:      name,
			Arguments: args,
		})
	}
	return calls
}
