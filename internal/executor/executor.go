// Package executor drives the model under test through one scenario and
// records the full interaction as a transcript.
package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/arturpietrzak/customer-service-llm/internal/config"
	"github.com/arturpietrzak/customer-service-llm/internal/llm"
	"github.com/arturpietrzak/customer-service-llm/internal/models"
	"github.com/arturpietrzak/customer-service-llm/internal/products"
)

// SearchTool is the catalog lookup the tool loop calls into.
type SearchTool interface {
	Search(q products.Query) []products.Product
}

// Pacer spaces out calls sharing a key.
type Pacer interface {
	Wait(ctx context.Context, key string) error
}

// Executor runs scenarios against models under test. Clients are keyed by
// provider name.
type Executor struct {
	clients map[string]llm.Client
	catalog SearchTool

	pacer          Pacer
	perTestTimeout time.Duration

	logger zerolog.Logger
}

func NewExecutor(clients map[string]llm.Client, catalog SearchTool, pacer Pacer, perTestTimeout time.Duration, logger zerolog.Logger) *Executor {
	return &Executor{
		clients:        clients,
		catalog:        catalog,
		pacer:          pacer,
		perTestTimeout: perTestTimeout,
		logger:         logger,
	}
}

// Execute runs one scenario against one model. A provider failure returns an
// error so the coordinator can record an execution failure; a tool error is
// recorded on the invocation and the scenario still completes.
func (e *Executor) Execute(ctx context.Context, model config.ModelConfig, scenario models.Scenario) (*models.Transcript, error) {
	client, ok := e.clients[model.Provider]
	if !ok {
		return nil, fmt.Errorf("no client for provider %q", model.Provider)
	}

	start := time.Now()
	transcript := &models.Transcript{
		ScenarioID:       scenario.ID,
		ModelID:          model.ID,
		ScenarioType:     scenario.ScenarioType,
		UserQuery:        scenario.UserQuery,
		ExpectedBehavior: scenario.ExpectedBehavior,
		Timestamp:        start,
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: scenario.UserQuery},
	}
	transcript.Turns = append(transcript.Turns, models.Turn{Role: "user", Content: scenario.UserQuery})

	response, err := e.complete(ctx, client, model, llm.Request{
		Model:       model.Model,
		Messages:    messages,
		Tools:       databaseTools(),
		MaxTokens:   model.MaxTokens,
		Temperature: model.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("model %s failed on scenario %s: %w", model.ID, scenario.ID, err)
	}

	if len(response.ToolCalls) == 0 {
		transcript.Turns = append(transcript.Turns, models.Turn{Role: "assistant", Content: response.Content})
		transcript.ExecutionTime = time.Since(start)
		return transcript, nil
	}

	final, err := e.runToolLoop(ctx, client, model, messages, response, transcript)
	if err != nil {
		return nil, err
	}

	transcript.Turns = append(transcript.Turns, models.Turn{Role: "assistant", Content: final})
	transcript.ExecutionTime = time.Since(start)
	return transcript, nil
}

// runToolLoop executes the requested tool calls against the catalog, then
// asks the model to format the results. The system prompt is swapped to the
// formatting prompt for the second call, as a customer would never see the
// raw tool output.
func (e *Executor) runToolLoop(ctx context.Context, client llm.Client, model config.ModelConfig, messages []llm.Message, response *llm.Response, transcript *models.Transcript) (string, error) {
	assistant := llm.Message{Role: "assistant", Content: response.Content, ToolCalls: response.ToolCalls}
	messages = append(messages, assistant)
	if response.Content != "" {
		transcript.Turns = append(transcript.Turns, models.Turn{Role: "assistant", Content: response.Content})
	}

	for _, call := range response.ToolCalls {
		invocation := e.invokeTool(call)
		transcript.ToolInvocations = append(transcript.ToolInvocations, invocation)

		var content string
		if invocation.Error != "" {
			content = fmt.Sprintf(`{"error": %q}`, invocation.Error)
		} else {
			encoded, err := json.Marshal(invocation.Result)
			if err != nil {
				return "", fmt.Errorf("failed to encode tool result: %w", err)
			}
			content = string(encoded)
		}

		messages = append(messages, llm.Message{Role: "tool", Content: content, ToolCallID: call.ID})
		transcript.Turns = append(transcript.Turns, models.Turn{Role: "tool", Content: content})
	}

	messages[0] = llm.Message{Role: "system", Content: formattingPrompt}

	final, err := e.complete(ctx, client, model, llm.Request{
		Model:       model.Model,
		Messages:    messages,
		MaxTokens:   model.MaxTokens,
		Temperature: model.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("model %s failed to format tool results: %w", model.ID, err)
	}

	return final.Content, nil
}

// invokeTool dispatches one tool call. Unknown tools and bad arguments are
// recorded as invocation errors, not crashes; the model is judged on how it
// handles them.
func (e *Executor) invokeTool(call llm.ToolCall) models.ToolInvocation {
	invocation := models.ToolInvocation{ToolName: call.Name}

	var args map[string]any
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			invocation.Error = fmt.Sprintf("invalid tool arguments: %v", err)
			return invocation
		}
	}
	invocation.Arguments = args

	switch call.Name {
	case "search_products":
		query := queryFromArgs(args)
		found := e.catalog.Search(query)
		list := make([]any, 0, len(found))
		for _, p := range found {
			list = append(list, map[string]any{
				"id":       p.ID,
				"name":     p.Name,
				"category": p.Category,
				"producer": p.Producer,
				"price":    p.Price,
			})
		}
		invocation.Result = map[string]any{"products": list, "count": len(list)}
	default:
		invocation.Error = fmt.Sprintf("unknown tool %q", call.Name)
	}

	return invocation
}

func (e *Executor) complete(ctx context.Context, client llm.Client, model config.ModelConfig, request llm.Request) (*llm.Response, error) {
	if e.pacer != nil {
		if err := e.pacer.Wait(ctx, model.Provider); err != nil {
			return nil, err
		}
	}

	callCtx := ctx
	if e.perTestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.perTestTimeout)
		defer cancel()
	}

	return client.Complete(callCtx, request)
}

func queryFromArgs(args map[string]any) products.Query {
	var q products.Query
	if v, ok := args["name"].(string); ok {
		q.Name = v
	} else if v, ok := args["query"].(string); ok {
		q.Name = v
	}
	if v, ok := args["category"].(string); ok {
		q.Category = v
	}
	if v, ok := args["producer"].(string); ok {
		q.Producer = v
	}
	if v, ok := args["min_price"].(float64); ok {
		q.MinPrice = v
	}
	if v, ok := args["max_price"].(float64); ok {
		q.MaxPrice = v
	}
	if v, ok := args["sort_by"].(string); ok {
		q.SortBy = v
	}
	if v, ok := args["limit"].(float64); ok {
		q.Limit = int(v)
	}
	return q
}

func databaseTools() []llm.ToolSpec {
	return []llm.ToolSpec{{
		Name:        "search_products",
		Description: "Search for products by name, category, producer, or price range",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{
					"type":        "string",
					"description": "Product name or keywords to search for",
				},
				"category": map[string]any{
					"type":        "string",
					"description": "EXACT category name - one of: Dyski, Karty graficzne, Klawiatury, Laptopy, Monitory, Myszki, Powerbanki, Routery, Smartwatche, Słuchawki, Tablety",
				},
				"producer": map[string]any{
					"type":        "string",
					"description": "Producer/brand name (e.g. Apple, Lenovo, Sony, Dell, ASUS)",
				},
				"min_price": map[string]any{
					"type":        "number",
					"description": "Minimum price in PLN",
				},
				"max_price": map[string]any{
					"type":        "number",
					"description": "Maximum price in PLN",
				},
			},
			"required": []string{},
		},
	}}
}
