package executor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arturpietrzak/customer-service-llm/internal/config"
	"github.com/arturpietrzak/customer-service-llm/internal/llm"
	"github.com/arturpietrzak/customer-service-llm/internal/models"
	"github.com/arturpietrzak/customer-service-llm/internal/products"
)

type fakeClient struct {
	responses []*llm.Response
	err       error
	requests  []llm.Request
}

func (f *fakeClient) Complete(ctx context.Context, request llm.Request) (*llm.Response, error) {
	f.requests = append(f.requests, request)
	if f.err != nil {
		return nil, f.err
	}
	response := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return response, nil
}

func catalog() *products.Store {
	return products.NewStore([]products.Product{
		{ID: 1, Name: "ThinkPad X1", Category: "Laptopy", Producer: "Lenovo", Price: 4299},
		{ID: 2, Name: "IdeaPad Gaming", Category: "Laptopy", Producer: "Lenovo", Price: 3199},
	})
}

func lenovoScenario() models.Scenario {
	return models.Scenario{
		ID:           "correct_001",
		ScenarioType: models.ScenarioCorrect,
		UserQuery:    "Jakie macie laptopy Lenovo?",
	}
}

func testModel() config.ModelConfig {
	return config.ModelConfig{ID: "m1", Provider: "openrouter", Model: "meta-llama/llama-4-scout", MaxTokens: 1000}
}

func newTestExecutor(client llm.Client) *Executor {
	return NewExecutor(map[string]llm.Client{"openrouter": client}, catalog(), nil, 0, zerolog.Nop())
}

func TestExecute_NoToolCalls(t *testing.T) {
	client := &fakeClient{responses: []*llm.Response{{Content: "Przepraszam, nie sprzedajemy telefonów komórkowych."}}}

	transcript, err := newTestExecutor(client).Execute(context.Background(), testModel(), lenovoScenario())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(client.requests) != 1 {
		t.Fatalf("expected 1 call, got %d", len(client.requests))
	}
	if transcript.FinalResponse() != "Przepraszam, nie sprzedajemy telefonów komórkowych." {
		t.Errorf("unexpected final response: %q", transcript.FinalResponse())
	}
	if len(transcript.ToolInvocations) != 0 {
		t.Errorf("expected no tool invocations, got %d", len(transcript.ToolInvocations))
	}
}

func TestExecute_ToolLoop(t *testing.T) {
	client := &fakeClient{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{ID: "call_0", Name: "search_products", Arguments: `{"producer": "Lenovo", "category": "Laptopy"}`}}},
		{Content: "Oto dostępne laptopy Lenovo: ThinkPad X1 - 4299 PLN, IdeaPad Gaming - 3199 PLN."},
	}}

	transcript, err := newTestExecutor(client).Execute(context.Background(), testModel(), lenovoScenario())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(client.requests) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(client.requests))
	}
	if len(client.requests[0].Tools) == 0 {
		t.Error("first call must declare the database tools")
	}
	if len(client.requests[1].Tools) != 0 {
		t.Error("formatting call must not declare tools")
	}
	if client.requests[1].Messages[0].Role != "system" || !strings.Contains(client.requests[1].Messages[0].Content, "sformatować wyniki") {
		t.Error("formatting call must swap in the formatting system prompt")
	}

	if len(transcript.ToolInvocations) != 1 {
		t.Fatalf("expected 1 tool invocation, got %d", len(transcript.ToolInvocations))
	}
	inv := transcript.ToolInvocations[0]
	if inv.ToolName != "search_products" || inv.Error != "" {
		t.Errorf("unexpected invocation: %+v", inv)
	}
	if count, _ := inv.Result["count"].(int); count != 2 {
		t.Errorf("expected 2 products found, got %v", inv.Result["count"])
	}
	if !strings.Contains(transcript.FinalResponse(), "ThinkPad") {
		t.Errorf("unexpected final response: %q", transcript.FinalResponse())
	}
}

func TestExecute_UnknownToolRecordedAsError(t *testing.T) {
	client := &fakeClient{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{ID: "call_0", Name: "drop_database", Arguments: `{}`}}},
		{Content: "Nie mogę tego zrobić."},
	}}

	transcript, err := newTestExecutor(client).Execute(context.Background(), testModel(), lenovoScenario())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(transcript.ToolInvocations) != 1 || transcript.ToolInvocations[0].Error == "" {
		t.Errorf("expected recorded tool error, got %+v", transcript.ToolInvocations)
	}
	if transcript.FinalResponse() == "" {
		t.Error("scenario must still complete after a tool error")
	}
}

func TestExecute_ProviderErrorPropagates(t *testing.T) {
	client := &fakeClient{err: errors.New("upstream 500")}

	if _, err := newTestExecutor(client).Execute(context.Background(), testModel(), lenovoScenario()); err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

func TestExecute_UnknownProvider(t *testing.T) {
	exec := NewExecutor(map[string]llm.Client{}, catalog(), nil, 0, zerolog.Nop())

	if _, err := exec.Execute(context.Background(), testModel(), lenovoScenario()); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestQueryFromArgs_QueryAlias(t *testing.T) {
	q := queryFromArgs(map[string]any{"query": "Lenovo", "max_price": 5000.0, "limit": 5.0})
	if q.Name != "Lenovo" || q.MaxPrice != 5000 || q.Limit != 5 {
		t.Errorf("unexpected query: %+v", q)
	}
}
