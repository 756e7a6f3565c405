// Package replicate implements the llm.Client interface against the
// Replicate predictions API. Replicate models take a single prompt string,
// so the chat history is flattened and tool calling is emulated with a
// TOOL_CALL text convention parsed back out of the completion.
package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arturpietrzak/customer-service-llm/internal/llm"
)

const defaultBaseURL = "https://api.replicate.com/v1"

type Client struct {
	apiToken string
	baseURL  string
	client   *http.Client

	pollInterval time.Duration
}

func NewClient(apiToken string, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiToken:     apiToken,
		baseURL:      baseURL,
		client:       &http.Client{Timeout: 120 * time.Second},
		pollInterval: time.Second,
	}
}

type predictionRequest struct {
	Version string         `json:"version,omitempty"`
	Input   map[string]any `json:"input"`
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

func (c *Client) Complete(ctx context.Context, request llm.Request) (*llm.Response, error) {
	if c.apiToken == "" {
		return nil, fmt.Errorf("Replicate API token required")
	}

	payload := predictionRequest{
		Input: map[string]any{
			"prompt":      flattenMessages(request.Messages, request.Tools),
			"temperature": request.Temperature,
			"max_tokens":  request.MaxTokens,
		},
	}

	// Model references are either "owner/name:version" or a bare model path.
	// Versioned references go through /predictions, bare paths through the
	// model-scoped endpoint.
	endpoint := c.baseURL + "/predictions"
	if owner, name, version, ok := splitModelRef(request.Model); ok {
		if version != "" {
			payload.Version = version
		} else {
			endpoint = fmt.Sprintf("%s/models/%s/%s/predictions", c.baseURL, owner, name)
		}
	}

	created, err := c.createPrediction(ctx, endpoint, payload)
	if err != nil {
		return nil, err
	}

	final, err := c.waitForPrediction(ctx, created)
	if err != nil {
		return nil, err
	}

	content := decodeOutput(final.Output)
	response := &llm.Response{
		Content:    content,
		StopReason: final.Status,
	}
	if len(request.Tools) > 0 {
		response.ToolCalls = extractToolCalls(content, request.Tools)
	}

	return response, nil
}

func (c *Client) createPrediction(ctx context.Context, endpoint string, payload predictionRequest) (*prediction, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prediction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("replicate returned status %d: %s", resp.StatusCode, excerpt)
	}

	var created prediction
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode prediction: %w", err)
	}
	return &created, nil
}

func (c *Client) waitForPrediction(ctx context.Context, p *prediction) (*prediction, error) {
	current := p
	for {
		switch current.Status {
		case "succeeded":
			return current, nil
		case "failed", "canceled":
			return nil, fmt.Errorf("prediction %s %s: %s", current.ID, current.Status, current.Error)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		getURL := current.URLs.Get
		if getURL == "" {
			getURL = fmt.Sprintf("%s/predictions/%s", c.baseURL, current.ID)
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, getURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create poll request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)

		resp, err := c.client.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("poll failed: %w", err)
		}

		var polled prediction
		err = json.NewDecoder(resp.Body).Decode(&polled)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode poll response: %w", err)
		}
		current = &polled
	}
}

// splitModelRef parses "owner/name" or "owner/name:version" references.
func splitModelRef(model string) (owner, name, version string, ok bool) {
	if i := strings.IndexByte(model, ':'); i >= 0 {
		version = model[i+1:]
		model = model[:i]
	}
	parts := strings.SplitN(model, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], version, true
}

// decodeOutput joins list outputs; language models stream tokens as a list
// of string fragments.
func decodeOutput(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var fragments []string
	if err := json.Unmarshal(raw, &fragments); err == nil {
		return strings.Join(fragments, "")
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}

	return string(raw)
}

func flattenMessages(messages []llm.Message, tools []llm.ToolSpec) string {
	var parts []string

	if len(tools) > 0 {
		parts = append(parts, toolInstructions(tools), "")
	}

	for _, m := range messages {
		switch m.Role {
		case "system":
			parts = append(parts, "System: "+m.Content)
		case "user":
			parts = append(parts, "User: "+m.Content)
		case "assistant":
			parts = append(parts, "Assistant: "+m.Content)
		case "tool":
			parts = append(parts, "Tool Result: "+m.Content)
		}
	}

	if len(tools) > 0 {
		parts = append(parts, "", `REMINDER: Use TOOL_CALL: function_name({"param": "value"}) format when needed!`, "Assistant:")
	}

	return strings.Join(parts, "\n")
}
