package llm

// Message is one chat message sent to or received from a provider.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall is a tool invocation requested by the model. Arguments is the raw
// JSON string exactly as the provider returned it.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolSpec declares one tool the model may call.
type ToolSpec struct {
	Name        string
	Description string
	Schema      map[string]any
}

// Request is a provider-neutral completion request.
type Request struct {
	Model       string
	Messages    []Message
	Tools       []ToolSpec
	MaxTokens   int
	Temperature float64
}

// Usage reports token consumption when the provider supplies it.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is a provider-neutral completion response.
type Response struct {
	Content    string
	ToolCalls  []ToolCall
	StopReason string
	Usage      *Usage
}
