// Package llm abstracts the chat-completion providers the agent can run on.
// Providers take a full conversation plus tool declarations and return either
// final text or a set of requested tool calls.
package llm

import (
	"context"
)

// Message roles shared across providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a model-requested function invocation. Arguments is the raw
// JSON string as the model produced it; repair happens at dispatch time.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is one turn of a conversation. Assistant turns may carry tool
// calls; tool turns answer a specific call via ToolCallID.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolName   string     `json:"tool_name,omitempty"`
}

// ToolSpec declares one callable tool to the model. Parameters is a JSON
// schema object.
type ToolSpec struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// Reply is a provider's answer: final content, or tool calls to execute
// before the conversation can continue.
type Reply struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Provider is the interface for all LLM providers.
// Options keys understood by every provider: "model", "temperature",
// "max_tokens", "api_key"; unknown keys are ignored.
type Provider interface {
	Name() string
	Chat(ctx context.Context, messages []Message, tools []ToolSpec, options map[string]interface{}) (*Reply, error)
}

// GenerateResponse is the single-turn convenience used by callers that need
// plain text without tool access.
func GenerateResponse(ctx context.Context, p Provider, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	messages := []Message{}
	if systemPrompt != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: systemPrompt})
	}
	messages = append(messages, Message{Role: RoleUser, Content: prompt})

	reply, err := p.Chat(ctx, messages, nil, options)
	if err != nil {
		return "", err
	}
	return reply.Content, nil
}

func stringOption(options map[string]interface{}, key, fallback string) string {
	if val, ok := options[key].(string); ok && val != "" {
		return val
	}
	return fallback
}

func floatOption(options map[string]interface{}, key string, fallback float64) float64 {
	switch val := options[key].(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	default:
		return fallback
	}
}
