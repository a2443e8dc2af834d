package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"investagent/pkg/core/llm"
	"investagent/pkg/core/tools"
	"investagent/pkg/core/utils"
)

const (
	// maxToolDepth bounds the request/tool-call/response iterations per turn.
	maxToolDepth = 8
	// toolTimeout is the wall-clock cap on one tool execution. The analysis
	// pipeline is pure computation, so an abandoned run is safe to discard.
	toolTimeout = 60 * time.Second
)

// advisorRole selects the provider configuration for the assistant loop.
const advisorRole = "assistant"

// Loop runs tool-calling conversations against the registry.
type Loop struct {
	manager      *Manager
	registry     *tools.Registry
	systemPrompt string
	options      map[string]interface{}
}

func NewLoop(manager *Manager, registry *tools.Registry, systemPrompt string) *Loop {
	return &Loop{
		manager:      manager,
		registry:     registry,
		systemPrompt: systemPrompt,
		options:      map[string]interface{}{},
	}
}

// Session holds one conversation's identity and user/assistant history.
// Tool traffic is not retained between turns.
type Session struct {
	ID      string
	History []llm.Message
}

func (l *Loop) NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// Run processes one user turn: sends history plus tool declarations, executes
// any requested tool calls, and iterates until the model produces text or the
// depth bound is hit.
func (l *Loop) Run(ctx context.Context, session *Session, userInput string) (string, error) {
	provider := l.manager.GetProvider(advisorRole)

	options := make(map[string]interface{}, len(l.options)+1)
	for k, v := range l.options {
		options[k] = v
	}
	if model := l.manager.ModelFor(advisorRole); model != "" {
		options["model"] = model
	}

	messages := []llm.Message{{Role: llm.RoleSystem, Content: l.systemPrompt}}
	messages = append(messages, session.History...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userInput})

	specs := l.registry.Specs()

	for depth := 0; depth < maxToolDepth; depth++ {
		reply, err := provider.Chat(ctx, messages, specs, options)
		if err != nil {
			return "", fmt.Errorf("provider %s failed: %w", provider.Name(), err)
		}

		if len(reply.ToolCalls) == 0 {
			session.History = append(session.History,
				llm.Message{Role: llm.RoleUser, Content: userInput},
				llm.Message{Role: llm.RoleAssistant, Content: reply.Content},
			)
			return reply.Content, nil
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   reply.Content,
			ToolCalls: reply.ToolCalls,
		})

		for _, call := range reply.ToolCalls {
			result := l.execute(ctx, call)
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				ToolCallID: call.ID,
				ToolName:   call.Name,
				Content:    result,
			})
		}
	}

	return "", fmt.Errorf("tool-call depth %d exceeded in session %s", maxToolDepth, session.ID)
}

// execute runs one tool call under the wall-clock cap, repairing the argument
// JSON first. Failures become error payloads the model can read.
func (l *Loop) execute(ctx context.Context, call llm.ToolCall) string {
	args := call.Arguments
	if args == "" {
		args = "{}"
	}

	var probe map[string]interface{}
	repaired, err := utils.SmartParse(args, &probe)
	if err != nil {
		log.Printf("[Agent] unparsable arguments for %s: %v", call.Name, err)
		return fmt.Sprintf(`{"error": "invalid tool arguments: %s"}`, call.Name)
	}

	result, err := runWithTimeout(ctx, toolTimeout, func(ctx context.Context) (string, error) {
		return l.registry.Dispatch(ctx, call.Name, json.RawMessage(repaired))
	})
	if err != nil {
		log.Printf("[Agent] tool %s failed: %v", call.Name, err)
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return result
}

// runWithTimeout executes fn with a wall-clock cap. On timeout the in-flight
// result is discarded and a timeout error is returned.
func runWithTimeout(ctx context.Context, timeout time.Duration, fn func(context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value string
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := fn(ctx)
		done <- outcome{value, err}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		return "", fmt.Errorf("timeout after %s", timeout)
	}
}
