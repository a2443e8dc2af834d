// Package tools holds the explicit registry of agent-callable tools. Every
// tool is registered by name with a description, a JSON-schema parameter
// object, and a handler. Handlers return JSON strings; expected failures are
// reported as {"error": "..."} payloads so the model can read and react to
// them, not as Go errors.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"investagent/pkg/core/llm"
)

// Handler executes one tool call. args is the raw (already repaired)
// argument JSON.
type Handler func(ctx context.Context, args json.RawMessage) (string, error)

// Tool is one registered entry.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
	Handler     Handler
}

// Registry maps tool names to implementations, preserving registration
// order for deterministic listings.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Duplicate names are rejected.
func (r *Registry) Register(tool Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name is empty")
	}
	if tool.Handler == nil {
		return fmt.Errorf("tool %s has no handler", tool.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("tool %s is already registered", tool.Name)
	}
	r.tools[tool.Name] = tool
	r.order = append(r.order, tool.Name)
	return nil
}

// mustRegister is used by the static bindings, where a duplicate is a
// programming error.
func (r *Registry) mustRegister(tool Tool) {
	if err := r.Register(tool); err != nil {
		panic(err)
	}
}

// Get looks up one tool.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all tools in registration order.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Specs renders the registry as provider tool declarations.
func (r *Registry) Specs() []llm.ToolSpec {
	list := r.List()
	specs := make([]llm.ToolSpec, 0, len(list))
	for _, tool := range list {
		specs = append(specs, llm.ToolSpec{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  tool.Parameters,
		})
	}
	return specs
}

// Dispatch runs one tool by name. An unknown tool is an expected failure
// (the model hallucinated a name) and is reported as an error payload.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) (string, error) {
	tool, ok := r.Get(name)
	if !ok {
		return errJSON("unknown tool: %s", name), nil
	}

	log.Printf("[Tools] dispatching %s", name)
	return tool.Handler(ctx, args)
}

// errJSON renders an expected failure as the tool-boundary error payload.
func errJSON(format string, args ...interface{}) string {
	payload, _ := json.Marshal(map[string]string{"error": fmt.Sprintf(format, args...)})
	return string(payload)
}

// okJSON marshals a success payload; a marshal failure degrades to errJSON.
func okJSON(v interface{}) string {
	payload, err := json.Marshal(v)
	if err != nil {
		return errJSON("failed to encode result: %v", err)
	}
	return string(payload)
}

// schema builds a JSON-schema object declaration from property definitions.
func schema(properties map[string]interface{}, required ...string) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}
