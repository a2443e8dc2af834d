// Package agent wires an LLM provider to the tool registry: provider
// selection from yaml config, and the conversational loop that dispatches
// model-requested tool calls.
package agent

import (
	"log"

	"investagent/pkg/core/llm"
)

// Config is the yaml provider configuration (config/agent.yaml).
type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

// AgentConfig overrides the provider or model for one agent role.
type AgentConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	Description string `yaml:"description"`
}

// Manager resolves agent roles to providers.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"openai": &llm.OpenAIProvider{},
			"gemini": &llm.GeminiProvider{},
		},
	}
}

// GetProvider resolves the provider for an agent role: role override first,
// then the global active provider, then openai.
func (m *Manager) GetProvider(agentType string) llm.Provider {
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
		log.Printf("[Agent] configured provider %q for %s not available, falling back", agentConfig.Provider, agentType)
	}

	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["openai"]
}

// GetProviderByName retrieves a provider by its registry name.
func (m *Manager) GetProviderByName(name string) (llm.Provider, bool) {
	p, ok := m.providers[name]
	return p, ok
}

// AvailableProviders lists the registered provider names.
func (m *Manager) AvailableProviders() []string {
	return []string{"openai", "gemini"}
}

// SetGlobalProvider switches the active provider at runtime.
func (m *Manager) SetGlobalProvider(name string) error {
	if _, ok := m.providers[name]; !ok {
		return &UnknownProviderError{Name: name}
	}
	m.config.ActiveProvider = name
	log.Printf("[Agent] global provider set to %s", name)
	return nil
}

// GetActiveProvider returns the current global provider name.
func (m *Manager) GetActiveProvider() string {
	return m.config.ActiveProvider
}

// ModelFor returns the configured model override for an agent role, if any.
func (m *Manager) ModelFor(agentType string) string {
	if agentConfig, ok := m.config.Agents[agentType]; ok {
		return agentConfig.Model
	}
	return ""
}

// UnknownProviderError reports a switch to an unregistered provider.
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return "provider " + e.Name + " not found"
}
