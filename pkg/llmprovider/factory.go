package llmprovider

import (
	"fmt"

	"student-calendar-assistant/pkg/gemini"
	"student-calendar-assistant/pkg/openai"
)

// ProviderSpec describes one provider entry from configuration.
// Providers are tried in the order they are listed.
type ProviderSpec struct {
	Name    string // "gemini", "openai", "qwen", "deepseek"
	APIKey  string
	Model   string
	BaseURL string // optional override for OpenAI-compatible backends
}

// NewProviders builds the fallback chain from configuration specs.
// Names other than "gemini" are treated as OpenAI-compatible backends.
func NewProviders(specs []ProviderSpec) ([]Provider, error) {
	providers := make([]Provider, 0, len(specs))

	for _, spec := range specs {
		switch spec.Name {
		case "gemini":
			client, err := gemini.New(gemini.Config{
				APIKey: spec.APIKey,
				Model:  spec.Model,
			})
			if err != nil {
				return nil, fmt.Errorf("gemini provider: %w", err)
			}
			providers = append(providers, NewGeminiAdapter(client))

		case "openai", "qwen", "deepseek":
			client, err := openai.New(openai.Config{
				APIKey:  spec.APIKey,
				Model:   spec.Model,
				BaseURL: spec.BaseURL,
			})
			if err != nil {
				return nil, fmt.Errorf("%s provider: %w", spec.Name, err)
			}
			providers = append(providers, NewOpenAIAdapter(client, spec.Name))

		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, spec.Name)
		}
	}

	if len(providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	return providers, nil
}
