package openai

import "context"

// IOpenAI defines the interface for OpenAI-compatible chat completion
// APIs (OpenAI, Azure OpenAI, DeepSeek, Qwen and friends all speak this
// protocol). Implementations are safe for concurrent use.
type IOpenAI interface {
	// GenerateContent sends a generation request to the API.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model being used.
	Model() string
}

// New creates a new OpenAI-compatible client with the given configuration.
func New(cfg Config) (IOpenAI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newOpenAIImpl(cfg), nil
}
