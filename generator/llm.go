package generator

import "context"

// LLMClient abstracts the text completion service so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings is the base configuration handed to concrete implementations.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	// Mode selects the endpoint: "completion" (default) or "chat".
	Mode string
}

// Prompt is a single completion request.
type Prompt struct {
	Text      string
	MaxTokens int64
	// Temperature is left to the service default when nil.
	Temperature *float64
}
