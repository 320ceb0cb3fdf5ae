package generator

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	ModeCompletion = "completion"
	ModeChat       = "chat"

	// DefaultCompletionModel replaces the retired text-davinci-003.
	DefaultCompletionModel = "gpt-3.5-turbo-instruct"
)

// OpenAILLM implements LLMClient using the official openai-go SDK.
type OpenAILLM struct {
	Model string
	Mode  string
	Opts  []option.RequestOption
}

func NewOpenAILLMFromConfig(cfg *LLMSettings, extra ...option.RequestOption) (*OpenAILLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; pass --openai-api-key or set OPENAI_API_KEY")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultCompletionModel
	}
	mode := cfg.Mode
	if mode == "" {
		mode = ModeCompletion
	}
	if mode != ModeCompletion && mode != ModeChat {
		return nil, fmt.Errorf("llm mode %q not supported", mode)
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)
	return &OpenAILLM{Model: model, Mode: mode, Opts: opts}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	client := openai.NewClient(o.Opts...)
	if o.Mode == ModeChat {
		return o.chat(ctx, client, prompt)
	}

	params := openai.CompletionNewParams{
		Model:  openai.CompletionNewParamsModel(o.Model),
		Prompt: openai.CompletionNewParamsPromptUnion{OfString: openai.String(prompt.Text)},
	}
	if prompt.MaxTokens > 0 {
		params.MaxTokens = openai.Int(prompt.MaxTokens)
	}
	if prompt.Temperature != nil {
		params.Temperature = openai.Float(*prompt.Temperature)
	}

	resp, err := client.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Text, nil
}

func (o *OpenAILLM) chat(ctx context.Context, client openai.Client, prompt Prompt) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt.Text)},
	}
	if prompt.MaxTokens > 0 {
		params.MaxTokens = openai.Int(prompt.MaxTokens)
	}
	if prompt.Temperature != nil {
		params.Temperature = openai.Float(*prompt.Temperature)
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
