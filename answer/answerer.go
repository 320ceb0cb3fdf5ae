package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"davinci_debate/generator"
	"davinci_debate/search"
)

const (
	DefaultTopK = 5

	answerMaxTokens   = 1000
	answerTemperature = 0.2
)

var ErrEmptyQuestion = errors.New("question is required")

// Searcher is the web search capability the answerer depends on.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]search.Result, error)
}

// Answer is the outcome of one question.
type Answer struct {
	Question string          `json:"question"`
	Prompt   string          `json:"prompt,omitempty"`
	Text     string          `json:"answer"`
	Sources  []search.Result `json:"sources"`
}

// Answerer grounds a completion on the top web search snippets.
type Answerer struct {
	search Searcher
	llm    generator.LLMClient
	topK   int
	logger *log.Logger
}

func NewAnswerer(s Searcher, llm generator.LLMClient, topK int, logger *log.Logger) (*Answerer, error) {
	if s == nil {
		return nil, errors.New("searcher is required")
	}
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Answerer{search: s, llm: llm, topK: topK, logger: logger}, nil
}

// Answer runs one search and one completion for question. topK <= 0 uses the answerer's default.
func (a *Answerer) Answer(ctx context.Context, question string, topK int) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, ErrEmptyQuestion
	}
	if topK <= 0 {
		topK = a.topK
	}

	results, err := a.search.Search(ctx, question, topK)
	if err != nil {
		return Answer{}, fmt.Errorf("search: %w", err)
	}
	a.logger.Debug("search done", "query", question, "results", len(results))

	prompt := BuildPrompt(question, results)
	temp := answerTemperature
	text, err := a.llm.Complete(ctx, generator.Prompt{
		Text:        prompt,
		MaxTokens:   answerMaxTokens,
		Temperature: &temp,
	})
	if err != nil {
		return Answer{}, fmt.Errorf("complete: %w", err)
	}

	return Answer{
		Question: question,
		Prompt:   prompt,
		Text:     text,
		Sources:  results,
	}, nil
}
