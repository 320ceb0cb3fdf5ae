package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"davinci_debate/answer"
	"davinci_debate/config"
	"davinci_debate/search"
)

var answerOpts struct {
	query      string
	openaiKey  string
	bingKey    string
	topK       int
	format     string
	showPrompt bool
}

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Answer a question from the top web search snippets, with citations",
	Args:  cobra.NoArgs,
	RunE:  runAnswer,
}

func init() {
	f := answerCmd.Flags()
	f.StringVar(&answerOpts.query, "query", "", "question to answer")
	f.StringVar(&answerOpts.openaiKey, "openai-api-key", "", "OpenAI API key (default $OPENAI_API_KEY)")
	f.StringVar(&answerOpts.bingKey, "bing-api-key", "", "Bing API key (default $BING_API_KEY)")
	f.IntVar(&answerOpts.topK, "top-k-search-results", answer.DefaultTopK, "number of search results to use for the query")
	f.StringVar(&answerOpts.format, "format", "text", "output format: text, html or json")
	f.BoolVar(&answerOpts.showPrompt, "show-prompt", false, "print the assembled prompt before the answer")
	_ = answerCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(answerCmd)
}

func runAnswer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(answerOpts.openaiKey)
	if err != nil {
		return err
	}
	if answerOpts.bingKey != "" {
		cfg.Search.APIKey = answerOpts.bingKey
	}
	a, err := buildAnswerer(cfg, answerOpts.topK)
	if err != nil {
		return err
	}

	ans, err := a.Answer(cmd.Context(), answerOpts.query, answerOpts.topK)
	if err != nil {
		return err
	}
	out, err := formatAnswer(ans, answerOpts.format, answerOpts.showPrompt)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func buildAnswerer(cfg config.Config, topK int) (*answer.Answerer, error) {
	llm, err := buildLLM(cfg.LLM)
	if err != nil {
		return nil, err
	}
	sc, err := search.New(search.Config{
		APIKey:   cfg.Search.APIKey,
		Endpoint: cfg.Search.Endpoint,
		Market:   cfg.Search.Market,
	}, nil)
	if err != nil {
		return nil, err
	}
	return answer.NewAnswerer(sc, llm, topK, logger)
}

func formatAnswer(ans answer.Answer, format string, showPrompt bool) (string, error) {
	switch format {
	case "text":
		if showPrompt {
			return ans.Prompt + ans.Text, nil
		}
		return strings.TrimSpace(ans.Text), nil
	case "html":
		return answer.RenderHTML(ans.Text)
	case "json":
		if !showPrompt {
			ans.Prompt = ""
		}
		b, err := json.MarshalIndent(ans, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, html or json)", format)
	}
}
