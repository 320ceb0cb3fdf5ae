package answer

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"davinci_debate/generator"
	"davinci_debate/search"
)

type fakeSearcher struct {
	results []search.Result
	err     error
	gotTopK int
	gotQ    string
}

func (f *fakeSearcher) Search(_ context.Context, q string, topK int) ([]search.Result, error) {
	f.gotQ, f.gotTopK = q, topK
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) > topK {
		return f.results[:topK], nil
	}
	return f.results, nil
}

var llamaResults = []search.Result{
	{Name: "Llama - Wikipedia", Snippet: "The llama is a domesticated South American camelid."},
	{Name: "Alpaca vs Llama", Snippet: "Alpacas are smaller than llamas."},
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("llamas vs alpacas?", llamaResults)
	wantTail := "Question: llamas vs alpacas?\n\n" +
		"Search Results:\n" +
		"[1] Original Search Query: llamas vs alpacas?\n" +
		"[1] Search Result Title: Llama - Wikipedia\n" +
		"[1] Search Result Summary: The llama is a domesticated South American camelid.\n" +
		"\n" +
		"[2] Original Search Query: llamas vs alpacas?\n" +
		"[2] Search Result Title: Alpaca vs Llama\n" +
		"[2] Search Result Summary: Alpacas are smaller than llamas.\n" +
		"\n" +
		"\nAnswer:"
	if !strings.HasPrefix(got, qaPreamble+"\n\n") {
		t.Errorf("prompt does not start with the instructions")
	}
	if diff := cmp.Diff(wantTail, strings.TrimPrefix(got, qaPreamble+"\n\n")); diff != "" {
		t.Errorf("prompt mismatch (-want +got):\n%s", diff)
	}
}

func newTestAnswerer(t *testing.T, s Searcher, llm generator.LLMClient, topK int) *Answerer {
	t.Helper()
	a, err := NewAnswerer(s, llm, topK, log.NewWithOptions(io.Discard, log.Options{}))
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestAnswer(t *testing.T) {
	s := &fakeSearcher{results: llamaResults}
	llm := &generator.ScriptedLLM{Replies: []string{" Llamas are larger [1][2]."}}
	a := newTestAnswerer(t, s, llm, 0)

	got, err := a.Answer(context.Background(), "  llamas vs alpacas?  ", 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.gotQ != "llamas vs alpacas?" || s.gotTopK != DefaultTopK {
		t.Errorf("search called with %q/%d", s.gotQ, s.gotTopK)
	}
	if got.Text != " Llamas are larger [1][2]." {
		t.Errorf("Text = %q", got.Text)
	}
	if diff := cmp.Diff(llamaResults, got.Sources); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}

	if len(llm.Prompts) != 1 {
		t.Fatalf("llm called %d times", len(llm.Prompts))
	}
	p := llm.Prompts[0]
	if p.Text != got.Prompt || p.MaxTokens != 1000 || p.Temperature == nil || *p.Temperature != 0.2 {
		t.Errorf("unexpected completion request: %+v", p)
	}
}

func TestAnswerTopKOverride(t *testing.T) {
	s := &fakeSearcher{results: llamaResults}
	a := newTestAnswerer(t, s, &generator.ScriptedLLM{Replies: []string{"ok"}}, 3)
	got, err := a.Answer(context.Background(), "q", 1)
	if err != nil {
		t.Fatal(err)
	}
	if s.gotTopK != 1 || len(got.Sources) != 1 {
		t.Errorf("topK = %d, sources = %d", s.gotTopK, len(got.Sources))
	}
}

func TestAnswerErrors(t *testing.T) {
	a := newTestAnswerer(t, &fakeSearcher{}, &generator.ScriptedLLM{}, 0)
	if _, err := a.Answer(context.Background(), "   ", 0); !errors.Is(err, ErrEmptyQuestion) {
		t.Errorf("empty question: err = %v", err)
	}

	a = newTestAnswerer(t, &fakeSearcher{err: search.ErrNoResults}, &generator.ScriptedLLM{}, 0)
	if _, err := a.Answer(context.Background(), "q", 0); !errors.Is(err, search.ErrNoResults) {
		t.Errorf("search failure: err = %v", err)
	}

	a = newTestAnswerer(t, &fakeSearcher{results: llamaResults}, &generator.ScriptedLLM{}, 0)
	if _, err := a.Answer(context.Background(), "q", 0); !errors.Is(err, generator.ErrScriptExhausted) {
		t.Errorf("llm failure: err = %v", err)
	}
}

func TestNewAnswererValidates(t *testing.T) {
	if _, err := NewAnswerer(nil, &generator.ScriptedLLM{}, 0, nil); err == nil {
		t.Error("nil searcher accepted")
	}
	if _, err := NewAnswerer(&fakeSearcher{}, nil, 0, nil); err == nil {
		t.Error("nil llm accepted")
	}
}

func TestRenderHTML(t *testing.T) {
	got, err := RenderHTML(" Llamas are **larger** [1].\n\nAlpacas are smaller [2].")
	if err != nil {
		t.Fatal(err)
	}
	want := "<p>Llamas are <strong>larger</strong> [1].</p>\n<p>Alpacas are smaller [2].</p>\n"
	if got != want {
		t.Errorf("RenderHTML = %q, want %q", got, want)
	}
}
