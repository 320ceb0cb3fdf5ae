package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
)

func seedSet(n int) QuestionSet {
	s := QuestionSet{}
	for i := range n {
		s.Add(fmt.Sprintf("Should seed number %02d be debated?", i))
	}
	return s
}

func TestQuestionAgentSample(t *testing.T) {
	llm := &ScriptedLLM{}
	agent, err := NewQuestionAgent(llm, 0, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatal(err)
	}
	seeds := seedSet(25)

	for range 20 {
		got, err := agent.Sample(seeds)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != DefaultSampleSize {
			t.Fatalf("sampled %d, want %d", len(got), DefaultSampleSize)
		}
		seen := QuestionSet{}
		for _, q := range got {
			if !seeds.Has(q) {
				t.Fatalf("sampled %q which is not a seed", q)
			}
			if seen.Has(q) {
				t.Fatalf("sampled %q twice", q)
			}
			seen.Add(q)
		}
	}
}

func TestQuestionAgentSampleFewSeeds(t *testing.T) {
	agent, _ := NewQuestionAgent(&ScriptedLLM{}, 10, nil)
	got, err := agent.Sample(seedSet(3))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("sampled %d, want 3", len(got))
	}
	if _, err := agent.Sample(QuestionSet{}); !errors.Is(err, ErrNoSeeds) {
		t.Fatalf("err = %v, want %v", err, ErrNoSeeds)
	}
}

func TestQuestionAgentProduce(t *testing.T) {
	llm := &ScriptedLLM{Replies: []string{"  Should naïve voters be guided?\nQuestion: Should we stop?"}}
	agent, err := NewQuestionAgent(llm, 2, rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatal(err)
	}
	got, err := agent.Produce(context.Background(), seedSet(5))
	if err != nil {
		t.Fatal(err)
	}
	if want := "Should naive voters be guided?"; got != want {
		t.Errorf("Produce = %q, want %q", got, want)
	}

	if len(llm.Prompts) != 1 {
		t.Fatalf("prompts sent = %d, want 1", len(llm.Prompts))
	}
	p := llm.Prompts[0]
	if p.MaxTokens != QuestionMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", p.MaxTokens, QuestionMaxTokens)
	}
	lines := strings.Split(p.Text, "\n")
	if len(lines) != 5 {
		t.Fatalf("prompt has %d lines, want 5:\n%s", len(lines), p.Text)
	}
	if lines[0] != questionPreamble || lines[1] != "" || lines[4] != "Question:" {
		t.Errorf("unexpected prompt layout:\n%s", p.Text)
	}
	for _, l := range lines[2:4] {
		if !strings.HasPrefix(l, "Question: Should seed number") {
			t.Errorf("seed line %q not labelled", l)
		}
	}
}

func TestQuestionAgentProduceError(t *testing.T) {
	agent, _ := NewQuestionAgent(&ScriptedLLM{}, 0, nil)
	_, err := agent.Produce(context.Background(), seedSet(3))
	if !errors.Is(err, ErrScriptExhausted) {
		t.Fatalf("err = %v, want %v", err, ErrScriptExhausted)
	}
}

func TestNewQuestionAgentRequiresLLM(t *testing.T) {
	if _, err := NewQuestionAgent(nil, 0, nil); err == nil {
		t.Fatal("expected error for nil llm")
	}
}
