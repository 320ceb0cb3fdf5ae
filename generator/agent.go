package generator

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
)

// DefaultSampleSize is how many seeds are shown to the model per request.
const DefaultSampleSize = 10

// ErrNoSeeds is returned when there is nothing to sample few-shot examples from.
var ErrNoSeeds = errors.New("no seed questions to sample from")

// Producer yields one raw candidate per call.
type Producer interface {
	Produce(ctx context.Context, seeds QuestionSet) (string, error)
}

// ProducerFunc adapts a function to Producer.
type ProducerFunc func(ctx context.Context, seeds QuestionSet) (string, error)

func (f ProducerFunc) Produce(ctx context.Context, seeds QuestionSet) (string, error) {
	return f(ctx, seeds)
}

// QuestionAgent samples seeds into a few-shot prompt and asks the model for one more question.
type QuestionAgent struct {
	llm        LLMClient
	sampleSize int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuestionAgent builds an agent. A nil rng gets a randomly seeded one; sampleSize <= 0 means DefaultSampleSize.
func NewQuestionAgent(llm LLMClient, sampleSize int, rng *rand.Rand) (*QuestionAgent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &QuestionAgent{llm: llm, sampleSize: sampleSize, rng: rng}, nil
}

func (a *QuestionAgent) Produce(ctx context.Context, seeds QuestionSet) (string, error) {
	sampled, err := a.Sample(seeds)
	if err != nil {
		return "", err
	}
	raw, err := a.llm.Complete(ctx, BuildQuestionPrompt(sampled))
	if err != nil {
		return "", err
	}
	return Normalize(raw), nil
}

// Sample draws up to sampleSize distinct seeds uniformly at random.
func (a *QuestionAgent) Sample(seeds QuestionSet) ([]string, error) {
	if seeds.Len() == 0 {
		return nil, ErrNoSeeds
	}
	all := seeds.Sorted()
	k := min(a.sampleSize, len(all))

	a.mu.Lock()
	perm := a.rng.Perm(len(all))
	a.mu.Unlock()

	out := make([]string, k)
	for i := range k {
		out[i] = all[perm[i]]
	}
	return out, nil
}
