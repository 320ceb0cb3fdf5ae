package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// ErrInvalidTarget is returned for a negative target count.
var ErrInvalidTarget = errors.New("target count must be non-negative")

// Sink persists an accepted question durably before it is counted.
type Sink interface {
	Append(question string) error
}

// RunParams wires the generation loop.
type RunParams struct {
	Seeds QuestionSet
	// Accepted holds what earlier runs produced; Run adds to it in place.
	Accepted QuestionSet
	Target   int
	Producer Producer
	Sink     Sink
	Delay    time.Duration
	Logger   *log.Logger
	// OnAccept, when set, is called after each persisted question.
	OnAccept func(question string)
}

// Run asks the producer for candidates until Accepted holds Target questions.
// It returns how many questions this call accepted. A producer or sink failure stops the run;
// questions already appended stay on disk.
func Run(ctx context.Context, p RunParams) (int, error) {
	if p.Target < 0 {
		return 0, ErrInvalidTarget
	}
	if p.Producer == nil || p.Sink == nil {
		return 0, errors.New("producer and sink are required")
	}
	if p.Seeds == nil {
		p.Seeds = QuestionSet{}
	}
	if p.Accepted == nil {
		p.Accepted = QuestionSet{}
	}
	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}

	if p.Accepted.Len() >= p.Target {
		logger.Info("nothing to generate",
			"already", p.Accepted.Len(), "target", p.Target)
		return 0, nil
	}
	logger.Info("generating questions", "count", p.Target-p.Accepted.Len())

	accepted := 0
	for p.Accepted.Len() < p.Target {
		candidate, err := p.Producer.Produce(ctx, p.Seeds)
		if err != nil {
			return accepted, fmt.Errorf("produce candidate: %w", err)
		}

		if err := Validate(candidate, p.Seeds, p.Accepted); err != nil {
			logger.Info("rejected candidate", "candidate", candidate, "reason", err)
		} else {
			if err := p.Sink.Append(candidate); err != nil {
				return accepted, fmt.Errorf("persist question: %w", err)
			}
			p.Accepted.Add(candidate)
			accepted++
			logger.Debug("accepted candidate", "candidate", candidate)
			if p.OnAccept != nil {
				p.OnAccept(candidate)
			}
		}

		if p.Accepted.Len() >= p.Target {
			break
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return accepted, err
		}
	}
	return accepted, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
