package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// MockLLM is an offline placeholder for local debugging; it never calls a remote model.
// Each call yields a new debate-style question so a generate run can finish.
type MockLLM struct {
	mu    sync.Mutex
	calls int
}

func (m *MockLLM) Complete(_ context.Context, _ Prompt) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return fmt.Sprintf(" Should mock question number %d be debated?\nQuestion: ignored", m.calls), nil
}

// ErrScriptExhausted is returned by ScriptedLLM once every reply was consumed.
var ErrScriptExhausted = errors.New("scripted llm: no replies left")

// ScriptedLLM replays canned replies in order and records the prompts it saw.
type ScriptedLLM struct {
	mu      sync.Mutex
	Replies []string
	Prompts []Prompt
}

func (s *ScriptedLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	if len(s.Replies) == 0 {
		return "", ErrScriptExhausted
	}
	reply := s.Replies[0]
	s.Replies = s.Replies[1:]
	return reply, nil
}
