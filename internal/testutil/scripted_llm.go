package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/diarist/internal/llm"
)

// ScriptedLLM is an llm.LLMClient whose responses come from Respond. Every
// request is recorded so tests can assert on prompts and call counts.
type ScriptedLLM struct {
	Respond func(req llm.GenerateRequest) (string, error)

	mu       sync.Mutex
	requests []llm.GenerateRequest
}

// NewEchoLLM returns a ScriptedLLM that answers every request with text.
func NewEchoLLM(text string) *ScriptedLLM {
	return &ScriptedLLM{Respond: func(llm.GenerateRequest) (string, error) { return text, nil }}
}

// NewFailingLLM returns a ScriptedLLM that fails every request with err.
func NewFailingLLM(err error) *ScriptedLLM {
	return &ScriptedLLM{Respond: func(llm.GenerateRequest) (string, error) { return "", err }}
}

func (s *ScriptedLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	text, err := s.Respond(req)
	if err != nil {
		return nil, err
	}
	return &llm.GenerateResponse{Text: text, Model: "scripted"}, nil
}

func (s *ScriptedLLM) Available(context.Context) bool { return true }

// Requests returns a copy of every request received so far.
func (s *ScriptedLLM) Requests() []llm.GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.GenerateRequest, len(s.requests))
	copy(out, s.requests)
	return out
}
