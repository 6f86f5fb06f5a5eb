package llm

import (
	"context"
	"fmt"
	"sync"
)

// Fake is a scripted Client for tests: returns queued responses in
// order and records every prompt it was asked.
type Fake struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Prompts   []string
	calls     int
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Complete(ctx context.Context, prompt string, opts ...Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", &CompletionError{Provider: "fake", Err: f.Err}
	}
	if f.calls >= len(f.Responses) {
		return "", &CompletionError{Provider: "fake", Err: fmt.Errorf("no scripted response for call %d", f.calls+1)}
	}
	resp := f.Responses[f.calls]
	f.calls++
	return resp, nil
}

func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
