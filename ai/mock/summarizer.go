package mock

import (
	"context"
	"sync"
)

// MockSummarizer is a test double for ai.Summarizer.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, returns a fixed summary.
	SummarizeFunc func(ctx context.Context, prompt string) (string, error)

	mu         sync.Mutex
	callCount  int
	lastPrompt string
}

// NewMockSummarizer creates a mock summarizer that returns a fixed summary.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// WithSummarizeFunc sets custom behavior and returns the mock for chaining.
func (m *MockSummarizer) WithSummarizeFunc(fn func(ctx context.Context, prompt string) (string, error)) *MockSummarizer {
	m.SummarizeFunc = fn
	return m
}

// Summarize records the prompt and returns the configured result.
func (m *MockSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastPrompt = prompt
	m.mu.Unlock()

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, prompt)
	}
	return "Mock summary of the meeting.", nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastPrompt returns the prompt passed to the most recent call.
func (m *MockSummarizer) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

// Reset clears the call count and custom function.
func (m *MockSummarizer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastPrompt = ""
	m.SummarizeFunc = nil
}
