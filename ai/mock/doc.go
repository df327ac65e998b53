// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Summarizer,
// and ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Embeddings only, summaries disabled
//	provider := mock.NewMockProvider()
//
//	// Failing summarizer to exercise the fallback path
//	summarizer := mock.NewMockSummarizer().
//	    WithSummarizeFunc(func(ctx context.Context, prompt string) (string, error) {
//	        return "", errors.New("timeout")
//	    })
//	provider = mock.NewMockProviderWithServices(mock.NewMockEmbedder(), summarizer)
//
// # Default Behavior
//
//   - MockEmbedder: returns unit-length vectors derived from an FNV hash of the text
//   - MockSummarizer: returns a fixed sentence and records the prompt
//   - MockProvider: aggregates the two; the summarizer is optional
//
// All mocks are safe for concurrent use.
package mock
