// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the AI services used by the meeting
// notes pipeline.
//
// Two capabilities are modelled:
//
//   - Embedder: turns transcript segments into vectors for theme clustering
//   - Summarizer: turns a summary prompt into prose via a generative model
//
// AIProvider bundles both behind one lifecycle. The Summarizer is optional;
// when no summary model is configured the provider returns nil and callers
// fall back to the deterministic summary.
//
// # Implementation Packages
//
//   - ai/openai: OpenAI-compatible implementation built on langchaingo
//   - ai/mock: test doubles with call counting and behavior injection
//
// Public constructors return interfaces. Mock constructors return concrete
// types so tests can inject behavior and assert on call counts.
//
//	cfg := ai.NewConfig(ai.WithSummaryModel("gpt-3.5-turbo"))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
package ai
