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


// Package storage provides the storage abstraction layer for minutes.
//
// This package defines repository interfaces that decouple storage implementation
// from the processing pipeline:
//
//   - SegmentRepository: the transcript store, an append-only per-meeting log
//   - ArtifactRepository: the artifact cache, one TTL-bound entry per meeting
//
// Records are serialized as JSON so stored values have the same shape as the
// documents served to API clients.
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return these interfaces:
//
//	segments, err := badger.NewSegmentRepository(backend)  // storage.SegmentRepository
//
// Internal constructors may return concrete types since they're only used
// within the implementation package.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/var/lib/minutes", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
// Use in tests with in-memory storage:
//
//	segments, artifacts, backend, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
