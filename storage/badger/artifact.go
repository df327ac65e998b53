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


package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/minutes/core"
	"github.com/poiesic/minutes/storage"
)

// ArtifactRepository implements storage.ArtifactRepository for BadgerDB.
// Expiry is delegated to Badger entry TTLs.
type ArtifactRepository struct {
	backend *Backend
}

var _ storage.ArtifactRepository = (*ArtifactRepository)(nil)

// NewArtifactRepository creates an artifact cache on the given backend.
func NewArtifactRepository(backend *Backend) storage.ArtifactRepository {
	return &ArtifactRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend is owned by the caller.
func (r *ArtifactRepository) Close() error {
	return nil
}

// SaveArtifact persists the artifact, overwriting any prior value for the meeting.
func (r *ArtifactRepository) SaveArtifact(ctx context.Context, artifact *core.Artifact, ttl time.Duration) error {
	if err := core.ValidateArtifact(artifact); err != nil {
		return err
	}
	if ttl < 0 {
		return fmt.Errorf("%w: negative ttl %s", storage.ErrInvalidQuery, ttl)
	}

	value, err := storage.MarshalArtifact(artifact)
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		entry := badger.NewEntry(makeArtifactKey(artifact.MeetingID), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		if err := tx.SetEntry(entry); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetArtifact retrieves the cached artifact for a meeting.
// Returns storage.ErrNotFound if none exists or it has expired.
func (r *ArtifactRepository) GetArtifact(ctx context.Context, meetingID string) (*core.Artifact, error) {
	var artifact *core.Artifact
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeArtifactKey(meetingID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			artifact, unmarshalErr = storage.UnmarshalArtifact(val)
			return unmarshalErr
		})
	}, false)
	if err != nil {
		return nil, err
	}
	if artifact.MeetingID != meetingID {
		return nil, storage.ErrNotFound
	}
	return artifact, nil
}

// DeleteArtifact removes the cached artifact and reports whether one existed.
func (r *ArtifactRepository) DeleteArtifact(ctx context.Context, meetingID string) (bool, error) {
	deleted := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeArtifactKey(meetingID)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		deleted = true
		return tx.Commit()
	}, true)
	if err != nil {
		return false, err
	}
	return deleted, nil
}
