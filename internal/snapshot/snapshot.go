/*
 * © 2026 Snyk Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package snapshot keeps the last bulk issue result of a project on disk, so a locked issue view
// can be shown again without the server.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/snyk/sonar-ls/domain/sonar"
)

// schemaVersion changes whenever Payload changes incompatibly.
const schemaVersion uint16 = 1

var ErrSchemaMismatch = errors.New("snapshot schema mismatch")

type Payload struct {
	Schema     uint16        `msgpack:"schema"`
	ProjectKey string        `msgpack:"projectKey"`
	Query      string        `msgpack:"query"`
	SavedAt    time.Time     `msgpack:"savedAt"`
	Issues     []sonar.Issue `msgpack:"issues"`
}

type Store struct {
	mutex sync.RWMutex
	dir   string
}

// Open returns a store in dir, or in the XDG cache directory if dir is empty.
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(xdg.CacheHome, "sonar-ls", "snapshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create snapshot directory")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) pathFor(projectKey string) string {
	sum := sha256.Sum256([]byte(projectKey))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".mp")
}

// Save replaces the snapshot of a project atomically.
func (s *Store) Save(projectKey, query string, issues []sonar.Issue) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := os.CreateTemp(s.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	payload := Payload{
		Schema:     schemaVersion,
		ProjectKey: projectKey,
		Query:      query,
		SavedAt:    time.Now(),
		Issues:     issues,
	}
	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return errors.Wrap(err, "could not encode snapshot")
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, s.pathFor(projectKey))
}

// Load returns false without error if the project has no snapshot.
func (s *Store) Load(projectKey string) (Payload, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	f, err := os.Open(s.pathFor(projectKey))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Payload{}, false, nil
		}
		return Payload{}, false, err
	}
	defer f.Close()

	var payload Payload
	if err = msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return Payload{}, false, errors.Wrap(err, "could not decode snapshot")
	}
	if payload.Schema != schemaVersion {
		return Payload{}, false, ErrSchemaMismatch
	}
	return payload, true, nil
}

func (s *Store) Drop(projectKey string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	err := os.Remove(s.pathFor(projectKey))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
