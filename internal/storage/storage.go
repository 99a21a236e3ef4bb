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

package storage

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const defaultStorageFile = "sonar-ls/settings.yaml"

// Store reads and writes string settings grouped in sections.
type Store interface {
	Read(section, key string) string
	Write(section, key, value string) error
}

type StorageCallbackFunc func(section, key, value string)

type StoreWithCallbacks interface {
	Store
	Refresh() error
	RegisterCallback(section, key string, callback StorageCallbackFunc)
	UnRegisterCallback(section, key string)
}

type document map[string]map[string]string

type storage struct {
	callbacks   map[string]StorageCallbackFunc
	doc         document
	storageFile string
	mutex       sync.RWMutex
	logger      *zerolog.Logger
}

type storageOption func(*storage)

func callbackKey(section, key string) string {
	return section + "." + key
}

// NewStorageWithCallbacks returns a YAML backed store. Without WithStorageFile the file lives
// under the XDG config directory.
func NewStorageWithCallbacks(opts ...storageOption) (StoreWithCallbacks, error) {
	file, err := xdg.ConfigFile(defaultStorageFile)
	if err != nil {
		return nil, errors.Wrap(err, "could not determine settings file")
	}

	nop := zerolog.Nop()
	s := &storage{
		callbacks:   make(map[string]StorageCallbackFunc),
		doc:         document{},
		logger:      &nop,
		storageFile: file,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err = os.MkdirAll(filepath.Dir(s.storageFile), 0755); err != nil {
		return nil, errors.Wrap(err, "could not create settings directory")
	}
	if err = s.Refresh(); err != nil {
		s.logger.Warn().Err(err).Str("file", s.storageFile).Msg("ignoring unreadable settings file")
	}
	return s, nil
}

// Refresh re-reads the settings file. A missing file is an empty store.
func (s *storage) Refresh() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	contents, err := os.ReadFile(s.storageFile)
	if errors.Is(err, os.ErrNotExist) {
		s.doc = document{}
		return nil
	}
	if err != nil {
		return err
	}
	doc := document{}
	if err = yaml.Unmarshal(contents, &doc); err != nil {
		return errors.Wrapf(err, "could not parse %s", s.storageFile)
	}
	s.doc = doc
	return nil
}

// Read returns the stored value or an empty string.
func (s *storage) Read(section, key string) string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.doc[section][key]
}

func (s *storage) Write(section, key, value string) error {
	s.mutex.Lock()
	if s.doc[section] == nil {
		s.doc[section] = map[string]string{}
	}
	s.doc[section][key] = value
	err := s.persist()
	callback := s.callbacks[callbackKey(section, key)]
	s.mutex.Unlock()

	if err != nil {
		s.logger.Err(err).Msgf("error writing %s.%s to settings file %s", section, key, s.storageFile)
		return err
	}
	if callback != nil {
		callback(section, key, value)
	}
	return nil
}

func (s *storage) persist() error {
	contents, err := yaml.Marshal(s.doc)
	if err != nil {
		return err
	}
	tmp := s.storageFile + ".tmp"
	if err = os.WriteFile(tmp, contents, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.storageFile)
}

func (s *storage) RegisterCallback(section, key string, callback StorageCallbackFunc) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.callbacks[callbackKey(section, key)] = callback
}

func (s *storage) UnRegisterCallback(section, key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.callbacks, callbackKey(section, key))
}

func WithCallbacks(callbacks map[string]StorageCallbackFunc) func(*storage) {
	return func(s *storage) {
		s.callbacks = callbacks
	}
}

func WithStorageFile(file string) func(*storage) {
	return func(s *storage) {
		s.storageFile = file
	}
}

func WithLogger(logger *zerolog.Logger) func(*storage) {
	return func(s *storage) {
		l := logger.With().Str("component", "settingsStorage").Logger()
		s.logger = &l
	}
}

// InMemory is a Store without a backing file, used when no settings file can be created.
type InMemory struct {
	mutex sync.RWMutex
	doc   document
}

func NewInMemory() *InMemory {
	return &InMemory{doc: document{}}
}

func (m *InMemory) Read(section, key string) string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.doc[section][key]
}

func (m *InMemory) Write(section, key, value string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.doc[section] == nil {
		m.doc[section] = map[string]string{}
	}
	m.doc[section][key] = value
	return nil
}
