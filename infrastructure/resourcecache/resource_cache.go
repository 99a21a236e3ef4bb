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

package resourcecache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/erni27/imcache"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/snyk/sonar-ls/domain/sonar"
)

// Entry is the cached server state of one resource. Entries are never modified once stored; a
// refresh stores a new one.
type Entry struct {
	ResourceKey string
	Source      []string
	Coverage    sonar.Coverage
	Issues      []sonar.Issue
	FetchedAt   time.Time
	generation  uint64
}

// ResourceCache holds per-resource entries plus a bulk issue set that is not tied to a single
// resource. It is safe for concurrent use. Writers of entries are serialized by writeMutex;
// readers never block on it.
type ResourceCache struct {
	writeMutex    sync.Mutex
	entries       *imcache.Cache[string, *Entry]
	invalidations *xsync.MapOf[string, uint64]
	generation    atomic.Uint64
	clearedAt     atomic.Uint64
	bulkMutex     sync.RWMutex
	bulk          []sonar.Issue
	removalMutex  sync.Mutex
	removal       func(resourceKey string)
	logger        *zerolog.Logger
	now           func() time.Time
}

func New(logger *zerolog.Logger) *ResourceCache {
	l := logger.With().Str("component", "resourcecache").Logger()
	return &ResourceCache{
		entries:       imcache.New[string, *Entry](),
		invalidations: xsync.NewMapOf[string, uint64](),
		logger:        &l,
		now:           time.Now,
	}
}

// RegisterRemovalHandler installs a callback invoked for every resource dropped by Clear.
func (c *ResourceCache) RegisterRemovalHandler(handler func(resourceKey string)) {
	c.removalMutex.Lock()
	defer c.removalMutex.Unlock()
	c.removal = handler
}

// Get returns the entry of resourceKey. A resource that was fetched but has no issues is present.
func (c *ResourceCache) Get(resourceKey string) (Entry, bool) {
	entry, found := c.entries.Get(resourceKey)
	if !found {
		return Entry{}, false
	}
	return *entry, true
}

// IsFresh reports whether the entry of resourceKey was stored after the last invalidation of that
// resource and after the last Clear.
func (c *ResourceCache) IsFresh(resourceKey string) bool {
	entry, found := c.entries.Get(resourceKey)
	if !found {
		return false
	}
	if entry.generation <= c.clearedAt.Load() {
		return false
	}
	invalidatedAt, _ := c.invalidations.Load(resourceKey)
	return entry.generation > invalidatedAt
}

// Update replaces the entry of resourceKey as a whole.
func (c *ResourceCache) Update(resourceKey string, coverage sonar.Coverage, issues []sonar.Issue, source []string) {
	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	entry := &Entry{
		ResourceKey: resourceKey,
		Source:      slices.Clone(source),
		Coverage:    maps.Clone(coverage),
		Issues:      slices.Clone(issues),
		FetchedAt:   c.now(),
		generation:  c.generation.Add(1),
	}
	c.entries.Set(resourceKey, entry, imcache.WithNoExpiration())
	c.logger.Debug().Str("method", "Update").Str("resource", resourceKey).Int("issues", len(issues)).Msg("cached")
}

// Invalidate marks the current entry of resourceKey as stale. The entry stays readable.
func (c *ResourceCache) Invalidate(resourceKey string) {
	c.invalidations.Store(resourceKey, c.generation.Add(1))
}

// Clear drops every entry and the bulk set.
func (c *ResourceCache) Clear() {
	c.writeMutex.Lock()
	c.clearedAt.Store(c.generation.Add(1))
	keys := c.Keys()
	c.entries.RemoveAll()
	c.invalidations.Clear()
	c.bulkMutex.Lock()
	c.bulk = nil
	c.bulkMutex.Unlock()
	c.writeMutex.Unlock()

	c.removalMutex.Lock()
	handler := c.removal
	c.removalMutex.Unlock()
	if handler != nil {
		for _, key := range keys {
			handler(key)
		}
	}
	c.logger.Debug().Str("method", "Clear").Int("entries", len(keys)).Msg("cleared")
}

// ReplaceAllIssues replaces the bulk issue set.
func (c *ResourceCache) ReplaceAllIssues(issues []sonar.Issue) {
	c.bulkMutex.Lock()
	defer c.bulkMutex.Unlock()
	c.bulk = slices.Clone(issues)
}

func (c *ResourceCache) bulkIssues() []sonar.Issue {
	c.bulkMutex.RLock()
	defer c.bulkMutex.RUnlock()
	return c.bulk
}

// IssuesForResource returns the issues of the cached entry, or the bulk issues of the resource if
// there is no entry.
func (c *ResourceCache) IssuesForResource(resourceKey string) []sonar.Issue {
	if entry, found := c.entries.Get(resourceKey); found {
		return slices.Clone(entry.Issues)
	}
	return sonar.IssuesForResource(resourceKey, c.bulkIssues())
}

// AllIssues returns the bulk set followed by the issues of every cached resource the bulk set
// does not cover, ordered by resource key.
func (c *ResourceCache) AllIssues() []sonar.Issue {
	bulk := c.bulkIssues()
	covered := make(map[string]bool, len(bulk))
	for _, issue := range bulk {
		covered[issue.Component] = true
	}

	all := slices.Clone(bulk)
	entries := c.entries.GetAll()
	keys := maps.Keys(entries)
	slices.Sort(keys)
	for _, key := range keys {
		if covered[key] {
			continue
		}
		all = append(all, entries[key].Issues...)
	}
	return all
}

// Keys returns the keys of all cached resources in order.
func (c *ResourceCache) Keys() []string {
	keys := maps.Keys(c.entries.GetAll())
	slices.Sort(keys)
	return keys
}

func (c *ResourceCache) Issue(key uuid.UUID) (sonar.Issue, bool) {
	for _, issue := range c.AllIssues() {
		if issue.Key == key {
			return issue, true
		}
	}
	return sonar.Issue{}, false
}

// ReplaceIssue swaps the cached copy of issue, matched by key, for the given value wherever it is
// cached. The owning entry keeps its freshness. It returns false if the issue is not cached.
func (c *ResourceCache) ReplaceIssue(issue sonar.Issue) bool {
	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	replaced := false

	c.bulkMutex.Lock()
	if i := indexOf(c.bulk, issue.Key); i >= 0 {
		bulk := slices.Clone(c.bulk)
		bulk[i] = issue
		c.bulk = bulk
		replaced = true
	}
	c.bulkMutex.Unlock()

	for key, entry := range c.entries.GetAll() {
		i := indexOf(entry.Issues, issue.Key)
		if i < 0 {
			continue
		}
		updated := *entry
		updated.Issues = slices.Clone(entry.Issues)
		updated.Issues[i] = issue
		c.entries.Set(key, &updated, imcache.WithNoExpiration())
		replaced = true
	}
	return replaced
}

func indexOf(issues []sonar.Issue, key uuid.UUID) int {
	return slices.IndexFunc(issues, func(issue sonar.Issue) bool { return issue.Key == key })
}
