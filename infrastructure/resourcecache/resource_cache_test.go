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
	"strconv"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/sonar-ls/domain/sonar"
)

func newCache() *ResourceCache {
	logger := zerolog.Nop()
	return New(&logger)
}

func issueOf(component string, line int) sonar.Issue {
	return sonar.Issue{Key: uuid.New(), Component: component, Line: line, Status: sonar.StatusOpen, Severity: sonar.SeverityMajor}
}

func TestResourceCache_GetAbsentIsDistinctFromEmpty(t *testing.T) {
	cache := newCache()

	_, found := cache.Get("proj:a.go")
	assert.False(t, found)

	cache.Update("proj:a.go", nil, nil, nil)
	entry, found := cache.Get("proj:a.go")
	assert.True(t, found)
	assert.Empty(t, entry.Issues)
	assert.Equal(t, "proj:a.go", entry.ResourceKey)
}

func TestResourceCache_UpdateMakesFresh(t *testing.T) {
	cache := newCache()
	issues := []sonar.Issue{issueOf("proj:a.go", 1)}
	coverage := sonar.Coverage{1: {LineHits: 2}}

	cache.Update("proj:a.go", coverage, issues, []string{"line"})

	assert.True(t, cache.IsFresh("proj:a.go"))
	entry, _ := cache.Get("proj:a.go")
	assert.Equal(t, issues, entry.Issues)
	assert.Equal(t, coverage, entry.Coverage)
	assert.Equal(t, []string{"line"}, entry.Source)
	assert.False(t, entry.FetchedAt.IsZero())
}

func TestResourceCache_InvalidateIsResourceScoped(t *testing.T) {
	cache := newCache()
	cache.Update("proj:a.go", nil, nil, nil)
	cache.Update("proj:b.go", nil, nil, nil)

	cache.Invalidate("proj:a.go")

	assert.False(t, cache.IsFresh("proj:a.go"))
	assert.True(t, cache.IsFresh("proj:b.go"))
	_, found := cache.Get("proj:a.go")
	assert.True(t, found, "stale entries stay readable")

	cache.Update("proj:a.go", nil, nil, nil)
	assert.True(t, cache.IsFresh("proj:a.go"))
}

func TestResourceCache_Clear(t *testing.T) {
	cache := newCache()
	var removed []string
	cache.RegisterRemovalHandler(func(resourceKey string) { removed = append(removed, resourceKey) })
	cache.Update("proj:a.go", nil, []sonar.Issue{issueOf("proj:a.go", 1)}, nil)
	cache.ReplaceAllIssues([]sonar.Issue{issueOf("proj:b.go", 3)})

	cache.Clear()

	assert.False(t, cache.IsFresh("proj:a.go"))
	_, found := cache.Get("proj:a.go")
	assert.False(t, found)
	assert.Empty(t, cache.AllIssues())
	assert.Equal(t, []string{"proj:a.go"}, removed)
}

func TestResourceCache_UpdateDoesNotShareCallerSlices(t *testing.T) {
	cache := newCache()
	issues := []sonar.Issue{issueOf("proj:a.go", 1)}

	cache.Update("proj:a.go", nil, issues, nil)
	issues[0].Line = 99

	entry, _ := cache.Get("proj:a.go")
	assert.Equal(t, 1, entry.Issues[0].Line)
}

func TestResourceCache_IssuesForResource(t *testing.T) {
	cache := newCache()
	inBulk := issueOf("proj:a.go", 1)
	otherInBulk := issueOf("proj:b.go", 2)
	cache.ReplaceAllIssues([]sonar.Issue{inBulk, otherInBulk})

	assert.Equal(t, []sonar.Issue{inBulk}, cache.IssuesForResource("proj:a.go"))

	fromEntry := issueOf("proj:a.go", 5)
	cache.Update("proj:a.go", nil, []sonar.Issue{fromEntry}, nil)
	assert.Equal(t, []sonar.Issue{fromEntry}, cache.IssuesForResource("proj:a.go"))
}

func TestResourceCache_AllIssues(t *testing.T) {
	cache := newCache()
	bulkA := issueOf("proj:a.go", 1)
	cache.ReplaceAllIssues([]sonar.Issue{bulkA})
	entryA := issueOf("proj:a.go", 2)
	entryC := issueOf("proj:c.go", 3)
	entryB := issueOf("proj:b.go", 4)
	cache.Update("proj:a.go", nil, []sonar.Issue{entryA}, nil)
	cache.Update("proj:c.go", nil, []sonar.Issue{entryC}, nil)
	cache.Update("proj:b.go", nil, []sonar.Issue{entryB}, nil)

	assert.Equal(t, []sonar.Issue{bulkA, entryB, entryC}, cache.AllIssues())
	assert.Equal(t, []string{"proj:a.go", "proj:b.go", "proj:c.go"}, cache.Keys())
}

func TestResourceCache_ReplaceIssue(t *testing.T) {
	cache := newCache()
	issue := issueOf("proj:a.go", 1)
	cache.Update("proj:a.go", nil, []sonar.Issue{issue}, nil)
	cache.ReplaceAllIssues([]sonar.Issue{issue})
	confirmed := issue
	confirmed.Status = sonar.StatusConfirmed

	replaced := cache.ReplaceIssue(confirmed)

	require.True(t, replaced)
	got, found := cache.Issue(issue.Key)
	assert.True(t, found)
	assert.Equal(t, sonar.StatusConfirmed, got.Status)
	assert.Equal(t, []sonar.Issue{confirmed}, cache.IssuesForResource("proj:a.go"))
	assert.True(t, cache.IsFresh("proj:a.go"))

	assert.False(t, cache.ReplaceIssue(issueOf("proj:x.go", 1)))
}

func TestResourceCache_ReadersNeverSeeAMixedEntry(t *testing.T) {
	cache := newCache()
	first := []sonar.Issue{issueOf("proj:a.go", 1)}
	second := []sonar.Issue{issueOf("proj:a.go", 2), issueOf("proj:a.go", 3)}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				cache.Update("proj:a.go", sonar.Coverage{1: {LineHits: 1}}, first, []string{"1"})
			} else {
				cache.Update("proj:a.go", sonar.Coverage{2: {LineHits: 2}}, second, []string{"1", "2"})
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			entry, found := cache.Get("proj:a.go")
			if !found {
				continue
			}
			assert.Equal(t, len(entry.Issues), len(entry.Source))
			assert.Len(t, entry.Coverage, 1)
		}
	}()
	wg.Wait()
}

func TestResourceCache_ReplaceIssueNeverLosesAConcurrentUpdate(t *testing.T) {
	cache := newCache()
	issue := issueOf("proj:a.go", 1)
	cache.Update("proj:a.go", nil, []sonar.Issue{issue}, []string{"v0"})
	const updates = 200

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 1; i <= updates; i++ {
			cache.Update("proj:a.go", nil, []sonar.Issue{issue}, []string{"v" + strconv.Itoa(i)})
		}
	}()
	go func() {
		defer wg.Done()
		confirmed := issue
		confirmed.Status = sonar.StatusConfirmed
		for i := 0; i < updates; i++ {
			cache.ReplaceIssue(confirmed)
		}
	}()
	wg.Wait()

	entry, found := cache.Get("proj:a.go")
	require.True(t, found)
	assert.Equal(t, []string{"v" + strconv.Itoa(updates)}, entry.Source)
	assert.True(t, cache.IsFresh("proj:a.go"))
}
