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

package issueview

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/snyk/sonar-ls/domain/ide/filter"
	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/domain/sonar/mock_sonar"
	"github.com/snyk/sonar-ls/infrastructure/resourcecache"
)

const resourceKey = "proj:src/main.go"

func setup(t *testing.T) (*resourcecache.ResourceCache, *mock_sonar.MockSourceProvider, *Resolver) {
	t.Helper()
	logger := zerolog.Nop()
	cache := resourcecache.New(&logger)
	sources := mock_sonar.NewMockSourceProvider(gomock.NewController(t))
	return cache, sources, NewResolver(cache, sources, &logger)
}

func issueAt(component string, line int) sonar.Issue {
	return sonar.Issue{
		Key:       uuid.New(),
		Component: component,
		Line:      line,
		Status:    sonar.StatusOpen,
		Severity:  sonar.SeverityMajor,
	}
}

func TestResolve_LockedReturnsFilteredBulkWithoutFetching(t *testing.T) {
	cache, sources, resolver := setup(t)
	visible := issueAt("proj:a.go", 1)
	closed := issueAt("proj:b.go", 2)
	closed.Status = sonar.StatusClosed
	cache.ReplaceAllIssues([]sonar.Issue{visible, closed})
	sources.EXPECT().Source(gomock.Any(), gomock.Any()).Times(0)

	for _, mode := range []Mode{ModeServer, ModeLocal} {
		state := State{Locked: true, Mode: mode, ChangeLinesOnly: true, AnalysisTrigger: true}

		issues := resolver.Resolve(context.Background(), state, &Document{ResourceKey: resourceKey, Buffer: "x"}, filter.DefaultConfiguration())

		assert.Equal(t, []sonar.Issue{visible}, issues)
	}
}

func TestResolve_ServerModeNeedsTrigger(t *testing.T) {
	cache, _, resolver := setup(t)
	cache.Update(resourceKey, nil, []sonar.Issue{issueAt(resourceKey, 1)}, nil)
	doc := &Document{ResourceKey: resourceKey}

	assert.Empty(t, resolver.Resolve(context.Background(), State{Mode: ModeServer}, doc, filter.DefaultConfiguration()))
	assert.Len(t, resolver.Resolve(context.Background(), State{Mode: ModeServer, AnalysisTrigger: true}, doc, filter.DefaultConfiguration()), 1)
}

func TestResolve_ServerModeNeverDiffs(t *testing.T) {
	cache, sources, resolver := setup(t)
	issue := issueAt(resourceKey, 2)
	cache.Update(resourceKey, nil, []sonar.Issue{issue}, []string{"a", "b"})
	sources.EXPECT().Source(gomock.Any(), gomock.Any()).Times(0)
	state := State{Mode: ModeServer, ChangeLinesOnly: true, AnalysisTrigger: true}

	issues := resolver.Resolve(context.Background(), state, &Document{ResourceKey: resourceKey, Buffer: "new\na\nb"}, filter.DefaultConfiguration())

	assert.Equal(t, []sonar.Issue{issue}, issues)
}

func TestResolve_NoDocument(t *testing.T) {
	_, _, resolver := setup(t)

	assert.Empty(t, resolver.Resolve(context.Background(), State{Mode: ModeServer, AnalysisTrigger: true}, nil, filter.DefaultConfiguration()))
	assert.Empty(t, resolver.Resolve(context.Background(), State{Mode: ModeLocal, Type: TypeFile, AnalysisTrigger: true}, &Document{}, filter.DefaultConfiguration()))
}

func TestResolve_LocalFileProjectsOntoTheBuffer(t *testing.T) {
	cache, sources, resolver := setup(t)
	onKeptLine := issueAt(resourceKey, 2)
	onDeletedLine := issueAt(resourceKey, 3)
	cache.Update(resourceKey, nil, []sonar.Issue{onKeptLine, onDeletedLine}, nil)
	sources.EXPECT().Source(gomock.Any(), resourceKey).Return([]string{"a", "b", "c"}, nil)
	state := State{Mode: ModeLocal, Type: TypeFile, ChangeLinesOnly: true, AnalysisTrigger: true}

	issues := resolver.Resolve(context.Background(), state, &Document{ResourceKey: resourceKey, Buffer: "new\na\nb"}, filter.DefaultConfiguration())

	assert.Equal(t, []sonar.Issue{onKeptLine.WithLine(3)}, issues)
}

func TestResolve_LocalFileWithoutChangeLinesOnly(t *testing.T) {
	cache, sources, resolver := setup(t)
	issue := issueAt(resourceKey, 3)
	cache.Update(resourceKey, nil, []sonar.Issue{issue}, nil)
	sources.EXPECT().Source(gomock.Any(), gomock.Any()).Times(0)
	state := State{Mode: ModeLocal, Type: TypeFile, AnalysisTrigger: true}

	issues := resolver.Resolve(context.Background(), state, &Document{ResourceKey: resourceKey, Buffer: "changed"}, filter.DefaultConfiguration())

	assert.Equal(t, []sonar.Issue{issue}, issues)
}

func TestResolve_FallsBackToCachedSource(t *testing.T) {
	cache, sources, resolver := setup(t)
	issue := issueAt(resourceKey, 1)
	cache.Update(resourceKey, nil, []sonar.Issue{issue}, []string{"a"})
	sources.EXPECT().Source(gomock.Any(), resourceKey).Return(nil, errors.New("offline"))
	state := State{Mode: ModeLocal, Type: TypeFile, ChangeLinesOnly: true, AnalysisTrigger: true}

	issues := resolver.Resolve(context.Background(), state, &Document{ResourceKey: resourceKey, Buffer: "top\na"}, filter.DefaultConfiguration())

	assert.Equal(t, []sonar.Issue{issue.WithLine(2)}, issues)
}

func TestResolve_NoSourceAtAllIsEmpty(t *testing.T) {
	cache, sources, resolver := setup(t)
	cache.Update(resourceKey, nil, []sonar.Issue{issueAt(resourceKey, 1)}, nil)
	sources.EXPECT().Source(gomock.Any(), gomock.Any()).Return(nil, errors.New("offline")).Times(2)
	state := State{Mode: ModeLocal, Type: TypeFile, ChangeLinesOnly: true, AnalysisTrigger: true}

	issues := resolver.Resolve(context.Background(), state, &Document{ResourceKey: resourceKey, Buffer: "a"}, filter.DefaultConfiguration())

	assert.Empty(t, issues)
	_, err := resolver.ServerSource(context.Background(), "proj:unknown.go")
	assert.True(t, errors.Is(err, sonar.ErrRemoteUnavailable))
}

func TestResolve_LocalSolutionReturnsEverything(t *testing.T) {
	cache, _, resolver := setup(t)
	a := issueAt("proj:a.go", 1)
	b := issueAt("proj:b.go", 1)
	cache.Update("proj:a.go", nil, []sonar.Issue{a}, nil)
	cache.Update("proj:b.go", nil, []sonar.Issue{b}, nil)

	issues := resolver.Resolve(context.Background(), State{Mode: ModeLocal, Type: TypeSolution}, nil, filter.DefaultConfiguration())

	assert.Equal(t, []sonar.Issue{a, b}, issues)
}

func TestParseModeAndType(t *testing.T) {
	mode, err := ParseMode("Local")
	assert.NoError(t, err)
	assert.Equal(t, ModeLocal, mode)
	_, err = ParseMode("remote")
	assert.Error(t, err)

	analysisType, err := ParseType("SOLUTION")
	assert.NoError(t, err)
	assert.Equal(t, TypeSolution, analysisType)
	assert.Equal(t, "file", TypeFile.String())
}
