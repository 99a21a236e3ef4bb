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

package session

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/snyk/sonar-ls/domain/ide/filter"
	"github.com/snyk/sonar-ls/domain/ide/issueview"
	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/internal/delta"
	"github.com/snyk/sonar-ls/internal/notification"
)

// resourceKey maps a document path to its resource key in the associated project.
func (s *Session) resourceKey(method string, path string) (string, error) {
	s.m.RLock()
	plugin, project := s.plugin, s.project
	s.m.RUnlock()

	switch {
	case plugin == nil:
		return "", s.notReady(method, errors.Wrap(sonar.ErrNotReady, "no analysis plugin"))
	case path == "":
		return "", s.notReady(method, errors.Wrap(sonar.ErrNotReady, "no document"))
	case project == nil:
		return "", s.notReady(method, errors.Wrap(sonar.ErrNotReady, "no associated project"))
	}
	key, err := plugin.ResourceKey(path, project.Key)
	if err != nil {
		return "", s.notReady(method, errors.Wrap(sonar.ErrNotReady, err.Error()))
	}
	return key, nil
}

// RefreshForResource puts the document at path in view. In server mode the resource's issues,
// coverage and source are fetched unless the cached entry is still fresh. A failed fetch leaves
// the cache and the document in view unchanged.
func (s *Session) RefreshForResource(ctx context.Context, path string) error {
	path = filepath.Clean(path)
	key, err := s.resourceKey("RefreshForResource", path)
	if err != nil {
		return err
	}

	resource, err := s.fetch.Resource(ctx, key)
	if err != nil {
		return s.reportRemote("RefreshForResource", err)
	}

	state := s.State()
	if state.Mode == issueview.ModeServer && !s.cache.IsFresh(key) {
		if err = s.fetchResource(ctx, key); err != nil {
			return s.reportRemote("RefreshForResource", err)
		}
	}

	s.m.Lock()
	s.document = &documentInView{Path: path, ResourceKey: key, Resource: resource}
	if s.state.Mode == issueview.ModeServer {
		s.state.AnalysisTrigger = true
	}
	locked, mode := s.state.Locked, s.state.Mode
	s.m.Unlock()

	if mode != issueview.ModeLocal && !locked {
		s.notify(notification.IssuesChanged)
	}
	s.notify(notification.CoverageChanged)
	return nil
}

func (s *Session) fetchResource(ctx context.Context, key string) error {
	var (
		coverage sonar.Coverage
		source   []string
		issues   []sonar.Issue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		coverage, err = s.fetch.Coverage(gctx, key)
		return err
	})
	g.Go(func() (err error) {
		source, err = s.fetch.Source(gctx, key)
		return err
	})
	g.Go(func() (err error) {
		issues, err = s.fetch.IssuesForResource(gctx, key)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if issues == nil {
		issues = []sonar.Issue{}
	}
	s.cache.Update(key, coverage, issues, source)
	s.logger.Debug().Str("method", "fetchResource").Str("resource", key).Int("issues", len(issues)).Msg("updated")
	return nil
}

// DocumentInView returns the path and resource key of the document in view.
func (s *Session) DocumentInView() (path string, resourceKey string, ok bool) {
	s.m.RLock()
	defer s.m.RUnlock()
	if s.document == nil {
		return "", "", false
	}
	return s.document.Path, s.document.ResourceKey, true
}

func (s *Session) isInView(path string) bool {
	inView, _, ok := s.DocumentInView()
	return ok && inView == filepath.Clean(path)
}

// DocumentChanged signals that the buffer of path changed; projections of the document in view
// are recomputed by listeners.
func (s *Session) DocumentChanged(path string) {
	if s.isInView(path) {
		s.notify(notification.IssuesChanged, notification.CoverageChanged)
	}
}

// DocumentSaved marks the cached resource of path stale, so the next refresh fetches it again.
func (s *Session) DocumentSaved(path string) {
	s.m.RLock()
	plugin, project := s.plugin, s.project
	s.m.RUnlock()
	if plugin == nil || project == nil {
		return
	}
	key, err := plugin.ResourceKey(filepath.Clean(path), project.Key)
	if err != nil {
		return
	}
	s.cache.Invalidate(key)
}

// DocumentClosed takes path out of view.
func (s *Session) DocumentClosed(path string) {
	if !s.isInView(path) {
		return
	}
	s.m.Lock()
	s.document = nil
	s.m.Unlock()
	s.notify(notification.IssuesChanged, notification.CoverageChanged)
}

// LocalAnalysisDone stores the issues a local analysis of path reported and triggers the view.
// The cached server source and coverage of the resource are kept. The entry is marked stale since
// it no longer holds the server's issues.
func (s *Session) LocalAnalysisDone(path string, issues []sonar.Issue) error {
	key, err := s.resourceKey("LocalAnalysisDone", filepath.Clean(path))
	if err != nil {
		return err
	}
	issues = slices.Clone(issues)
	for i := range issues {
		if issues[i].Component == "" {
			issues[i].Component = key
		}
	}
	entry, _ := s.cache.Get(key)
	s.cache.Update(key, entry.Coverage, issues, entry.Source)
	s.cache.Invalidate(key)

	s.m.Lock()
	s.state.AnalysisTrigger = true
	s.m.Unlock()
	s.notify(notification.IssuesChanged)
	return nil
}

func (s *Session) FilterConfiguration() filter.Configuration {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.filterCfg.Clone()
}

func (s *Session) viewInputs() (issueview.State, *issueview.Document, filter.Configuration) {
	s.m.RLock()
	state, cfg := s.state, s.filterCfg.Clone()
	var doc *issueview.Document
	var path string
	if s.document != nil {
		doc = &issueview.Document{ResourceKey: s.document.ResourceKey}
		path = s.document.Path
	}
	s.m.RUnlock()

	if doc != nil && s.editor != nil {
		if buffer, ok := s.editor.Buffer(path); ok {
			doc.Buffer = buffer
		}
	}
	return state, doc, cfg
}

// CurrentIssues resolves the issue list for the current state, document in view and filter.
func (s *Session) CurrentIssues(ctx context.Context) []sonar.Issue {
	state, doc, cfg := s.viewInputs()
	return s.resolver.Resolve(ctx, state, doc, cfg)
}

// UpdateTagsInEditor decides whether issue markers are shown in the editor.
func (s *Session) UpdateTagsInEditor() bool {
	if s.c.IsEditorTagsDisabled() {
		return false
	}
	state := s.State()
	switch {
	case state.Mode == issueview.ModeLocal && state.Type != issueview.TypeFile:
		return true
	case state.Locked:
		return true
	}
	return state.Type == issueview.TypeFile && state.AnalysisTrigger
}

// IssuesInEditor returns the filtered issues of the document at path located on the lines of its
// live buffer.
func (s *Session) IssuesInEditor(ctx context.Context, path string) []sonar.Issue {
	path = filepath.Clean(path)
	if !s.isInView(path) {
		return nil
	}
	state, doc, cfg := s.viewInputs()
	if doc == nil {
		return nil
	}
	issues := filter.Apply(s.cache.IssuesForResource(doc.ResourceKey), cfg)
	if s.editor == nil {
		return issues
	}
	if _, open := s.editor.Buffer(path); !open {
		return issues
	}

	var source []string
	if state.Mode == issueview.ModeLocal && state.ChangeLinesOnly {
		var err error
		if source, err = s.resolver.ServerSource(ctx, doc.ResourceKey); err != nil {
			s.logger.Warn().Err(err).Str("method", "IssuesInEditor").Str("resource", doc.ResourceKey).Msg("no server source to diff against")
			return nil
		}
	} else if entry, found := s.cache.Get(doc.ResourceKey); found && entry.Source != nil {
		source = entry.Source
	} else {
		return issues
	}

	report := delta.DiffLines(source, delta.SplitLines(doc.Buffer))
	if !report.HasChanges() {
		return issues
	}
	return delta.ProjectOntoChangedLines(issues, report)
}

// CoverageInEditor returns the cached coverage of the document at path re-keyed to the lines of
// its live buffer, or nil when coverage in the editor is off.
func (s *Session) CoverageInEditor(path string) sonar.Coverage {
	if !s.c.IsCoverageInEditorEnabled() {
		return nil
	}
	path = filepath.Clean(path)
	if !s.isInView(path) {
		return nil
	}
	_, doc, _ := s.viewInputs()
	if doc == nil {
		return nil
	}
	entry, found := s.cache.Get(doc.ResourceKey)
	if !found {
		return nil
	}
	if entry.Source == nil || s.editor == nil {
		return maps.Clone(entry.Coverage)
	}
	if _, open := s.editor.Buffer(path); !open {
		return maps.Clone(entry.Coverage)
	}
	return delta.RemapCoverage(entry.Coverage, delta.DiffLines(entry.Source, delta.SplitLines(doc.Buffer)))
}
