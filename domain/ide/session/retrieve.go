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

	"github.com/pkg/errors"

	"github.com/snyk/sonar-ls/domain/ide/filter"
	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/internal/notification"
)

// ApplyCurrentFilter persists the filter and signals listeners to re-read the issue list.
func (s *Session) ApplyCurrentFilter() {
	cfg := s.FilterConfiguration()
	if err := filter.Save(s.store, cfg); err != nil {
		s.logger.Err(err).Str("method", "ApplyCurrentFilter").Msg("could not persist filter")
		s.errorReporter.CaptureError(err)
	}
	s.notify(notification.IssuesChanged)
}

func (s *Session) SetFilterConfiguration(cfg filter.Configuration) {
	s.m.Lock()
	s.filterCfg = cfg.Clone()
	s.m.Unlock()
	s.ApplyCurrentFilter()
}

// RetrieveUsingCurrentFilter refreshes the document in view, or, without one, loads the
// project issues matching the filter into the bulk set and locks the view on them.
func (s *Session) RetrieveUsingCurrentFilter(ctx context.Context) error {
	s.m.RLock()
	cfg := s.filterCfg.Clone()
	project, version, document := s.project, s.version, s.document
	s.m.RUnlock()

	if err := filter.Save(s.store, cfg); err != nil {
		s.logger.Err(err).Str("method", "RetrieveUsingCurrentFilter").Msg("could not persist filter")
		s.errorReporter.CaptureError(err)
	}
	if project == nil {
		return s.notReady("RetrieveUsingCurrentFilter", errors.Wrap(sonar.ErrNotReady, "no associated project"))
	}
	if document != nil {
		return s.RefreshForResource(ctx, document.Path)
	}

	var (
		issues []sonar.Issue
		err    error
		query  string
	)
	if !version.AtLeast(sonar.WorkflowVersion) {
		issues, err = s.fetch.IssuesForProject(ctx, project.Key)
	} else {
		query = filter.SearchQuery(project.Key, cfg)
		issues, err = s.fetch.SearchIssues(ctx, query)
	}
	if err != nil {
		return s.reportRemote("RetrieveUsingCurrentFilter", err)
	}

	s.ReplaceAllIssues(issues)
	if s.snapshots != nil {
		if saveErr := s.snapshots.Save(project.Key, query, issues); saveErr != nil {
			s.logger.Warn().Err(saveErr).Str("method", "RetrieveUsingCurrentFilter").Msg("could not save snapshot")
		}
	}
	return nil
}

// ReplaceAllIssues loads a bulk issue set, locks the view on it and clears the analysis trigger.
func (s *Session) ReplaceAllIssues(issues []sonar.Issue) {
	s.cache.ReplaceAllIssues(issues)
	s.m.Lock()
	s.state.AnalysisTrigger = false
	s.state.Locked = true
	s.m.Unlock()
	s.notify(notification.IssuesChanged)
}

// LoadSnapshot shows the last saved bulk result of the associated project without the server.
// It reports false when there is no usable snapshot.
func (s *Session) LoadSnapshot() (bool, error) {
	project, ok := s.Project()
	if !ok {
		return false, s.notReady("LoadSnapshot", errors.Wrap(sonar.ErrNotReady, "no associated project"))
	}
	if s.snapshots == nil {
		return false, nil
	}
	payload, found, err := s.snapshots.Load(project.Key)
	if err != nil || !found {
		return false, err
	}
	s.ReplaceAllIssues(payload.Issues)
	s.logger.Info().Str("method", "LoadSnapshot").Time("savedAt", payload.SavedAt).Int("issues", len(payload.Issues)).Msg("snapshot loaded")
	return true, nil
}
