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
	"strings"

	"github.com/pkg/errors"
	sglsp "github.com/sourcegraph/go-lsp"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/snyk/sonar-ls/domain/ide/workflow"
	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/internal/notification"
)

// Initialize reads the server version, users and projects and associates the configured project.
func (s *Session) Initialize(ctx context.Context) error {
	var (
		version  sonar.Version
		users    []sonar.User
		projects []sonar.Resource
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		version, err = s.fetch.ServerVersion(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.fetch.Users(gctx)
		return err
	})
	g.Go(func() (err error) {
		projects, err = s.fetch.Projects(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return s.reportRemote("Initialize", err)
	}

	slices.SortStableFunc(users, func(a, b sonar.User) int { return strings.Compare(a.Login, b.Login) })
	users = append(users, sonar.User{})
	slices.SortStableFunc(projects, func(a, b sonar.Resource) int { return strings.Compare(a.Name, b.Name) })

	s.m.Lock()
	if version.IsValid() {
		s.version = version
	}
	s.users = users
	s.projects = projects
	s.m.Unlock()
	s.logger.Info().Str("method", "Initialize").Str("version", version.String()).Int("projects", len(projects)).Msg("connected")

	if key := s.c.ProjectKey(); key != "" {
		return s.AssociateProject(ctx, key)
	}
	return nil
}

// Users are sorted by login and end with an empty entry that stands for "unassigned".
func (s *Session) Users() []sonar.User {
	s.m.RLock()
	defer s.m.RUnlock()
	return slices.Clone(s.users)
}

// Projects are sorted by name.
func (s *Session) Projects() []sonar.Resource {
	s.m.RLock()
	defer s.m.RUnlock()
	return slices.Clone(s.projects)
}

// AssociateProject makes key the current project. The cache is cleared since its content
// belongs to the previous association.
func (s *Session) AssociateProject(ctx context.Context, key string) error {
	s.m.RLock()
	i := slices.IndexFunc(s.projects, func(r sonar.Resource) bool { return r.Key == key })
	var project sonar.Resource
	if i >= 0 {
		project = s.projects[i]
	}
	s.m.RUnlock()

	if i < 0 {
		resource, err := s.fetch.Resource(ctx, key)
		if err != nil {
			return s.reportRemote("AssociateProject", err)
		}
		project = resource
	}

	s.cache.Clear()
	s.m.Lock()
	s.project = &project
	s.profile = nil
	s.document = nil
	s.selection = nil
	s.visibility = workflow.Hidden
	s.state.Locked = false
	s.state.AnalysisTrigger = false
	s.m.Unlock()
	s.c.SetProjectKey(key)
	s.logger.Info().Str("method", "AssociateProject").Str("project", key).Msg("associated")
	s.notify(notification.IssuesChanged, notification.CoverageChanged, notification.WorkflowChanged)
	return nil
}

func (s *Session) ClearProjectAssociation() {
	s.cache.Clear()
	s.m.Lock()
	s.project = nil
	s.profile = nil
	s.document = nil
	s.selection = nil
	s.visibility = workflow.Hidden
	s.state.Locked = false
	s.state.AnalysisTrigger = false
	s.m.Unlock()
	s.c.SetProjectKey("")
	s.notify(notification.IssuesChanged, notification.CoverageChanged, notification.WorkflowChanged)
}

func (s *Session) Project() (sonar.Resource, bool) {
	s.m.RLock()
	defer s.m.RUnlock()
	if s.project == nil {
		return sonar.Resource{}, false
	}
	return *s.project, true
}

// AssociatedProjectKey is the display text of the association, derived from the project.
func (s *Session) AssociatedProjectKey() string {
	project, ok := s.Project()
	if !ok {
		return ""
	}
	return projectKeyPrefix + project.Key
}

// Profile loads the quality profile of the associated project once. A failed load is reported and
// yields no profile.
func (s *Session) Profile(ctx context.Context) (*sonar.Profile, error) {
	s.m.RLock()
	project, profile := s.project, s.profile
	s.m.RUnlock()
	if profile != nil {
		return profile, nil
	}
	if project == nil {
		return nil, s.notReady("Profile", errors.Wrap(sonar.ErrNotReady, "no associated project"))
	}

	loaded, err := s.fetch.QualityProfile(ctx, project.Key)
	if err != nil {
		s.logger.Warn().Str("method", "Profile").Err(err).Msg("no profile")
		s.notifier.SendShowMessage(sglsp.MTWarning, ProfileUnavailableMessage)
		return nil, errors.Wrap(sonar.ErrProfileUnavailable, err.Error())
	}

	s.m.Lock()
	defer s.m.Unlock()
	if s.project == nil || s.project.Key != project.Key {
		return &loaded, nil
	}
	s.profile = &loaded
	return s.profile, nil
}

// SearchComponents looks text up globally and below the search roots of every known project.
// Results keep that order and each key appears once. Failed project searches are skipped.
func (s *Session) SearchComponents(ctx context.Context, text string) ([]sonar.Resource, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	var queries []string
	for _, project := range s.Projects() {
		for _, root := range project.SearchRoots() {
			queries = append(queries, root+":"+text)
		}
	}

	global, err := s.fetch.SearchComponents(ctx, text)
	if err != nil {
		return nil, s.reportRemote("SearchComponents", err)
	}

	results := make([][]sonar.Resource, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.c.SearchConcurrency())
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			found, searchErr := s.fetch.SearchComponents(gctx, query)
			if searchErr != nil {
				s.logger.Debug().Str("method", "SearchComponents").Str("query", query).Err(searchErr).Msg("skipping")
				return nil
			}
			results[i] = found
			return nil
		})
	}
	_ = g.Wait()

	seen := map[string]bool{}
	var merged []sonar.Resource
	for _, list := range append([][]sonar.Resource{global}, results...) {
		for _, r := range list {
			if seen[r.Key] {
				continue
			}
			seen[r.Key] = true
			merged = append(merged, r)
		}
	}
	return merged, nil
}
