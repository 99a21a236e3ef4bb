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

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/snyk/sonar-ls/domain/ide/workflow"
	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/internal/notification"
)

var ErrNotAllowed = errors.New("action not available for the selected issues")

// SelectIssues selects the cached issues with the given keys; unknown keys are dropped. The
// workflow affordances are recomputed for the new selection.
func (s *Session) SelectIssues(keys []uuid.UUID) workflow.Visibility {
	var selection []sonar.Issue
	for _, key := range keys {
		if issue, found := s.cache.Issue(key); found {
			selection = append(selection, issue)
		}
	}
	return s.setSelection(selection)
}

func (s *Session) setSelection(selection []sonar.Issue) workflow.Visibility {
	s.m.Lock()
	s.selection = selection
	s.visibility = workflow.ForSelection(selection, s.version)
	visibility := s.visibility
	s.m.Unlock()
	s.notify(notification.WorkflowChanged)
	return visibility
}

// SelectIssueByID selects the issue with the numeric id among the issues currently shown.
func (s *Session) SelectIssueByID(ctx context.Context, id int) (sonar.Issue, bool) {
	shown := s.CurrentIssues(ctx)
	i := slices.IndexFunc(shown, func(issue sonar.Issue) bool { return issue.ID == id })
	if i < 0 {
		return sonar.Issue{}, false
	}
	s.setSelection([]sonar.Issue{shown[i]})
	return shown[i], true
}

func (s *Session) Selection() []sonar.Issue {
	s.m.RLock()
	defer s.m.RUnlock()
	return slices.Clone(s.selection)
}

func (s *Session) Visibility() workflow.Visibility {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.visibility
}

// SelectedComments returns the comments of a single selected issue.
func (s *Session) SelectedComments() []sonar.Comment {
	s.m.RLock()
	defer s.m.RUnlock()
	if len(s.selection) != 1 {
		return nil
	}
	return slices.Clone(s.selection[0].Comments)
}

// Transition applies a workflow transition to every selected issue whose status allows it. Each
// confirmed result replaces the cached issue; on the first failure the remaining issues are left
// alone.
func (s *Session) Transition(ctx context.Context, transition sonar.Transition, comment string) ([]sonar.Issue, error) {
	selection, err := s.guard(func(v workflow.Visibility) bool { return workflow.Allowed(v, transition) })
	if err != nil {
		return nil, err
	}
	return s.applyToSelection("Transition", selection, func(issueKey string) (sonar.Issue, error) {
		return s.fetch.Transition(ctx, issueKey, transition, comment)
	})
}

func (s *Session) Comment(ctx context.Context, text string) ([]sonar.Issue, error) {
	selection, err := s.guard(func(v workflow.Visibility) bool { return v.Comment })
	if err != nil {
		return nil, err
	}
	return s.applyToSelection("Comment", selection, func(issueKey string) (sonar.Issue, error) {
		return s.fetch.Comment(ctx, issueKey, text)
	})
}

// Assign assigns the selected issues to login; the empty login unassigns them.
func (s *Session) Assign(ctx context.Context, login string) ([]sonar.Issue, error) {
	selection, err := s.guard(func(v workflow.Visibility) bool { return v.Assign })
	if err != nil {
		return nil, err
	}
	return s.applyToSelection("Assign", selection, func(issueKey string) (sonar.Issue, error) {
		return s.fetch.Assign(ctx, issueKey, login)
	})
}

// guard checks the action against the selection's affordances and returns the selected issues
// that allow it on their own. The union over a mixed selection offers actions only some issues
// allow.
func (s *Session) guard(allowed func(v workflow.Visibility) bool) ([]sonar.Issue, error) {
	s.m.RLock()
	selection, visibility, version := slices.Clone(s.selection), s.visibility, s.version
	s.m.RUnlock()
	if len(selection) == 0 || !allowed(visibility) {
		return nil, ErrNotAllowed
	}
	var applicable []sonar.Issue
	for _, issue := range selection {
		if allowed(workflow.ForSelection([]sonar.Issue{issue}, version)) {
			applicable = append(applicable, issue)
		}
	}
	return applicable, nil
}

func (s *Session) applyToSelection(method string, selection []sonar.Issue, call func(issueKey string) (sonar.Issue, error)) ([]sonar.Issue, error) {
	var updated []sonar.Issue
	var err error
	for _, issue := range selection {
		var result sonar.Issue
		result, err = call(issue.RemoteKey())
		if err != nil {
			err = s.reportRemote(method, err)
			break
		}
		if result.Key == uuid.Nil {
			result.Key = issue.Key
		}
		if result.ServerKey == "" {
			result.ServerKey = issue.ServerKey
		}
		if result.Component == "" {
			result.Component = issue.Component
			result.Line = issue.Line
		}
		s.cache.ReplaceIssue(result)
		if result.Component != "" {
			s.cache.Invalidate(result.Component)
		}
		updated = append(updated, result)
	}

	if len(updated) > 0 {
		s.reselect(updated)
		s.notify(notification.IssuesChanged)
	}
	return updated, err
}

// reselect swaps updated issues into the selection and recomputes the affordances.
func (s *Session) reselect(updated []sonar.Issue) {
	s.m.RLock()
	selection := slices.Clone(s.selection)
	s.m.RUnlock()
	for _, u := range updated {
		if i := slices.IndexFunc(selection, func(issue sonar.Issue) bool { return issue.Key == u.Key }); i >= 0 {
			selection[i] = u
		}
	}
	s.setSelection(selection)
}
