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

package sonar_api

import (
	"context"
	"sync"

	"github.com/snyk/sonar-ls/domain/sonar"
)

const (
	ServerVersionOperation     = "serverVersion"
	UsersOperation             = "users"
	ProjectsOperation          = "projects"
	ResourceOperation          = "resource"
	QualityProfileOperation    = "qualityProfile"
	SearchIssuesOperation      = "searchIssues"
	IssuesForProjectOperation  = "issuesForProject"
	IssuesForResourceOperation = "issuesForResource"
	CoverageOperation          = "coverage"
	SourceOperation            = "source"
	SearchComponentsOperation  = "searchComponents"
	TransitionOperation        = "transition"
	CommentOperation           = "comment"
	AssignOperation            = "assign"
)

// FakeFetchService serves canned data and records every call.
type FakeFetchService struct {
	mutex       sync.Mutex
	Calls       map[string][][]any
	ApiError    error
	Version     sonar.Version
	UserList    []sonar.User
	ProjectList []sonar.Resource
	Resources   map[string]sonar.Resource
	Profile     *sonar.Profile
	Issues      []sonar.Issue
	Coverages   map[string]sonar.Coverage
	Sources     map[string][]string
	Components  map[string][]sonar.Resource
}

func NewFakeFetchService() *FakeFetchService {
	return &FakeFetchService{
		Version:    sonar.DefaultVersion,
		Resources:  map[string]sonar.Resource{},
		Coverages:  map[string]sonar.Coverage{},
		Sources:    map[string][]string{},
		Components: map[string][]sonar.Resource{},
	}
}

var _ sonar.FetchService = (*FakeFetchService)(nil)

func (f *FakeFetchService) addCall(params []any, op string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.Calls == nil {
		f.Calls = make(map[string][][]any)
	}
	f.Calls[op] = append(f.Calls[op], append([]any{}, params...))
}

func (f *FakeFetchService) GetCallParams(callNo int, op string) []any {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	calls := f.Calls[op]
	if callNo >= len(calls) {
		return nil
	}
	return calls[callNo]
}

func (f *FakeFetchService) GetAllCalls(op string) [][]any {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.Calls[op]
}

func (f *FakeFetchService) Clear() {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.Calls = map[string][][]any{}
}

func (f *FakeFetchService) failure(op string) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.ApiError == nil {
		return nil
	}
	return sonar.RemoteUnavailable(f.ApiError, op)
}

func (f *FakeFetchService) ServerVersion(_ context.Context) (sonar.Version, error) {
	f.addCall(nil, ServerVersionOperation)
	if err := f.failure(ServerVersionOperation); err != nil {
		return "", err
	}
	return f.Version, nil
}

func (f *FakeFetchService) Users(_ context.Context) ([]sonar.User, error) {
	f.addCall(nil, UsersOperation)
	if err := f.failure(UsersOperation); err != nil {
		return nil, err
	}
	return append([]sonar.User{}, f.UserList...), nil
}

func (f *FakeFetchService) Projects(_ context.Context) ([]sonar.Resource, error) {
	f.addCall(nil, ProjectsOperation)
	if err := f.failure(ProjectsOperation); err != nil {
		return nil, err
	}
	return append([]sonar.Resource{}, f.ProjectList...), nil
}

func (f *FakeFetchService) Resource(_ context.Context, resourceKey string) (sonar.Resource, error) {
	f.addCall([]any{resourceKey}, ResourceOperation)
	if err := f.failure(ResourceOperation); err != nil {
		return sonar.Resource{}, err
	}
	if r, ok := f.Resources[resourceKey]; ok {
		return r, nil
	}
	return sonar.Resource{Key: resourceKey, Qualifier: sonar.QualifierFile}, nil
}

func (f *FakeFetchService) QualityProfile(_ context.Context, projectKey string) (sonar.Profile, error) {
	f.addCall([]any{projectKey}, QualityProfileOperation)
	if err := f.failure(QualityProfileOperation); err != nil {
		return sonar.Profile{}, err
	}
	if f.Profile == nil {
		return sonar.Profile{}, sonar.RemoteUnavailable(sonar.ErrProfileUnavailable, QualityProfileOperation)
	}
	return *f.Profile, nil
}

// SearchIssues ignores the query and returns all canned issues.
func (f *FakeFetchService) SearchIssues(_ context.Context, query string) ([]sonar.Issue, error) {
	f.addCall([]any{query}, SearchIssuesOperation)
	if err := f.failure(SearchIssuesOperation); err != nil {
		return nil, err
	}
	return append([]sonar.Issue{}, f.Issues...), nil
}

func (f *FakeFetchService) IssuesForProject(_ context.Context, projectKey string) ([]sonar.Issue, error) {
	f.addCall([]any{projectKey}, IssuesForProjectOperation)
	if err := f.failure(IssuesForProjectOperation); err != nil {
		return nil, err
	}
	return append([]sonar.Issue{}, f.Issues...), nil
}

func (f *FakeFetchService) IssuesForResource(_ context.Context, resourceKey string) ([]sonar.Issue, error) {
	f.addCall([]any{resourceKey}, IssuesForResourceOperation)
	if err := f.failure(IssuesForResourceOperation); err != nil {
		return nil, err
	}
	return sonar.IssuesForResource(resourceKey, f.Issues), nil
}

func (f *FakeFetchService) Coverage(_ context.Context, resourceKey string) (sonar.Coverage, error) {
	f.addCall([]any{resourceKey}, CoverageOperation)
	if err := f.failure(CoverageOperation); err != nil {
		return nil, err
	}
	return f.Coverages[resourceKey], nil
}

func (f *FakeFetchService) Source(_ context.Context, resourceKey string) ([]string, error) {
	f.addCall([]any{resourceKey}, SourceOperation)
	if err := f.failure(SourceOperation); err != nil {
		return nil, err
	}
	return f.Sources[resourceKey], nil
}

func (f *FakeFetchService) SearchComponents(_ context.Context, query string) ([]sonar.Resource, error) {
	f.addCall([]any{query}, SearchComponentsOperation)
	if err := f.failure(SearchComponentsOperation); err != nil {
		return nil, err
	}
	return f.Components[query], nil
}

func (f *FakeFetchService) Transition(_ context.Context, issueKey string, transition sonar.Transition, comment string) (sonar.Issue, error) {
	f.addCall([]any{issueKey, transition, comment}, TransitionOperation)
	if err := f.failure(TransitionOperation); err != nil {
		return sonar.Issue{}, err
	}
	return f.updateIssue(issueKey, func(issue *sonar.Issue) {
		switch transition {
		case sonar.TransitionConfirm:
			issue.Status = sonar.StatusConfirmed
		case sonar.TransitionUnconfirm, sonar.TransitionReopen:
			issue.Status = sonar.StatusReopened
			issue.Resolution = ""
		case sonar.TransitionResolve:
			issue.Status = sonar.StatusResolved
			issue.Resolution = sonar.ResolutionFixed
		case sonar.TransitionFalsePositive:
			issue.Status = sonar.StatusResolved
			issue.Resolution = sonar.ResolutionFalsePositive
		}
		if comment != "" {
			issue.Comments = append(issue.Comments, sonar.Comment{HTMLText: comment})
		}
	})
}

func (f *FakeFetchService) Comment(_ context.Context, issueKey string, text string) (sonar.Issue, error) {
	f.addCall([]any{issueKey, text}, CommentOperation)
	if err := f.failure(CommentOperation); err != nil {
		return sonar.Issue{}, err
	}
	return f.updateIssue(issueKey, func(issue *sonar.Issue) {
		issue.Comments = append(issue.Comments, sonar.Comment{HTMLText: text})
	})
}

func (f *FakeFetchService) Assign(_ context.Context, issueKey string, login string) (sonar.Issue, error) {
	f.addCall([]any{issueKey, login}, AssignOperation)
	if err := f.failure(AssignOperation); err != nil {
		return sonar.Issue{}, err
	}
	return f.updateIssue(issueKey, func(issue *sonar.Issue) { issue.Assignee = login })
}

func (f *FakeFetchService) updateIssue(issueKey string, update func(issue *sonar.Issue)) (sonar.Issue, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	for i := range f.Issues {
		if f.Issues[i].RemoteKey() != issueKey {
			continue
		}
		updated := f.Issues[i]
		updated.Comments = append([]sonar.Comment{}, updated.Comments...)
		update(&updated)
		f.Issues[i] = updated
		return updated, nil
	}
	return sonar.Issue{}, sonar.RemoteUnavailable(NewSonarApiError("issue not found: "+issueKey, 404), "updateIssue")
}
