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

package sonar

import "context"

//go:generate go tool github.com/golang/mock/mockgen -source=fetch_service.go -destination mock_sonar/fetch_service_mock.go -package mock_sonar

type Transition string

const (
	TransitionConfirm       Transition = "confirm"
	TransitionUnconfirm     Transition = "unconfirm"
	TransitionResolve       Transition = "resolve"
	TransitionReopen        Transition = "reopen"
	TransitionFalsePositive Transition = "falsepositive"
)

// SourceProvider returns the server's canonical source of a file resource, one entry per line.
type SourceProvider interface {
	Source(ctx context.Context, resourceKey string) ([]string, error)
}

// FetchService is the remote source of truth. Implementations must be safe for concurrent use.
type FetchService interface {
	SourceProvider
	ServerVersion(ctx context.Context) (Version, error)
	Users(ctx context.Context) ([]User, error)
	Projects(ctx context.Context) ([]Resource, error)
	Resource(ctx context.Context, resourceKey string) (Resource, error)
	QualityProfile(ctx context.Context, projectKey string) (Profile, error)
	SearchIssues(ctx context.Context, query string) ([]Issue, error)
	IssuesForProject(ctx context.Context, projectKey string) ([]Issue, error)
	IssuesForResource(ctx context.Context, resourceKey string) ([]Issue, error)
	Coverage(ctx context.Context, resourceKey string) (Coverage, error)
	SearchComponents(ctx context.Context, query string) ([]Resource, error)
	Transition(ctx context.Context, issueKey string, transition Transition, comment string) (Issue, error)
	Comment(ctx context.Context, issueKey string, text string) (Issue, error)
	Assign(ctx context.Context, issueKey string, login string) (Issue, error)
}
