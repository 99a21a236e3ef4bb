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

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	StatusOpen      = "OPEN"
	StatusConfirmed = "CONFIRMED"
	StatusReopened  = "REOPENED"
	StatusResolved  = "RESOLVED"
	StatusClosed    = "CLOSED"
)

const (
	SeverityBlocker  = "BLOCKER"
	SeverityCritical = "CRITICAL"
	SeverityMajor    = "MAJOR"
	SeverityMinor    = "MINOR"
	SeverityInfo     = "INFO"
)

const (
	ResolutionFalsePositive = "FALSE-POSITIVE"
	ResolutionRemoved       = "REMOVED"
	ResolutionFixed         = "FIXED"
)

// Statuses, Severities and Resolutions list the known facet values in the order the server
// search API expects them.
var (
	Statuses    = []string{StatusClosed, StatusConfirmed, StatusOpen, StatusReopened, StatusResolved}
	Severities  = []string{SeverityBlocker, SeverityCritical, SeverityMajor, SeverityMinor, SeverityInfo}
	Resolutions = []string{ResolutionFalsePositive, ResolutionRemoved, ResolutionFixed}
)

type Comment struct {
	Key       string    `json:"key" msgpack:"key"`
	Login     string    `json:"login" msgpack:"login"`
	HTMLText  string    `json:"htmlText" msgpack:"htmlText"`
	CreatedAt time.Time `json:"createdAt" msgpack:"createdAt"`
}

// Issue is a value: it is never mutated after it was fetched. Facet changes arrive as a new Issue
// returned by a confirmed server transition.
//
// Key identifies the issue locally. ServerKey is the key the server knows the issue by and is
// what issue actions must be posted with.
type Issue struct {
	ID           int       `json:"id" msgpack:"id"`
	Key          uuid.UUID `json:"key" msgpack:"key"`
	ServerKey    string    `json:"serverKey,omitempty" msgpack:"serverKey"`
	Component    string    `json:"component" msgpack:"component"`
	Line         int       `json:"line" msgpack:"line"`
	Message      string    `json:"message" msgpack:"message"`
	Rule         string    `json:"rule" msgpack:"rule"`
	Status       string    `json:"status" msgpack:"status"`
	Severity     string    `json:"severity" msgpack:"severity"`
	Resolution   string    `json:"resolution,omitempty" msgpack:"resolution"`
	Assignee     string    `json:"assignee,omitempty" msgpack:"assignee"`
	Reporter     string    `json:"reporter,omitempty" msgpack:"reporter"`
	CreationDate time.Time `json:"creationDate" msgpack:"creationDate"`
	Comments     []Comment `json:"comments,omitempty" msgpack:"comments"`
}

func (i Issue) GetLine() int { return i.Line }

// RemoteKey returns the server key, or the local key for issues that did not come from a server.
func (i Issue) RemoteKey() string {
	if i.ServerKey != "" {
		return i.ServerKey
	}
	return i.Key.String()
}

// WithLine returns a copy of the issue located at line.
func (i Issue) WithLine(line int) Issue {
	i.Line = line
	return i
}

func (i Issue) String() string {
	return fmt.Sprintf("%s:%d [%s/%s] %s (%s)", i.Component, i.Line, i.Severity, i.Status, i.Message, i.Key)
}

// IssuesForResource returns the issues of list that belong to the resource with the given key.
func IssuesForResource(resourceKey string, list []Issue) []Issue {
	var result []Issue
	for _, issue := range list {
		if issue.Component == resourceKey {
			result = append(result, issue)
		}
	}
	return result
}
