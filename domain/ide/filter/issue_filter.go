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

package filter

import (
	"strings"
	"time"

	"github.com/snyk/sonar-ls/domain/sonar"
)

// ValueSet holds the facet values that are shown. A value that is missing or false is hidden.
type ValueSet map[string]bool

func NewValueSet(values ...string) ValueSet {
	set := make(ValueSet, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Ordered returns the shown values in the order of known.
func (s ValueSet) Ordered(known []string) []string {
	var values []string
	for _, v := range known {
		if s[v] {
			values = append(values, v)
		}
	}
	return values
}

func (s ValueSet) clone() ValueSet {
	c := make(ValueSet, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Configuration selects which issues are shown. Reporter and the creation dates only narrow the
// server search; local filtering uses assignee, resolution, status and severity.
type Configuration struct {
	Severities    ValueSet
	Statuses      ValueSet
	Resolutions   ValueSet
	Assignee      string
	Reporter      string
	CreatedBefore *time.Time
	CreatedAfter  *time.Time
}

// DefaultConfiguration shows every severity and the statuses of issues that still need work.
func DefaultConfiguration() Configuration {
	return Configuration{
		Severities:  NewValueSet(sonar.Severities...),
		Statuses:    NewValueSet(sonar.StatusOpen, sonar.StatusConfirmed, sonar.StatusReopened),
		Resolutions: NewValueSet(),
	}
}

// Clone returns a deep copy, so callers can hand a configuration to another goroutine.
func (c Configuration) Clone() Configuration {
	clone := c
	clone.Severities = c.Severities.clone()
	clone.Statuses = c.Statuses.clone()
	clone.Resolutions = c.Resolutions.clone()
	if c.CreatedBefore != nil {
		before := *c.CreatedBefore
		clone.CreatedBefore = &before
	}
	if c.CreatedAfter != nil {
		after := *c.CreatedAfter
		clone.CreatedAfter = &after
	}
	return clone
}

// Apply returns the issues that pass every facet predicate, in their original order.
func Apply(issues []sonar.Issue, cfg Configuration) []sonar.Issue {
	var filtered []sonar.Issue
	for _, issue := range issues {
		if IsVisible(issue, cfg) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// IsVisible reports whether no facet predicate rejects the issue.
func IsVisible(issue sonar.Issue, cfg Configuration) bool {
	return IsVisibleAssignee(issue, cfg) &&
		IsVisibleResolution(issue, cfg) &&
		IsVisibleStatus(issue, cfg) &&
		IsVisibleSeverity(issue, cfg)
}

func IsVisibleAssignee(issue sonar.Issue, cfg Configuration) bool {
	if cfg.Assignee == "" || issue.Assignee == "" {
		return true
	}
	return issue.Assignee == cfg.Assignee
}

func IsVisibleResolution(issue sonar.Issue, cfg Configuration) bool {
	if issue.Resolution == "" {
		return true
	}
	return cfg.Resolutions[issue.Resolution]
}

func IsVisibleStatus(issue sonar.Issue, cfg Configuration) bool {
	if issue.Status == "" {
		return true
	}
	return cfg.Statuses[issue.Status]
}

// IsVisibleSeverity matches case-insensitively on the end of the issue severity, since servers
// may report prefixed severities.
func IsVisibleSeverity(issue sonar.Issue, cfg Configuration) bool {
	if issue.Severity == "" {
		return true
	}
	severity := strings.ToUpper(issue.Severity)
	for value, shown := range cfg.Severities {
		if shown && strings.HasSuffix(severity, strings.ToUpper(value)) {
			return true
		}
	}
	return false
}
