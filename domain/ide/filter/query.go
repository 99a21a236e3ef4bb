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

// QueryDateLayout is the date format of the created before/after search parameters. Month and
// day are not zero padded.
const QueryDateLayout = "2006-1-2"

// JoinValues joins values with commas, without a trailing separator.
func JoinValues(values []string) string {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(v)
		sb.WriteString(",")
	}
	return strings.TrimSuffix(sb.String(), ",")
}

func facetParameter(name string, set ValueSet, known []string) string {
	joined := JoinValues(set.Ordered(known))
	if joined == "" {
		return ""
	}
	return "&" + name + "=" + joined
}

// SearchQuery builds the issue search query for a project. The parameter order is part of the
// server contract.
func SearchQuery(projectKey string, cfg Configuration) string {
	var sb strings.Builder
	sb.WriteString("?componentRoots=")
	sb.WriteString(projectKey)
	if cfg.Assignee != "" {
		sb.WriteString("&assignees=" + cfg.Assignee)
	}
	if cfg.Reporter != "" {
		sb.WriteString("&reporters=" + cfg.Reporter)
	}
	if cfg.CreatedBefore != nil {
		sb.WriteString("&createdBefore=" + cfg.CreatedBefore.Format(QueryDateLayout))
	}
	if cfg.CreatedAfter != nil {
		sb.WriteString("&createdAfter=" + cfg.CreatedAfter.Format(QueryDateLayout))
	}
	sb.WriteString(facetParameter("severities", cfg.Severities, sonar.Severities))
	sb.WriteString(facetParameter("statuses", cfg.Statuses, sonar.Statuses))
	sb.WriteString(facetParameter("resolutions", cfg.Resolutions, sonar.Resolutions))
	return sb.String()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &t
}
