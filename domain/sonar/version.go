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
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the protocol version reported by the server, e.g. "3.6" or "4.5.1.2345".
type Version string

// WorkflowVersion is the first server version with the confirm/unconfirm/assign workflow.
const WorkflowVersion Version = "3.6"

// DefaultVersion is assumed until the server reported its version.
const DefaultVersion = WorkflowVersion

// canonical turns a server version into a semver string, keeping at most major.minor.patch and
// dropping qualifiers such as "-SNAPSHOT" or build numbers.
func (v Version) canonical() string {
	s := strings.TrimSpace(string(v))
	s = strings.TrimPrefix(s, "v")
	if i := strings.IndexAny(s, "-+ "); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return semver.Canonical("v" + strings.Join(parts, "."))
}

func (v Version) IsValid() bool {
	return v.canonical() != ""
}

// AtLeast compares numerically per component, so "3.10" is at least "3.6". An unparsable
// version is treated as older than any valid one.
func (v Version) AtLeast(other Version) bool {
	return semver.Compare(v.canonical(), other.canonical()) >= 0
}

func (v Version) String() string {
	return string(v)
}
