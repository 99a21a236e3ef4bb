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

const (
	QualifierProject   = "TRK"
	QualifierDirectory = "DIR"
	QualifierFile      = "FIL"
)

const MasterBranch = "master"

type Resource struct {
	Key             string     `json:"key" msgpack:"key"`
	Name            string     `json:"name" msgpack:"name"`
	Qualifier       string     `json:"qualifier,omitempty" msgpack:"qualifier"`
	Lang            string     `json:"lang,omitempty" msgpack:"lang"`
	IsBranch        bool       `json:"isBranch,omitempty" msgpack:"isBranch"`
	BranchName      string     `json:"branchName,omitempty" msgpack:"branchName"`
	BranchResources []Resource `json:"branchResources,omitempty" msgpack:"branchResources"`
}

// SearchRoots returns the keys component searches run against: the project itself, or for a
// branched project only its master branch.
func (r Resource) SearchRoots() []string {
	if !r.IsBranch {
		return []string{r.Key}
	}
	var roots []string
	for _, branch := range r.BranchResources {
		if branch.BranchName == MasterBranch {
			roots = append(roots, branch.Key)
		}
	}
	return roots
}

type User struct {
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type CoverageElement struct {
	LineHits          int `json:"lineHits" msgpack:"lineHits"`
	Conditions        int `json:"conditions,omitempty" msgpack:"conditions"`
	CoveredConditions int `json:"coveredConditions,omitempty" msgpack:"coveredConditions"`
}

// Coverage maps a 1-based line number to its coverage data.
type Coverage map[int]CoverageElement

type Rule struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
}

type Profile struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Rules    []Rule `json:"rules,omitempty"`
}
