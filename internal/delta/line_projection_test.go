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

package delta

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snyk/sonar-ls/domain/sonar"
)

func issueAt(line int, message string) sonar.Issue {
	return sonar.Issue{Line: line, Message: message, Component: "proj:file.go"}
}

func lines(issues []sonar.Issue) []int {
	var result []int
	for _, issue := range issues {
		result = append(result, issue.Line)
	}
	return result
}

func TestProjectOntoChangedLines(t *testing.T) {
	tests := []struct {
		name     string
		oldText  string
		newText  string
		issues   []sonar.Issue
		expected []int
	}{
		{
			name:     "unchanged text keeps every issue",
			oldText:  "a\nb\nc",
			newText:  "a\nb\nc",
			issues:   []sonar.Issue{issueAt(1, "1"), issueAt(3, "3")},
			expected: []int{1, 3},
		},
		{
			name:     "inserted lines shift issues below",
			oldText:  "a\nb\nc",
			newText:  "a\nnew\nb\nc",
			issues:   []sonar.Issue{issueAt(1, "1"), issueAt(2, "2"), issueAt(3, "3")},
			expected: []int{1, 3, 4},
		},
		{
			name:     "pure deletion drops the issue on the deleted line",
			oldText:  "a\nb\nc",
			newText:  "a\nc",
			issues:   []sonar.Issue{issueAt(1, "1"), issueAt(2, "2"), issueAt(3, "3")},
			expected: []int{1, 2},
		},
		{
			name:     "replacement attributes the boundary line to the next unchanged line",
			oldText:  "a\nb\nc",
			newText:  "a\nx\nc",
			issues:   []sonar.Issue{issueAt(2, "2")},
			expected: []int{3},
		},
		{
			name:     "replacement drops issues before the boundary",
			oldText:  "a\nb1\nb2\nc",
			newText:  "a\nx\nc",
			issues:   []sonar.Issue{issueAt(2, "b1"), issueAt(3, "b2")},
			expected: []int{3},
		},
		{
			name:     "replacement at the end of the file has no following line",
			oldText:  "a\nb",
			newText:  "a\nx",
			issues:   []sonar.Issue{issueAt(2, "2")},
			expected: nil,
		},
		{
			name:     "file level issues are kept",
			oldText:  "a",
			newText:  "b",
			issues:   []sonar.Issue{issueAt(0, "file")},
			expected: []int{0},
		},
		{
			name:     "issues beyond the old text are dropped",
			oldText:  "a",
			newText:  "a",
			issues:   []sonar.Issue{issueAt(7, "7")},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projected := ProjectOntoChangedLines(tt.issues, Diff(tt.oldText, tt.newText))

			assert.Equal(t, tt.expected, lines(projected))
		})
	}
}

func TestProjectOntoChangedLines_KeepsIssueIdentity(t *testing.T) {
	issue := issueAt(2, "moved")

	projected := ProjectOntoChangedLines([]sonar.Issue{issue}, Diff("a\nb", "new\na\nb"))

	assert.Len(t, projected, 1)
	assert.Equal(t, issue.WithLine(3), projected[0])
	assert.Equal(t, 2, issue.Line, "the input issue must not be modified")
}

func TestProjectOntoChangedLines_UnchangedNeverDisappearsDeletedOnlyAlwaysDoes(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	alphabet := []string{"a", "b", "c", "d", "e"}
	randomLines := func() []string {
		result := make([]string, 1+random.Intn(12))
		for i := range result {
			result[i] = alphabet[random.Intn(len(alphabet))]
		}
		return result
	}

	for i := 0; i < 300; i++ {
		report := DiffLines(randomLines(), randomLines())
		var issues []sonar.Issue
		for _, op := range report.Operations {
			if op.OldLine > 0 {
				issues = append(issues, issueAt(op.OldLine, strconv.Itoa(op.OldLine)))
			}
		}

		projected := ProjectOntoChangedLines(issues, report)

		survivors := map[string]int{}
		for _, issue := range projected {
			survivors[issue.Message] = issue.Line
		}
		ops := report.Operations
		for i := 0; i < len(ops); i++ {
			op := ops[i]
			if op.Kind == Unchanged {
				assert.Equal(t, op.NewLine, survivors[strconv.Itoa(op.OldLine)], "unchanged old line %d", op.OldLine)
				continue
			}
			if op.Kind != Deleted {
				continue
			}
			end := i
			for end+1 < len(ops) && ops[end+1].Kind == Deleted {
				end++
			}
			if end+1 >= len(ops) || ops[end+1].Kind != Inserted {
				for j := i; j <= end; j++ {
					_, survived := survivors[strconv.Itoa(ops[j].OldLine)]
					assert.False(t, survived, "old line %d survived a pure deletion", ops[j].OldLine)
				}
			}
			i = end
		}
	}
}

func TestRemapCoverage(t *testing.T) {
	coverage := sonar.Coverage{
		1: {LineHits: 1},
		2: {LineHits: 0},
		3: {LineHits: 5},
	}

	remapped := RemapCoverage(coverage, Diff("a\nb\nc", "top\na\nc"))

	assert.Equal(t, sonar.Coverage{2: {LineHits: 1}, 3: {LineHits: 5}}, remapped)
}
