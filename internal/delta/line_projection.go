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

import "github.com/snyk/sonar-ls/domain/sonar"

// Locatable is anything positioned on a line of the old text that can be moved to another line.
type Locatable[T any] interface {
	GetLine() int
	WithLine(line int) T
}

// ProjectOntoChangedLines maps every item from its old-text line to the corresponding new-text
// line and drops items that lost their line. Items without a line (line <= 0) are kept as is.
//
// An item on the last line of a deleted block that is directly followed by inserted lines (a
// replacement) moves to the first unchanged line after the insertion. Any other item on a deleted
// line is dropped.
func ProjectOntoChangedLines[T Locatable[T]](items []T, report DiffReport) []T {
	mapping := projectionMapping(report)
	var projected []T
	for _, item := range items {
		line := item.GetLine()
		if line <= 0 {
			projected = append(projected, item)
			continue
		}
		if newLine, ok := mapping[line]; ok {
			projected = append(projected, item.WithLine(newLine))
		}
	}
	return projected
}

func projectionMapping(report DiffReport) map[int]int {
	ops := report.Operations
	mapping := report.LineMapping()
	for i := 0; i < len(ops); i++ {
		if ops[i].Kind != Deleted {
			continue
		}
		end := i
		for end+1 < len(ops) && ops[end+1].Kind == Deleted {
			end++
		}
		boundary := ops[end].OldLine
		next := end + 1
		if next < len(ops) && ops[next].Kind == Inserted {
			for next < len(ops) && ops[next].Kind == Inserted {
				next++
			}
			if next < len(ops) && ops[next].Kind == Unchanged {
				mapping[boundary] = ops[next].NewLine
			}
		}
		i = end
	}
	return mapping
}

// RemapCoverage re-keys coverage measured on the old text to the lines of the new text. Lines
// without an unchanged counterpart are dropped.
func RemapCoverage(coverage sonar.Coverage, report DiffReport) sonar.Coverage {
	mapping := report.LineMapping()
	remapped := make(sonar.Coverage, len(coverage))
	for line, element := range coverage {
		if newLine, ok := mapping[line]; ok {
			remapped[newLine] = element
		}
	}
	return remapped
}
