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
	"strings"
)

type OperationKind int

const (
	Unchanged OperationKind = iota
	Inserted
	Deleted
)

func (k OperationKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Inserted:
		return "inserted"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// LineOperation aligns one line of the old text against the new text. Line numbers are 1-based;
// OldLine is 0 for inserted lines and NewLine is 0 for deleted lines.
type LineOperation struct {
	Kind    OperationKind
	Text    string
	OldLine int
	NewLine int
}

// DiffReport is a minimal edit script from an old text to a new text. Within a changed hunk all
// deletions come before the insertions, so a replacement is always a deleted block immediately
// followed by an inserted block.
type DiffReport struct {
	Operations []LineOperation
}

// SplitLines splits text into lines. "\r\n" is treated as "\n"; joining the result with "\n"
// reproduces the normalised text.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// Diff aligns oldText against newText line by line.
func Diff(oldText, newText string) DiffReport {
	return DiffLines(SplitLines(oldText), SplitLines(newText))
}

// DiffLines aligns two line slices using Myers' O(ND) algorithm after stripping the common prefix
// and suffix.
func DiffLines(oldLines, newLines []string) DiffReport {
	prefix := 0
	for prefix < len(oldLines) && prefix < len(newLines) && oldLines[prefix] == newLines[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(oldLines)-prefix && suffix < len(newLines)-prefix &&
		oldLines[len(oldLines)-1-suffix] == newLines[len(newLines)-1-suffix] {
		suffix++
	}

	ops := make([]LineOperation, 0, len(oldLines)+len(newLines))
	for _, line := range oldLines[:prefix] {
		ops = append(ops, LineOperation{Kind: Unchanged, Text: line})
	}
	ops = append(ops, shortestEdit(oldLines[prefix:len(oldLines)-suffix], newLines[prefix:len(newLines)-suffix])...)
	for _, line := range oldLines[len(oldLines)-suffix:] {
		ops = append(ops, LineOperation{Kind: Unchanged, Text: line})
	}

	ops = groupHunks(ops)
	numberLines(ops)
	return DiffReport{Operations: ops}
}

func shortestEdit(a, b []string) []LineOperation {
	n, m := len(a), len(b)
	if n == 0 && m == 0 {
		return nil
	}
	maxD := n + m
	offset := maxD + 1
	v := make([]int, 2*maxD+3)
	// trace[d] holds the furthest x per diagonal k in [-d, d] before round d, indexed by k+d
	var trace [][]int

	for d := 0; d <= maxD; d++ {
		snapshot := make([]int, 2*d+1)
		copy(snapshot, v[offset-d:offset+d+1])
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				return backtrack(trace, a, b)
			}
		}
	}
	return nil
}

func backtrack(trace [][]int, a, b []string) []LineOperation {
	x, y := len(a), len(b)
	var reversed []LineOperation
	for d := len(trace) - 1; d > 0; d-- {
		v := trace[d]
		k := x - y
		var prevK int
		if k == -d || (k != d && v[k-1+d] < v[k+1+d]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[prevK+d]
		prevY := prevX - prevK
		for x > prevX && y > prevY {
			reversed = append(reversed, LineOperation{Kind: Unchanged, Text: a[x-1]})
			x--
			y--
		}
		if x == prevX {
			reversed = append(reversed, LineOperation{Kind: Inserted, Text: b[y-1]})
		} else {
			reversed = append(reversed, LineOperation{Kind: Deleted, Text: a[x-1]})
		}
		x, y = prevX, prevY
	}
	for x > 0 && y > 0 {
		reversed = append(reversed, LineOperation{Kind: Unchanged, Text: a[x-1]})
		x--
		y--
	}

	ops := make([]LineOperation, len(reversed))
	for i := range reversed {
		ops[i] = reversed[len(reversed)-1-i]
	}
	return ops
}

// groupHunks reorders every run of changed lines so that its deletions precede its insertions.
// The relative order of deleted lines and of inserted lines is kept.
func groupHunks(ops []LineOperation) []LineOperation {
	grouped := make([]LineOperation, 0, len(ops))
	var inserted []LineOperation
	flush := func() {
		grouped = append(grouped, inserted...)
		inserted = inserted[:0]
	}
	for _, op := range ops {
		switch op.Kind {
		case Deleted:
			grouped = append(grouped, op)
		case Inserted:
			inserted = append(inserted, op)
		default:
			flush()
			grouped = append(grouped, op)
		}
	}
	flush()
	return grouped
}

func numberLines(ops []LineOperation) {
	oldLine, newLine := 0, 0
	for i := range ops {
		switch ops[i].Kind {
		case Unchanged:
			oldLine++
			newLine++
			ops[i].OldLine, ops[i].NewLine = oldLine, newLine
		case Deleted:
			oldLine++
			ops[i].OldLine, ops[i].NewLine = oldLine, 0
		case Inserted:
			newLine++
			ops[i].OldLine, ops[i].NewLine = 0, newLine
		}
	}
}

// OldLines replays the unchanged and deleted operations.
func (r DiffReport) OldLines() []string {
	return r.replay(Deleted)
}

// NewLines replays the unchanged and inserted operations.
func (r DiffReport) NewLines() []string {
	return r.replay(Inserted)
}

func (r DiffReport) OldText() string { return strings.Join(r.OldLines(), "\n") }

func (r DiffReport) NewText() string { return strings.Join(r.NewLines(), "\n") }

func (r DiffReport) replay(kind OperationKind) []string {
	lines := make([]string, 0, len(r.Operations))
	for _, op := range r.Operations {
		if op.Kind == Unchanged || op.Kind == kind {
			lines = append(lines, op.Text)
		}
	}
	return lines
}

// HasChanges reports whether any line was inserted or deleted.
func (r DiffReport) HasChanges() bool {
	for _, op := range r.Operations {
		if op.Kind != Unchanged {
			return true
		}
	}
	return false
}

// Counts returns the number of inserted and deleted lines.
func (r DiffReport) Counts() (inserted, deleted int) {
	for _, op := range r.Operations {
		switch op.Kind {
		case Inserted:
			inserted++
		case Deleted:
			deleted++
		}
	}
	return inserted, deleted
}

// LineMapping maps every unchanged old line to its line in the new text.
func (r DiffReport) LineMapping() map[int]int {
	mapping := make(map[int]int, len(r.Operations))
	for _, op := range r.Operations {
		if op.Kind == Unchanged {
			mapping[op.OldLine] = op.NewLine
		}
	}
	return mapping
}
