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

package converter

import (
	"strings"

	sglsp "github.com/sourcegraph/go-lsp"

	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/internal/delta"
	"github.com/snyk/sonar-ls/internal/uri"
)

const DiagnosticSource = "Sonar"

func ToSeverity(severity string) sglsp.DiagnosticSeverity {
	switch strings.ToUpper(severity) {
	case sonar.SeverityBlocker, sonar.SeverityCritical:
		return sglsp.Error
	case sonar.SeverityMajor:
		return sglsp.Warning
	case sonar.SeverityMinor:
		return sglsp.Information
	default:
		return sglsp.Hint
	}
}

// ToRange spans the whole 1-based issue line in text. File level issues get an empty range at the
// start of the document.
func ToRange(line int, text string) sglsp.Range {
	if line <= 0 {
		return sglsp.Range{}
	}
	end := 0
	lines := delta.SplitLines(text)
	if line <= len(lines) {
		end = len(lines[line-1])
	}
	return sglsp.Range{
		Start: sglsp.Position{Line: line - 1},
		End:   sglsp.Position{Line: line - 1, Character: end},
	}
}

func ToDiagnostics(issues []sonar.Issue, text string) []sglsp.Diagnostic {
	// null would not clear diagnostics the client already shows
	diagnostics := []sglsp.Diagnostic{}

	for _, issue := range issues {
		diagnostics = append(diagnostics, sglsp.Diagnostic{
			Range:    ToRange(issue.Line, text),
			Severity: ToSeverity(issue.Severity),
			Code:     issue.Rule,
			Source:   DiagnosticSource,
			Message:  issue.Message,
		})
	}
	return diagnostics
}

func ToPublishDiagnosticsParams(path string, issues []sonar.Issue, text string) sglsp.PublishDiagnosticsParams {
	return sglsp.PublishDiagnosticsParams{
		URI:         uri.PathToUri(path),
		Diagnostics: ToDiagnostics(issues, text),
	}
}
