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

package lsp

import (
	sglsp "github.com/sourcegraph/go-lsp"

	"github.com/snyk/sonar-ls/domain/ide/workflow"
	"github.com/snyk/sonar-ls/domain/sonar"
)

type InitializeResult struct {
	ServerInfo   ServerInfo         `json:"serverInfo,omitempty"`
	Capabilities ServerCapabilities `json:"capabilities,omitempty"`
}

type ServerInfo struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

type InitializeParams struct {
	ProcessID int `json:"processId,omitempty"`

	// RootPath is DEPRECATED in favor of the RootURI field.
	RootPath string `json:"rootPath,omitempty"`

	// The rootUri of the workspace. Is null if no folder is open. If both `rootPath` and `rootUri` are set `rootUri` wins.
	RootURI               sglsp.DocumentURI `json:"rootUri,omitempty"`
	ClientInfo            sglsp.ClientInfo  `json:"clientInfo,omitempty"`
	InitializationOptions Settings          `json:"initializationOptions,omitempty"`
}

type InitializedParams struct{}

type ServerCapabilities struct {
	TextDocumentSync *sglsp.TextDocumentSyncOptionsOrKind `json:"textDocumentSync,omitempty"`
}

// Settings are sent by the client as initialization options. Booleans are strings so that an
// absent value can be told apart from false.
type Settings struct {
	ServerURL         string `json:"serverUrl,omitempty"`
	Token             string `json:"token,omitempty"`
	ProjectKey        string `json:"projectKey,omitempty"`
	AnalysisMode      string `json:"analysisMode,omitempty"`
	AnalysisType      string `json:"analysisType,omitempty"`
	CoverageInEditor  string `json:"coverageInEditor,omitempty"`
	DisableEditorTags string `json:"disableEditorTags,omitempty"`
	SendErrorReports  string `json:"sendErrorReports,omitempty"`
}

type DocumentParams struct {
	URI sglsp.DocumentURI `json:"uri"`
}

// FilterParams mirror the filter dialog. Dates use the "2006-01-02" layout; empty means unset.
type FilterParams struct {
	Severities    []string `json:"severities"`
	Statuses      []string `json:"statuses"`
	Resolutions   []string `json:"resolutions"`
	Assignee      string   `json:"assignee,omitempty"`
	Reporter      string   `json:"reporter,omitempty"`
	CreatedBefore string   `json:"createdBefore,omitempty"`
	CreatedAfter  string   `json:"createdAfter,omitempty"`
}

type SelectIssuesParams struct {
	Keys []string `json:"keys"`
}

type SelectIssueByIDParams struct {
	ID int `json:"id"`
}

type TransitionParams struct {
	Transition sonar.Transition `json:"transition"`
	Comment    string           `json:"comment,omitempty"`
}

type CommentParams struct {
	Text string `json:"text"`
}

type AssignParams struct {
	Login string `json:"login"`
}

type ViewParams struct {
	Mode            string `json:"mode,omitempty"`
	Type            string `json:"type,omitempty"`
	Locked          *bool  `json:"locked,omitempty"`
	ChangeLinesOnly *bool  `json:"changeLinesOnly,omitempty"`
}

type ViewState struct {
	Mode            string `json:"mode"`
	Type            string `json:"type"`
	Locked          bool   `json:"locked"`
	ChangeLinesOnly bool   `json:"changeLinesOnly"`
	AnalysisTrigger bool   `json:"analysisTrigger"`
}

type ProjectParams struct {
	ProjectKey string `json:"projectKey"`
}

type SearchComponentsParams struct {
	Text string `json:"text"`
}

type ColumnsParams struct {
	Columns []string `json:"columns"`
}

type ColumnParams struct {
	Column string `json:"column"`
}

type LocalAnalysisParams struct {
	URI    sglsp.DocumentURI `json:"uri"`
	Issues []sonar.Issue     `json:"issues"`
}

// IssuesChangedParams is pushed as "$/sonar.issuesChanged".
type IssuesChangedParams struct {
	Issues []sonar.Issue `json:"issues"`
}

// WorkflowChangedParams is pushed as "$/sonar.workflowChanged".
type WorkflowChangedParams struct {
	Selection  []sonar.Issue       `json:"selection"`
	Visibility workflow.Visibility `json:"visibility"`
}

// CoverageChangedParams is pushed as "$/sonar.coverageChanged".
type CoverageChangedParams struct {
	URI      sglsp.DocumentURI `json:"uri"`
	Coverage sonar.Coverage    `json:"coverage"`
}
