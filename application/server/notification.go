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

package server

import (
	"context"
	"sync"

	"github.com/creachadair/jrpc2"
	sglsp "github.com/sourcegraph/go-lsp"

	"github.com/snyk/sonar-ls/application/config"
	"github.com/snyk/sonar-ls/application/di"
	"github.com/snyk/sonar-ls/domain/ide/converter"
	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/internal/lsp"
	"github.com/snyk/sonar-ls/internal/notification"
	"github.com/snyk/sonar-ls/internal/uri"
)

const (
	issuesChangedMethod   = "$/sonar.issuesChanged"
	workflowChangedMethod = "$/sonar.workflowChanged"
	coverageChangedMethod = "$/sonar.coverageChanged"
)

func notifier(c *config.Config, srv *jrpc2.Server, method string, params any) {
	c.Logger().Debug().Str("method", "notifier").Str("notification", method).Msg("Notifying")
	err := srv.Notify(context.Background(), method, params)
	if err != nil {
		c.Logger().Err(err).Str("method", "notifier").Msg("couldn't notify client")
	}
}

func registerNotifier(c *config.Config, srv *jrpc2.Server) {
	logger := c.Logger().With().Str("method", "registerNotifier").Logger()
	callbackFunction := func(params any) {
		switch params := params.(type) {
		case sglsp.ShowMessageParams:
			notifier(c, srv, "window/showMessage", params)
			logger.Info().Interface("message", params).Msg("showing message")
		case sglsp.LogMessageParams:
			notifier(c, srv, "window/logMessage", params)
		case sglsp.PublishDiagnosticsParams:
			notifier(c, srv, "textDocument/publishDiagnostics", params)
			logger.Info().
				Interface("documentURI", params.URI).
				Int("diagnosticCount", len(params.Diagnostics)).
				Msg("publishing diagnostics")
		default:
			logger.Warn().Interface("params", params).Msg("received unconfigured notification object")
		}
	}
	di.Notifier().CreateListener(callbackFunction)
	logger.Info().Msg("registered notifier")
}

var listenerMutex sync.Mutex
var unsubscribe func()
var published string

// registerSessionListener forwards session change events to the client. Issue changes also
// republish the diagnostics of the document in view and clear those of a document that left it.
func registerSessionListener(c *config.Config, srv *jrpc2.Server) {
	disposeSessionListener()
	listenerMutex.Lock()
	defer listenerMutex.Unlock()
	unsubscribe = di.Notifier().Subscribe(func(event notification.Event) {
		switch event {
		case notification.IssuesChanged:
			publishIssues(c, srv)
		case notification.WorkflowChanged:
			s := di.Session()
			notifier(c, srv, workflowChangedMethod, lsp.WorkflowChangedParams{
				Selection:  nonNil(s.Selection()),
				Visibility: s.Visibility(),
			})
		case notification.CoverageChanged:
			publishCoverage(c, srv)
		}
	})
}

func disposeSessionListener() {
	listenerMutex.Lock()
	defer listenerMutex.Unlock()
	if unsubscribe != nil {
		unsubscribe()
		unsubscribe = nil
	}
	published = ""
}

func publishIssues(c *config.Config, srv *jrpc2.Server) {
	s := di.Session()
	ctx := context.Background()
	notifier(c, srv, issuesChangedMethod, lsp.IssuesChangedParams{Issues: nonNil(s.CurrentIssues(ctx))})

	path, _, inView := s.DocumentInView()

	listenerMutex.Lock()
	previous := published
	published = path
	listenerMutex.Unlock()

	if previous != "" && previous != path {
		di.Notifier().Send(converter.ToPublishDiagnosticsParams(previous, nil, ""))
	}
	if !inView {
		return
	}
	var issues []sonar.Issue
	if s.UpdateTagsInEditor() {
		issues = s.IssuesInEditor(ctx, path)
	}
	text, _ := di.Documents().Buffer(path)
	di.Notifier().Send(converter.ToPublishDiagnosticsParams(path, issues, text))
}

func publishCoverage(c *config.Config, srv *jrpc2.Server) {
	s := di.Session()
	path, _, inView := s.DocumentInView()
	if !inView {
		return
	}
	coverage := s.CoverageInEditor(path)
	if coverage == nil {
		coverage = sonar.Coverage{}
	}
	notifier(c, srv, coverageChangedMethod, lsp.CoverageChangedParams{URI: uri.PathToUri(path), Coverage: coverage})
}

func nonNil(issues []sonar.Issue) []sonar.Issue {
	if issues == nil {
		return []sonar.Issue{}
	}
	return issues
}
