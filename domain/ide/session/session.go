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

// Package session owns the issue view state of one editor connection: the associated project,
// the document in view, the filter, the selection and the analysis mode flags. Derived state
// (current issues, workflow affordances, editor projections) is computed on demand.
package session

import (
	"sync"

	"github.com/rs/zerolog"
	sglsp "github.com/sourcegraph/go-lsp"

	"github.com/snyk/sonar-ls/application/config"
	"github.com/snyk/sonar-ls/domain/ide/filter"
	"github.com/snyk/sonar-ls/domain/ide/host"
	"github.com/snyk/sonar-ls/domain/ide/issueview"
	"github.com/snyk/sonar-ls/domain/ide/workflow"
	"github.com/snyk/sonar-ls/domain/observability/error_reporting"
	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/infrastructure/resourcecache"
	"github.com/snyk/sonar-ls/internal/debounce"
	"github.com/snyk/sonar-ls/internal/notification"
	"github.com/snyk/sonar-ls/internal/snapshot"
	"github.com/snyk/sonar-ls/internal/storage"
)

const (
	NotReadyMessage           = "Extension Not Ready"
	ProfileUnavailableMessage = "Cannot retrieve Profile From Server"
	projectKeyPrefix          = "Selected Project: "
)

type documentInView struct {
	Path        string
	ResourceKey string
	Resource    sonar.Resource
}

type Session struct {
	c             *config.Config
	logger        *zerolog.Logger
	fetch         sonar.FetchService
	cache         *resourcecache.ResourceCache
	resolver      *issueview.Resolver
	store         storage.Store
	notifier      notification.Notifier
	errorReporter error_reporting.ErrorReporter
	editor        host.EditorHost
	snapshots     *snapshot.Store
	events        *debounce.Debouncer[notification.Event]

	m          sync.RWMutex
	plugin     host.AnalysisPlugin
	version    sonar.Version
	users      []sonar.User
	projects   []sonar.Resource
	project    *sonar.Resource
	filterCfg  filter.Configuration
	state      issueview.State
	document   *documentInView
	selection  []sonar.Issue
	visibility workflow.Visibility
	profile    *sonar.Profile
}

type Option func(s *Session)

func WithSnapshots(store *snapshot.Store) Option {
	return func(s *Session) {
		s.snapshots = store
	}
}

func WithAnalysisPlugin(plugin host.AnalysisPlugin) Option {
	return func(s *Session) {
		s.plugin = plugin
	}
}

func New(
	c *config.Config,
	fetch sonar.FetchService,
	cache *resourcecache.ResourceCache,
	store storage.Store,
	notifier notification.Notifier,
	errorReporter error_reporting.ErrorReporter,
	editor host.EditorHost,
	opts ...Option,
) *Session {
	l := c.Logger().With().Str("component", "session").Logger()
	s := &Session{
		c:             c,
		logger:        &l,
		fetch:         fetch,
		cache:         cache,
		resolver:      issueview.NewResolver(cache, fetch, &l),
		store:         store,
		notifier:      notifier,
		errorReporter: errorReporter,
		editor:        editor,
		version:       sonar.DefaultVersion,
		filterCfg:     filter.Load(store),
	}

	mode, err := issueview.ParseMode(c.AnalysisMode())
	if err != nil {
		l.Warn().Err(err).Msg("falling back to server mode")
	}
	analysisType, err := issueview.ParseType(c.AnalysisType())
	if err != nil {
		l.Warn().Err(err).Msg("falling back to file analysis")
	}
	s.state = issueview.State{Mode: mode, Type: analysisType}

	s.events = debounce.NewDebouncer(c.DebounceDelay(), func(events []notification.Event) {
		for _, event := range events {
			notifier.Notify(event)
		}
	})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) notify(events ...notification.Event) {
	for _, event := range events {
		s.events.Debounce(event)
	}
}

// FlushNotifications delivers pending change events immediately.
func (s *Session) FlushNotifications() {
	s.events.Flush()
}

func (s *Session) notReady(method string, err error) error {
	s.logger.Debug().Str("method", method).Err(err).Msg("not ready")
	s.notifier.SendShowMessage(sglsp.MTWarning, NotReadyMessage)
	return err
}

// reportRemote logs a fetch failure and tells the client; the cache is left as it was.
func (s *Session) reportRemote(method string, err error) error {
	s.logger.Warn().Str("method", method).Err(err).Msg("fetch failed")
	s.notifier.Send(sglsp.LogMessageParams{Type: sglsp.MTWarning, Message: err.Error()})
	return err
}

func (s *Session) SetAnalysisPlugin(plugin host.AnalysisPlugin) {
	s.m.Lock()
	defer s.m.Unlock()
	s.plugin = plugin
}

func (s *Session) Version() sonar.Version {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.version
}

func (s *Session) State() issueview.State {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.state
}

func (s *Session) updateState(update func(state *issueview.State)) {
	s.m.Lock()
	update(&s.state)
	s.m.Unlock()
	s.notify(notification.IssuesChanged, notification.CoverageChanged)
}

// SetAnalysisMode switches between server and local analysis. Switching to server mode marks the
// document in view stale, so the next refresh replaces local results with the server's.
func (s *Session) SetAnalysisMode(mode issueview.Mode) {
	s.m.RLock()
	var inView string
	if s.document != nil && s.state.Mode != mode && mode == issueview.ModeServer {
		inView = s.document.ResourceKey
	}
	s.m.RUnlock()
	if inView != "" {
		s.cache.Invalidate(inView)
	}
	s.updateState(func(state *issueview.State) { state.Mode = mode })
}

func (s *Session) SetAnalysisType(analysisType issueview.Type) {
	s.updateState(func(state *issueview.State) { state.Type = analysisType })
}

func (s *Session) SetLocked(locked bool) {
	s.updateState(func(state *issueview.State) { state.Locked = locked })
}

func (s *Session) SetChangeLinesOnly(changeLinesOnly bool) {
	s.updateState(func(state *issueview.State) { state.ChangeLinesOnly = changeLinesOnly })
}

func (s *Session) SetAnalysisTrigger(trigger bool) {
	s.updateState(func(state *issueview.State) { state.AnalysisTrigger = trigger })
}

// ClearCache drops every cached resource and the bulk issue set and unlocks the view.
func (s *Session) ClearCache() {
	s.cache.Clear()
	s.m.Lock()
	s.state.Locked = false
	s.selection = nil
	s.visibility = workflow.Hidden
	s.m.Unlock()
	s.notify(notification.IssuesChanged, notification.CoverageChanged, notification.WorkflowChanged)
}
