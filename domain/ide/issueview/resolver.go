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

package issueview

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/snyk/sonar-ls/domain/ide/filter"
	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/infrastructure/resourcecache"
	"github.com/snyk/sonar-ls/internal/delta"
)

type Mode int

const (
	ModeServer Mode = iota
	ModeLocal
)

func (m Mode) String() string {
	if m == ModeLocal {
		return "local"
	}
	return "server"
}

// ParseMode accepts "server" and "local", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "server":
		return ModeServer, nil
	case "local":
		return ModeLocal, nil
	}
	return ModeServer, errors.Errorf("unknown analysis mode %q", s)
}

type Type int

const (
	TypeFile Type = iota
	TypeSolution
)

func (t Type) String() string {
	if t == TypeSolution {
		return "solution"
	}
	return "file"
}

// ParseType accepts "file" and "solution", case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "file":
		return TypeFile, nil
	case "solution":
		return TypeSolution, nil
	}
	return TypeFile, errors.Errorf("unknown analysis type %q", s)
}

type State struct {
	// Locked pins the view to the bulk result of a filtered server search.
	Locked          bool
	Mode            Mode
	Type            Type
	ChangeLinesOnly bool
	AnalysisTrigger bool
}

// Document is the document in view. Buffer is the live, possibly unsaved, text.
type Document struct {
	ResourceKey string
	Buffer      string
}

type Cache interface {
	Get(resourceKey string) (resourcecache.Entry, bool)
	IssuesForResource(resourceKey string) []sonar.Issue
	AllIssues() []sonar.Issue
}

// Resolver computes the issues shown for a state, a document and a filter configuration.
type Resolver struct {
	cache   Cache
	sources sonar.SourceProvider
	logger  *zerolog.Logger
}

func NewResolver(cache Cache, sources sonar.SourceProvider, logger *zerolog.Logger) *Resolver {
	l := logger.With().Str("component", "issueview").Logger()
	return &Resolver{cache: cache, sources: sources, logger: &l}
}

// Resolve never fetches when the view is locked. A nil document resolves to no issues in the
// file scoped modes.
func (r *Resolver) Resolve(ctx context.Context, state State, doc *Document, cfg filter.Configuration) []sonar.Issue {
	switch {
	case state.Locked:
		return filter.Apply(r.cache.AllIssues(), cfg)
	case state.Mode == ModeServer || state.Type == TypeFile:
		if !state.AnalysisTrigger || doc == nil || doc.ResourceKey == "" {
			return nil
		}
		issues := filter.Apply(r.cache.IssuesForResource(doc.ResourceKey), cfg)
		if state.Mode != ModeLocal || !state.ChangeLinesOnly {
			return issues
		}
		source, err := r.ServerSource(ctx, doc.ResourceKey)
		if err != nil {
			r.logger.Warn().Err(err).Str("method", "Resolve").Str("resource", doc.ResourceKey).Msg("no server source to diff against")
			return nil
		}
		report := delta.DiffLines(source, delta.SplitLines(doc.Buffer))
		return delta.ProjectOntoChangedLines(issues, report)
	case state.Mode == ModeLocal:
		return filter.Apply(r.cache.AllIssues(), cfg)
	}
	return nil
}

// ServerSource returns the canonical source of a resource, preferring the live provider and
// falling back to the cached copy.
func (r *Resolver) ServerSource(ctx context.Context, resourceKey string) ([]string, error) {
	var fetchErr error
	if r.sources != nil {
		source, err := r.sources.Source(ctx, resourceKey)
		if err == nil {
			return source, nil
		}
		fetchErr = err
	}
	if entry, found := r.cache.Get(resourceKey); found && entry.Source != nil {
		return entry.Source, nil
	}
	if fetchErr == nil {
		fetchErr = errors.New("no source provider")
	}
	return nil, sonar.RemoteUnavailable(fetchErr, "source of "+resourceKey)
}
