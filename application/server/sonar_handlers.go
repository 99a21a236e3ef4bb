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
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/snyk/sonar-ls/application/config"
	"github.com/snyk/sonar-ls/application/di"
	"github.com/snyk/sonar-ls/domain/ide/filter"
	"github.com/snyk/sonar-ls/domain/ide/issueview"
	"github.com/snyk/sonar-ls/domain/ide/session"
	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/internal/lsp"
	"github.com/snyk/sonar-ls/internal/uri"
)

func initSonarHandlers(c *config.Config, handlers handler.Map) {
	handlers["sonar/issues"] = issuesHandler()
	handlers["sonar/refresh"] = refreshHandler()
	handlers["sonar/coverage"] = coverageHandler()
	handlers["sonar/filter"] = filterHandler()
	handlers["sonar/setFilter"] = setFilterHandler()
	handlers["sonar/applyFilter"] = applyFilterHandler()
	handlers["sonar/retrieve"] = retrieveHandler()
	handlers["sonar/loadSnapshot"] = loadSnapshotHandler()
	handlers["sonar/select"] = selectHandler()
	handlers["sonar/selectById"] = selectByIDHandler()
	handlers["sonar/comments"] = commentsHandler()
	handlers["sonar/transition"] = transitionHandler()
	handlers["sonar/comment"] = commentHandler()
	handlers["sonar/assign"] = assignHandler()
	handlers["sonar/state"] = stateHandler()
	handlers["sonar/setView"] = setViewHandler(c)
	handlers["sonar/associate"] = associateHandler()
	handlers["sonar/clearAssociation"] = clearAssociationHandler()
	handlers["sonar/projects"] = projectsHandler()
	handlers["sonar/users"] = usersHandler()
	handlers["sonar/profile"] = profileHandler()
	handlers["sonar/searchComponents"] = searchComponentsHandler()
	handlers["sonar/columns"] = columnsHandler()
	handlers["sonar/toggleColumn"] = toggleColumnHandler()
	handlers["sonar/clearCache"] = clearCacheHandler()
	handlers["sonar/localAnalysisDone"] = localAnalysisDoneHandler()
}

func issuesHandler() jrpc2.Handler {
	return handler.New(func(ctx context.Context) ([]sonar.Issue, error) {
		return nonNil(di.Session().CurrentIssues(ctx)), nil
	})
}

func refreshHandler() jrpc2.Handler {
	return handler.New(func(ctx context.Context, params lsp.DocumentParams) (any, error) {
		return nil, di.Session().RefreshForResource(ctx, uri.PathFromUri(params.URI))
	})
}

func coverageHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.DocumentParams) (sonar.Coverage, error) {
		coverage := di.Session().CoverageInEditor(uri.PathFromUri(params.URI))
		if coverage == nil {
			coverage = sonar.Coverage{}
		}
		return coverage, nil
	})
}

func filterHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context) (lsp.FilterParams, error) {
		return toFilterParams(di.Session().FilterConfiguration()), nil
	})
}

func setFilterHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.FilterParams) (any, error) {
		cfg, err := toFilterConfiguration(params)
		if err != nil {
			return nil, err
		}
		di.Session().SetFilterConfiguration(cfg)
		return nil, nil
	})
}

func applyFilterHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context) (any, error) {
		di.Session().ApplyCurrentFilter()
		return nil, nil
	})
}

func retrieveHandler() jrpc2.Handler {
	return handler.New(func(ctx context.Context) (any, error) {
		return nil, di.Session().RetrieveUsingCurrentFilter(ctx)
	})
}

func loadSnapshotHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context) (bool, error) {
		return di.Session().LoadSnapshot()
	})
}

func selectHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.SelectIssuesParams) (lsp.WorkflowChangedParams, error) {
		keys := make([]uuid.UUID, 0, len(params.Keys))
		for _, k := range params.Keys {
			key, err := uuid.Parse(k)
			if err != nil {
				return lsp.WorkflowChangedParams{}, errors.Wrapf(err, "invalid issue key %q", k)
			}
			keys = append(keys, key)
		}
		s := di.Session()
		visibility := s.SelectIssues(keys)
		return lsp.WorkflowChangedParams{Selection: nonNil(s.Selection()), Visibility: visibility}, nil
	})
}

func selectByIDHandler() jrpc2.Handler {
	return handler.New(func(ctx context.Context, params lsp.SelectIssueByIDParams) (sonar.Issue, error) {
		issue, found := di.Session().SelectIssueByID(ctx, params.ID)
		if !found {
			return sonar.Issue{}, errors.Errorf("no issue with id %d", params.ID)
		}
		return issue, nil
	})
}

func commentsHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context) ([]sonar.Comment, error) {
		comments := di.Session().SelectedComments()
		if comments == nil {
			comments = []sonar.Comment{}
		}
		return comments, nil
	})
}

func transitionHandler() jrpc2.Handler {
	return handler.New(func(ctx context.Context, params lsp.TransitionParams) ([]sonar.Issue, error) {
		return di.Session().Transition(ctx, params.Transition, params.Comment)
	})
}

func commentHandler() jrpc2.Handler {
	return handler.New(func(ctx context.Context, params lsp.CommentParams) ([]sonar.Issue, error) {
		return di.Session().Comment(ctx, params.Text)
	})
}

func assignHandler() jrpc2.Handler {
	return handler.New(func(ctx context.Context, params lsp.AssignParams) ([]sonar.Issue, error) {
		return di.Session().Assign(ctx, params.Login)
	})
}

func stateHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context) (lsp.ViewState, error) {
		return toViewState(di.Session().State()), nil
	})
}

func setViewHandler(c *config.Config) jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.ViewParams) (lsp.ViewState, error) {
		s := di.Session()
		if params.Mode != "" {
			mode, err := issueview.ParseMode(params.Mode)
			if err != nil {
				return lsp.ViewState{}, err
			}
			c.SetAnalysisMode(params.Mode)
			s.SetAnalysisMode(mode)
		}
		if params.Type != "" {
			analysisType, err := issueview.ParseType(params.Type)
			if err != nil {
				return lsp.ViewState{}, err
			}
			c.SetAnalysisType(params.Type)
			s.SetAnalysisType(analysisType)
		}
		if params.Locked != nil {
			s.SetLocked(*params.Locked)
		}
		if params.ChangeLinesOnly != nil {
			s.SetChangeLinesOnly(*params.ChangeLinesOnly)
		}
		return toViewState(s.State()), nil
	})
}

func associateHandler() jrpc2.Handler {
	return handler.New(func(ctx context.Context, params lsp.ProjectParams) (any, error) {
		return nil, di.Session().AssociateProject(ctx, params.ProjectKey)
	})
}

func clearAssociationHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context) (any, error) {
		di.Session().ClearProjectAssociation()
		return nil, nil
	})
}

func projectsHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context) ([]sonar.Resource, error) {
		projects := di.Session().Projects()
		if projects == nil {
			projects = []sonar.Resource{}
		}
		return projects, nil
	})
}

func usersHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context) ([]sonar.User, error) {
		users := di.Session().Users()
		if users == nil {
			users = []sonar.User{}
		}
		return users, nil
	})
}

func profileHandler() jrpc2.Handler {
	return handler.New(func(ctx context.Context) (*sonar.Profile, error) {
		return di.Session().Profile(ctx)
	})
}

func searchComponentsHandler() jrpc2.Handler {
	return handler.New(func(ctx context.Context, params lsp.SearchComponentsParams) ([]sonar.Resource, error) {
		components, err := di.Session().SearchComponents(ctx, params.Text)
		if components == nil {
			components = []sonar.Resource{}
		}
		return components, err
	})
}

func columnsHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.ColumnsParams) ([]session.ColumnMenuItem, error) {
		return di.Session().ColumnMenu(params.Columns), nil
	})
}

func toggleColumnHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.ColumnParams) (bool, error) {
		return di.Session().ToggleColumn(params.Column)
	})
}

func clearCacheHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context) (any, error) {
		di.Session().ClearCache()
		return nil, nil
	})
}

func localAnalysisDoneHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.LocalAnalysisParams) (any, error) {
		return nil, di.Session().LocalAnalysisDone(uri.PathFromUri(params.URI), params.Issues)
	})
}

func toViewState(state issueview.State) lsp.ViewState {
	return lsp.ViewState{
		Mode:            state.Mode.String(),
		Type:            state.Type.String(),
		Locked:          state.Locked,
		ChangeLinesOnly: state.ChangeLinesOnly,
		AnalysisTrigger: state.AnalysisTrigger,
	}
}

func toFilterParams(cfg filter.Configuration) lsp.FilterParams {
	params := lsp.FilterParams{
		Severities:  orEmpty(cfg.Severities.Ordered(sonar.Severities)),
		Statuses:    orEmpty(cfg.Statuses.Ordered(sonar.Statuses)),
		Resolutions: orEmpty(cfg.Resolutions.Ordered(sonar.Resolutions)),
		Assignee:    cfg.Assignee,
		Reporter:    cfg.Reporter,
	}
	if cfg.CreatedBefore != nil {
		params.CreatedBefore = cfg.CreatedBefore.Format(time.DateOnly)
	}
	if cfg.CreatedAfter != nil {
		params.CreatedAfter = cfg.CreatedAfter.Format(time.DateOnly)
	}
	return params
}

func toFilterConfiguration(params lsp.FilterParams) (filter.Configuration, error) {
	cfg := filter.Configuration{
		Severities:  filter.NewValueSet(params.Severities...),
		Statuses:    filter.NewValueSet(params.Statuses...),
		Resolutions: filter.NewValueSet(params.Resolutions...),
		Assignee:    params.Assignee,
		Reporter:    params.Reporter,
	}
	var err error
	if cfg.CreatedBefore, err = parseFilterDate(params.CreatedBefore); err != nil {
		return filter.Configuration{}, err
	}
	if cfg.CreatedAfter, err = parseFilterDate(params.CreatedAfter); err != nil {
		return filter.Configuration{}, err
	}
	return cfg, nil
}

func parseFilterDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid date %q", s)
	}
	return &t, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
