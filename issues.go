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

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/snyk/sonar-ls/application/config"
	"github.com/snyk/sonar-ls/domain/ide/filter"
	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/infrastructure/sonar_api"
	"github.com/snyk/sonar-ls/internal/httpclient"
)

type issuesFlags struct {
	severities []string
	statuses   []string
	assignee   string
	noColor    bool
}

func newIssuesCommand(c *config.Config, out io.Writer) *cobra.Command {
	f := &issuesFlags{}
	cmd := &cobra.Command{
		Use:   "issues [project key]",
		Short: "Lists the issues of a project that pass the filter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectKey := c.ProjectKey()
			if len(args) == 1 {
				projectKey = args[0]
			}
			if projectKey == "" {
				return errors.New("no project key given")
			}
			cfg := filter.DefaultConfiguration()
			if len(f.severities) > 0 {
				cfg.Severities = filter.NewValueSet(upper(f.severities)...)
			}
			if len(f.statuses) > 0 {
				cfg.Statuses = filter.NewValueSet(upper(f.statuses)...)
			}
			cfg.Assignee = f.assignee

			httpClient := httpclient.NewHTTPClient(c)
			client := sonar_api.NewSonarApiClient(c, func() *http.Client { return httpClient })
			issues, err := listIssues(cmd.Context(), client, projectKey, cfg)
			if err != nil {
				return err
			}
			printIssues(out, issues, f.noColor)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&f.severities, "severity", nil, "severities to show, e.g. blocker,critical")
	cmd.Flags().StringSliceVar(&f.statuses, "status", nil, "statuses to show, e.g. open,reopened")
	cmd.Flags().StringVar(&f.assignee, "assignee", "", "only issues assigned to this login")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disables colored output")
	return cmd
}

// listIssues searches with the filter where the server supports it and filters locally either way.
func listIssues(ctx context.Context, fetch sonar.FetchService, projectKey string, cfg filter.Configuration) ([]sonar.Issue, error) {
	version, err := fetch.ServerVersion(ctx)
	if err != nil {
		return nil, err
	}
	var issues []sonar.Issue
	if version.AtLeast(sonar.WorkflowVersion) {
		issues, err = fetch.SearchIssues(ctx, filter.SearchQuery(projectKey, cfg))
	} else {
		issues, err = fetch.IssuesForProject(ctx, projectKey)
	}
	if err != nil {
		return nil, err
	}
	return filter.Apply(issues, cfg), nil
}

func severityColor(severity string) *color.Color {
	switch severity {
	case sonar.SeverityBlocker, sonar.SeverityCritical:
		return color.New(color.FgRed, color.Bold)
	case sonar.SeverityMajor:
		return color.New(color.FgYellow)
	case sonar.SeverityMinor:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgWhite)
	}
}

func printIssues(out io.Writer, issues []sonar.Issue, noColor bool) {
	for _, issue := range issues {
		sc := severityColor(issue.Severity)
		if noColor {
			sc.DisableColor()
		}
		sc.Fprintf(out, "%-8s", issue.Severity)
		fmt.Fprintf(out, " %s:%d %s [%s] %s\n", issue.Component, issue.Line, issue.Message, issue.Rule, issue.Status)
	}
	fmt.Fprintf(out, "%d issues\n", len(issues))
}

func upper(values []string) []string {
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = strings.ToUpper(v)
	}
	return result
}
