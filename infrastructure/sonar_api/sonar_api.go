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

package sonar_api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
	"golang.org/x/time/rate"

	"github.com/snyk/sonar-ls/application/config"
	"github.com/snyk/sonar-ls/domain/sonar"
)

const (
	pageSize = 500
	maxPages = 20
	// the server reports dates with a numeric zone offset without colon
	serverDateLayout = "2006-01-02T15:04:05-0700"
)

type SonarApiClientImpl struct {
	c              *config.Config
	httpClientFunc func() *http.Client
	limiter        *rate.Limiter
	logger         *zerolog.Logger
}

type SonarApiError struct {
	msg        string
	statusCode int
}

func NewSonarApiError(msg string, statusCode int) *SonarApiError {
	return &SonarApiError{msg: msg, statusCode: statusCode}
}

func (e *SonarApiError) Error() string {
	return e.msg
}

func (e *SonarApiError) StatusCode() int {
	return e.statusCode
}

var _ sonar.FetchService = (*SonarApiClientImpl)(nil)

func NewSonarApiClient(c *config.Config, client func() *http.Client) *SonarApiClientImpl {
	l := c.Logger().With().Str("component", "sonar_api").Logger()
	limit := rate.Inf
	if rps := c.RequestsPerSecond(); rps > 0 {
		limit = rate.Limit(rps)
	}
	return &SonarApiClientImpl{
		c:              c,
		httpClientFunc: client,
		limiter:        rate.NewLimiter(limit, 1),
		logger:         &l,
	}
}

type wireComment struct {
	Key       string `json:"key"`
	Login     string `json:"login"`
	HTMLText  string `json:"htmlText"`
	CreatedAt string `json:"createdAt"`
}

type wireIssue struct {
	ID           int           `json:"id"`
	Key          string        `json:"key"`
	Component    string        `json:"component"`
	Line         int           `json:"line"`
	Message      string        `json:"message"`
	Rule         string        `json:"rule"`
	Status       string        `json:"status"`
	Severity     string        `json:"severity"`
	Resolution   string        `json:"resolution"`
	Assignee     string        `json:"assignee"`
	Reporter     string        `json:"reporter"`
	CreationDate string        `json:"creationDate"`
	Comments     []wireComment `json:"comments"`
}

type paging struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
}

type issuesResponse struct {
	Paging paging      `json:"paging"`
	Issues []wireIssue `json:"issues"`
}

type issueResponse struct {
	Issue wireIssue `json:"issue"`
}

type wireComponent struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Qualifier string `json:"qualifier"`
	Language  string `json:"language"`
	Branch    string `json:"branch"`
}

type componentsResponse struct {
	Paging     paging          `json:"paging"`
	Components []wireComponent `json:"components"`
}

type componentResponse struct {
	Component wireComponent `json:"component"`
}

type usersResponse struct {
	Users []sonar.User `json:"users"`
}

type profilesResponse struct {
	Profiles []struct {
		Key      string `json:"key"`
		Name     string `json:"name"`
		Language string `json:"language"`
	} `json:"profiles"`
}

type rulesResponse struct {
	Rules []sonar.Rule `json:"rules"`
}

type linesResponse struct {
	Sources []struct {
		Line              int  `json:"line"`
		LineHits          *int `json:"lineHits"`
		Conditions        int  `json:"conditions"`
		CoveredConditions int  `json:"coveredConditions"`
	} `json:"sources"`
}

func parseServerDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{serverDateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (w wireIssue) toIssue() sonar.Issue {
	key, err := uuid.Parse(w.Key)
	if err != nil {
		// opaque server keys get a stable local key; ServerKey keeps the original
		key = uuid.NewSHA1(uuid.NameSpaceURL, []byte(w.Key))
	}
	issue := sonar.Issue{
		ID:           w.ID,
		Key:          key,
		ServerKey:    w.Key,
		Component:    w.Component,
		Line:         w.Line,
		Message:      w.Message,
		Rule:         w.Rule,
		Status:       w.Status,
		Severity:     w.Severity,
		Resolution:   w.Resolution,
		Assignee:     w.Assignee,
		Reporter:     w.Reporter,
		CreationDate: parseServerDate(w.CreationDate),
	}
	for _, c := range w.Comments {
		issue.Comments = append(issue.Comments, sonar.Comment{
			Key:       c.Key,
			Login:     c.Login,
			HTMLText:  c.HTMLText,
			CreatedAt: parseServerDate(c.CreatedAt),
		})
	}
	return issue
}

func (w wireComponent) toResource() sonar.Resource {
	return sonar.Resource{
		Key:        w.Key,
		Name:       w.Name,
		Qualifier:  w.Qualifier,
		Lang:       w.Language,
		BranchName: w.Branch,
	}
}

func (s *SonarApiClientImpl) ServerVersion(ctx context.Context) (sonar.Version, error) {
	body, err := s.doCall(ctx, http.MethodGet, "/api/server/version", nil)
	if err != nil {
		return "", sonar.RemoteUnavailable(err, "ServerVersion")
	}
	return sonar.Version(strings.TrimSpace(string(body))), nil
}

func (s *SonarApiClientImpl) Users(ctx context.Context) ([]sonar.User, error) {
	var response usersResponse
	if err := s.processApiResponse(ctx, "Users", "/api/users/search?ps="+strconv.Itoa(pageSize), &response); err != nil {
		return nil, err
	}
	return response.Users, nil
}

// Projects lists all projects and groups branch projects under their main project.
func (s *SonarApiClientImpl) Projects(ctx context.Context) ([]sonar.Resource, error) {
	var response componentsResponse
	path := "/api/components/search?qualifiers=" + sonar.QualifierProject + "&ps=" + strconv.Itoa(pageSize)
	if err := s.processApiResponse(ctx, "Projects", path, &response); err != nil {
		return nil, err
	}

	var projects []sonar.Resource
	index := map[string]int{}
	for _, component := range response.Components {
		resource := component.toResource()
		if resource.BranchName == "" {
			index[resource.Key] = len(projects)
			projects = append(projects, resource)
		}
	}
	for _, component := range response.Components {
		if component.Branch == "" {
			continue
		}
		mainKey := strings.TrimSuffix(component.Key, ":"+component.Branch)
		i, ok := index[mainKey]
		if !ok {
			index[mainKey] = len(projects)
			projects = append(projects, sonar.Resource{Key: mainKey, Name: component.Name, Qualifier: sonar.QualifierProject})
			i = index[mainKey]
		}
		projects[i].IsBranch = true
		projects[i].BranchResources = append(projects[i].BranchResources, component.toResource())
	}
	return projects, nil
}

func (s *SonarApiClientImpl) Resource(ctx context.Context, resourceKey string) (sonar.Resource, error) {
	var response componentResponse
	if err := s.processApiResponse(ctx, "Resource", "/api/components/show?component="+url.QueryEscape(resourceKey), &response); err != nil {
		return sonar.Resource{}, err
	}
	return response.Component.toResource(), nil
}

// QualityProfile returns the first profile of the project together with its active rules.
func (s *SonarApiClientImpl) QualityProfile(ctx context.Context, projectKey string) (sonar.Profile, error) {
	var profiles profilesResponse
	if err := s.processApiResponse(ctx, "QualityProfile", "/api/qualityprofiles/search?project="+url.QueryEscape(projectKey), &profiles); err != nil {
		return sonar.Profile{}, err
	}
	if len(profiles.Profiles) == 0 {
		return sonar.Profile{}, sonar.RemoteUnavailable(errors.Errorf("no profile for %s", projectKey), "QualityProfile")
	}
	p := profiles.Profiles[0]
	var rules rulesResponse
	path := "/api/rules/search?activation=true&ps=" + strconv.Itoa(pageSize) + "&qprofile=" + url.QueryEscape(p.Key)
	if err := s.processApiResponse(ctx, "QualityProfile", path, &rules); err != nil {
		return sonar.Profile{}, err
	}
	return sonar.Profile{Name: p.Name, Language: p.Language, Rules: rules.Rules}, nil
}

// SearchIssues runs an issue search; query is a search parameter string such as
// "?componentRoots=org:proj&statuses=OPEN". All pages are fetched.
func (s *SonarApiClientImpl) SearchIssues(ctx context.Context, query string) ([]sonar.Issue, error) {
	query = strings.TrimPrefix(query, "?")
	var issues []sonar.Issue
	for page := 1; page <= maxPages; page++ {
		var response issuesResponse
		path := fmt.Sprintf("/api/issues/search?%s&ps=%d&p=%d", query, pageSize, page)
		if err := s.processApiResponse(ctx, "SearchIssues", path, &response); err != nil {
			return nil, err
		}
		for _, w := range response.Issues {
			issues = append(issues, w.toIssue())
		}
		if len(response.Issues) == 0 || page*pageSize >= response.Paging.Total {
			break
		}
	}
	return issues, nil
}

func (s *SonarApiClientImpl) IssuesForProject(ctx context.Context, projectKey string) ([]sonar.Issue, error) {
	return s.SearchIssues(ctx, "componentRoots="+url.QueryEscape(projectKey))
}

func (s *SonarApiClientImpl) IssuesForResource(ctx context.Context, resourceKey string) ([]sonar.Issue, error) {
	return s.SearchIssues(ctx, "componentKeys="+url.QueryEscape(resourceKey))
}

func (s *SonarApiClientImpl) Coverage(ctx context.Context, resourceKey string) (sonar.Coverage, error) {
	var response linesResponse
	if err := s.processApiResponse(ctx, "Coverage", "/api/sources/lines?key="+url.QueryEscape(resourceKey), &response); err != nil {
		return nil, err
	}
	coverage := sonar.Coverage{}
	for _, line := range response.Sources {
		if line.LineHits == nil {
			continue
		}
		coverage[line.Line] = sonar.CoverageElement{
			LineHits:          *line.LineHits,
			Conditions:        line.Conditions,
			CoveredConditions: line.CoveredConditions,
		}
	}
	return coverage, nil
}

func (s *SonarApiClientImpl) Source(ctx context.Context, resourceKey string) ([]string, error) {
	body, err := s.doCall(ctx, http.MethodGet, "/api/sources/raw?key="+url.QueryEscape(resourceKey), nil)
	if err != nil {
		return nil, sonar.RemoteUnavailable(err, "Source")
	}
	text := strings.TrimSuffix(strings.ReplaceAll(string(body), "\r\n", "\n"), "\n")
	if text == "" {
		return []string{}, nil
	}
	return strings.Split(text, "\n"), nil
}

func (s *SonarApiClientImpl) SearchComponents(ctx context.Context, query string) ([]sonar.Resource, error) {
	var response componentsResponse
	path := "/api/components/search?qualifiers=" + sonar.QualifierFile + "," + sonar.QualifierDirectory +
		"&ps=" + strconv.Itoa(pageSize) + "&q=" + url.QueryEscape(query)
	if err := s.processApiResponse(ctx, "SearchComponents", path, &response); err != nil {
		return nil, err
	}
	resources := make([]sonar.Resource, 0, len(response.Components))
	for _, component := range response.Components {
		resources = append(resources, component.toResource())
	}
	slices.SortStableFunc(resources, func(a, b sonar.Resource) int { return strings.Compare(a.Key, b.Key) })
	return resources, nil
}

// Transition applies a workflow transition. A non-empty comment is added before the transition.
func (s *SonarApiClientImpl) Transition(ctx context.Context, issueKey string, transition sonar.Transition, comment string) (sonar.Issue, error) {
	if comment != "" {
		if _, err := s.Comment(ctx, issueKey, comment); err != nil {
			return sonar.Issue{}, err
		}
	}
	return s.postIssueAction(ctx, "Transition", "/api/issues/do_transition",
		url.Values{"issue": {issueKey}, "transition": {string(transition)}})
}

func (s *SonarApiClientImpl) Comment(ctx context.Context, issueKey string, text string) (sonar.Issue, error) {
	return s.postIssueAction(ctx, "Comment", "/api/issues/add_comment", url.Values{"issue": {issueKey}, "text": {text}})
}

// Assign assigns the issue to login; an empty login unassigns it.
func (s *SonarApiClientImpl) Assign(ctx context.Context, issueKey string, login string) (sonar.Issue, error) {
	return s.postIssueAction(ctx, "Assign", "/api/issues/assign", url.Values{"issue": {issueKey}, "assignee": {login}})
}

func (s *SonarApiClientImpl) postIssueAction(ctx context.Context, caller string, path string, form url.Values) (sonar.Issue, error) {
	body, err := s.doCall(ctx, http.MethodPost, path, []byte(form.Encode()))
	if err != nil {
		return sonar.Issue{}, sonar.RemoteUnavailable(err, caller)
	}
	var response issueResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return sonar.Issue{}, sonar.RemoteUnavailable(errors.Wrap(err, "couldn't unmarshal"), caller)
	}
	return response.Issue.toIssue(), nil
}

func (s *SonarApiClientImpl) doCall(ctx context.Context, method string, endpointPath string, requestBody []byte) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, NewSonarApiError(err.Error(), 0)
	}
	host := strings.TrimSuffix(s.c.ServerURL(), "/")
	b := bytes.NewBuffer(requestBody)
	req, requestErr := http.NewRequestWithContext(ctx, method, host+endpointPath, b)
	if requestErr != nil {
		return nil, NewSonarApiError(requestErr.Error(), 0)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("User-Agent", "sonar-ls/"+config.Version)
	if token := s.c.Token(); token != "" {
		req.SetBasicAuth(token, "")
	}

	s.logger.Trace().Str("method", method).Str("path", endpointPath).Str("requestBody", string(requestBody)).Msg("SEND TO REMOTE")
	response, err := s.httpClientFunc().Do(req)
	if err != nil {
		return nil, NewSonarApiError(err.Error(), 0)
	}
	defer func() {
		closeErr := response.Body.Close()
		if closeErr != nil {
			s.logger.Err(closeErr).Msg("Couldn't close response body in call to Sonar API")
		}
	}()

	apiError := checkResponseCode(response)
	if apiError != nil {
		return nil, apiError
	}

	responseBody, readErr := io.ReadAll(response.Body)
	s.logger.Trace().Str("response.Status", response.Status).Str("responseBody",
		string(responseBody)).Msg("RECEIVED FROM REMOTE")
	if readErr != nil {
		return nil, NewSonarApiError(readErr.Error(), 0)
	}
	return responseBody, nil
}

func (s *SonarApiClientImpl) processApiResponse(ctx context.Context, caller string, path string, v interface{}) error {
	responseBody, err := s.doCall(ctx, http.MethodGet, path, nil)
	if err != nil {
		return sonar.RemoteUnavailable(err, caller)
	}

	if err := json.Unmarshal(responseBody, v); err != nil {
		return sonar.RemoteUnavailable(errors.Wrap(err, "couldn't unmarshal"), caller)
	}
	return nil
}

func checkResponseCode(r *http.Response) *SonarApiError {
	if r.StatusCode >= 200 && r.StatusCode <= 399 {
		return nil
	}

	return NewSonarApiError("Unexpected response code: "+r.Status, r.StatusCode)
}
