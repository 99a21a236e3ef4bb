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
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/sonar-ls/application/config"
	"github.com/snyk/sonar-ls/domain/sonar"
)

const issueKey = "5b9ac7a4-4a43-4d51-b2ad-1b3f1a51a8e0"

func testClient(t *testing.T, handler http.HandlerFunc) (*SonarApiClientImpl, *config.Config) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c := config.New(config.WithServerURL(server.URL))
	c.SetRequestsPerSecond(0)
	return NewSonarApiClient(c, server.Client), c
}

func TestSonarApiClient_ServerVersion(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/server/version", r.URL.Path)
		_, _ = fmt.Fprint(w, "3.7.4\n")
	})

	version, err := client.ServerVersion(context.Background())

	require.NoError(t, err)
	assert.Equal(t, sonar.Version("3.7.4"), version)
}

func TestSonarApiClient_SendsTokenAsBasicAuth(t *testing.T) {
	client, c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "squ_token", user)
		assert.Empty(t, password)
		_, _ = fmt.Fprint(w, `{"users":[{"login":"alice","name":"Alice"}]}`)
	})
	c.SetToken("squ_token")

	users, err := client.Users(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []sonar.User{{Login: "alice", Name: "Alice"}}, users)
}

func TestSonarApiClient_ErrorStatusIsRemoteUnavailable(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Users(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, sonar.ErrRemoteUnavailable))
	var apiError *SonarApiError
	require.True(t, errors.As(err, &apiError))
	assert.Equal(t, http.StatusUnauthorized, apiError.StatusCode())
}

func TestSonarApiClient_SearchIssuesFollowsPaging(t *testing.T) {
	var calls atomic.Int32
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/issues/search", r.URL.Path)
		assert.Equal(t, "org:proj", r.URL.Query().Get("componentRoots"))
		assert.Equal(t, "OPEN", r.URL.Query().Get("statuses"))
		page := r.URL.Query().Get("p")
		line := 10
		if page == "2" {
			line = 20
		}
		_, _ = fmt.Fprintf(w, `{"paging":{"pageIndex":%s,"pageSize":500,"total":501},"issues":[
			{"key":"%s","component":"org:proj:a.go","line":%d,"message":"m","status":"OPEN",
			 "severity":"MAJOR","creationDate":"2013-05-13T17:55:39+0200",
			 "comments":[{"key":"c1","login":"bob","htmlText":"hi","createdAt":"2013-05-14T10:00:00+0200"}]}]}`,
			page, issueKey, line)
	})

	issues, err := client.SearchIssues(context.Background(), "?componentRoots=org:proj&statuses=OPEN")

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, issues, 2)
	assert.Equal(t, uuid.MustParse(issueKey), issues[0].Key)
	assert.Equal(t, 10, issues[0].Line)
	assert.Equal(t, 20, issues[1].Line)
	assert.Equal(t, 2013, issues[0].CreationDate.Year())
	require.Len(t, issues[0].Comments, 1)
	assert.Equal(t, "bob", issues[0].Comments[0].Login)
}

func TestSonarApiClient_OpaqueIssueKeysAreStable(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"paging":{"total":1},"issues":[{"key":"AVabc","component":"p:f"}]}`)
	})

	first, err := client.IssuesForResource(context.Background(), "p:f")
	require.NoError(t, err)
	second, err := client.IssuesForResource(context.Background(), "p:f")
	require.NoError(t, err)

	assert.Equal(t, first[0].Key, second[0].Key)
	assert.NotEqual(t, uuid.Nil, first[0].Key)
	assert.Equal(t, "AVabc", first[0].ServerKey)
}

func TestSonarApiClient_ActionsPostTheServerKey(t *testing.T) {
	const opaqueKey = "AXk1-opaqueKey"
	var posted []string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = fmt.Fprintf(w, `{"paging":{"total":1},"issues":[{"key":"%s","component":"p:f","status":"OPEN"}]}`, opaqueKey)
			return
		}
		body, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(body))
		require.NoError(t, err)
		posted = append(posted, form.Get("issue"))
		_, _ = fmt.Fprintf(w, `{"issue":{"key":"%s","component":"p:f","status":"CONFIRMED","assignee":"alice"}}`, opaqueKey)
	})
	ctx := context.Background()
	issues, err := client.IssuesForResource(ctx, "p:f")
	require.NoError(t, err)
	require.Len(t, issues, 1)

	confirmed, err := client.Transition(ctx, issues[0].RemoteKey(), sonar.TransitionConfirm, "")
	require.NoError(t, err)
	_, err = client.Comment(ctx, issues[0].RemoteKey(), "seen")
	require.NoError(t, err)
	_, err = client.Assign(ctx, issues[0].RemoteKey(), "alice")
	require.NoError(t, err)

	assert.Equal(t, []string{opaqueKey, opaqueKey, opaqueKey}, posted)
	assert.Equal(t, issues[0].Key, confirmed.Key)
	assert.Equal(t, opaqueKey, confirmed.ServerKey)
}

func TestSonarApiClient_SourceAndCoverage(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "p:f.go", r.URL.Query().Get("key"))
		switch r.URL.Path {
		case "/api/sources/raw":
			_, _ = fmt.Fprint(w, "a\r\nb\n")
		case "/api/sources/lines":
			_, _ = fmt.Fprint(w, `{"sources":[{"line":1,"lineHits":3},{"line":2},{"line":3,"lineHits":0,"conditions":2,"coveredConditions":1}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	source, err := client.Source(context.Background(), "p:f.go")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, source)

	coverage, err := client.Coverage(context.Background(), "p:f.go")
	require.NoError(t, err)
	assert.Equal(t, sonar.Coverage{1: {LineHits: 3}, 3: {Conditions: 2, CoveredConditions: 1}}, coverage)
}

func TestSonarApiClient_ProjectsGroupsBranches(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, sonar.QualifierProject, r.URL.Query().Get("qualifiers"))
		_, _ = fmt.Fprint(w, `{"components":[
			{"key":"org:proj","name":"Proj","qualifier":"TRK"},
			{"key":"org:proj:master","name":"Proj","qualifier":"TRK","branch":"master"},
			{"key":"org:other","name":"Other","qualifier":"TRK"}]}`)
	})

	projects, err := client.Projects(context.Background())

	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.True(t, projects[0].IsBranch)
	assert.Equal(t, []string{"org:proj:master"}, projects[0].SearchRoots())
	assert.Equal(t, []string{"org:other"}, projects[1].SearchRoots())
}

func TestSonarApiClient_TransitionWithCommentPostsBoth(t *testing.T) {
	var paths []string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(body))
		require.NoError(t, err)
		assert.Equal(t, issueKey, form.Get("issue"))
		paths = append(paths, r.URL.Path)
		status := "OPEN"
		if r.URL.Path == "/api/issues/do_transition" {
			assert.Equal(t, "confirm", form.Get("transition"))
			status = "CONFIRMED"
		}
		_, _ = fmt.Fprintf(w, `{"issue":{"key":"%s","status":"%s"}}`, issueKey, status)
	})

	issue, err := client.Transition(context.Background(), issueKey, sonar.TransitionConfirm, "looks right")

	require.NoError(t, err)
	assert.Equal(t, []string{"/api/issues/add_comment", "/api/issues/do_transition"}, paths)
	assert.Equal(t, sonar.StatusConfirmed, issue.Status)
}

func TestSonarApiClient_RateLimitHonoursContext(t *testing.T) {
	client, c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "4.5")
	})
	c.SetRequestsPerSecond(0.001)
	client = NewSonarApiClient(c, func() *http.Client { return http.DefaultClient })
	_, err := client.ServerVersion(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.ServerVersion(ctx)

	assert.True(t, errors.Is(err, sonar.ErrRemoteUnavailable))
}

func TestFakeFetchService_RecordsCallsAndFails(t *testing.T) {
	fake := NewFakeFetchService()
	key := uuid.New()
	fake.Issues = []sonar.Issue{{Key: key, Status: sonar.StatusOpen, Component: "p:f"}}

	issue, err := fake.Transition(context.Background(), key.String(), sonar.TransitionResolve, "")
	require.NoError(t, err)
	assert.Equal(t, sonar.StatusResolved, issue.Status)
	assert.Equal(t, sonar.ResolutionFixed, issue.Resolution)
	assert.Len(t, fake.GetAllCalls(TransitionOperation), 1)

	fake.ApiError = errors.New("down")
	_, err = fake.IssuesForResource(context.Background(), "p:f")
	assert.True(t, errors.Is(err, sonar.ErrRemoteUnavailable))
}
