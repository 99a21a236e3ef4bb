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

package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	sglsp "github.com/sourcegraph/go-lsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/sonar-ls/application/config"
	"github.com/snyk/sonar-ls/domain/ide/filter"
	"github.com/snyk/sonar-ls/domain/ide/host"
	"github.com/snyk/sonar-ls/domain/ide/issueview"
	"github.com/snyk/sonar-ls/domain/ide/workflow"
	"github.com/snyk/sonar-ls/domain/observability/error_reporting"
	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/domain/sonar/mock_sonar"
	"github.com/snyk/sonar-ls/infrastructure/resourcecache"
	"github.com/snyk/sonar-ls/infrastructure/sonar_api"
	"github.com/snyk/sonar-ls/internal/notification"
	"github.com/snyk/sonar-ls/internal/snapshot"
	"github.com/snyk/sonar-ls/internal/storage"
)

const (
	projectKey = "org:proj"
	fileKey    = "org:proj:main.go"
)

var projectRoot = filepath.Join(string(filepath.Separator), "work", "proj")

var mainPath = filepath.Join(projectRoot, "main.go")

type fixture struct {
	*Session
	c        *config.Config
	fake     *sonar_api.FakeFetchService
	cache    *resourcecache.ResourceCache
	notifier *notification.MockNotifier
	docs     *host.Documents
	store    *storage.InMemory
}

func newFixture(t *testing.T, fetch sonar.FetchService, opts ...Option) *fixture {
	t.Helper()
	c := config.New()
	c.SetDebounceDelay(0)
	f := &fixture{
		c:        c,
		cache:    resourcecache.New(c.Logger()),
		notifier: notification.NewMockNotifier(),
		docs:     host.NewDocuments(),
		store:    storage.NewInMemory(),
	}
	if fake, ok := fetch.(*sonar_api.FakeFetchService); ok {
		f.fake = fake
	}
	opts = append([]Option{WithAnalysisPlugin(host.NewPathPlugin(projectRoot))}, opts...)
	f.Session = New(c, fetch, f.cache, f.store, f.notifier, error_reporting.NewTestErrorReporter(c.Logger()), f.docs, opts...)
	return f
}

func fakeWithProject() *sonar_api.FakeFetchService {
	fake := sonar_api.NewFakeFetchService()
	fake.ProjectList = []sonar.Resource{{Key: projectKey, Name: "Proj", Qualifier: sonar.QualifierProject}}
	return fake
}

// associated returns a fixture with the project associated and the fake serving one file.
func associated(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	fake := fakeWithProject()
	fake.Sources[fileKey] = []string{"a", "b", "c"}
	fake.Coverages[fileKey] = sonar.Coverage{3: {LineHits: 1}}
	fake.Issues = []sonar.Issue{openIssue(fileKey, 3)}
	f := newFixture(t, fake, opts...)
	require.NoError(t, f.Initialize(context.Background()))
	require.NoError(t, f.AssociateProject(context.Background(), projectKey))
	return f
}

func openIssue(component string, line int) sonar.Issue {
	return sonar.Issue{
		Key:       uuid.New(),
		Component: component,
		Line:      line,
		Message:   "fix me",
		Status:    sonar.StatusOpen,
		Severity:  sonar.SeverityMajor,
	}
}

func TestInitialize_SortsUsersAndProjectsAndAssociatesConfiguredProject(t *testing.T) {
	fake := sonar_api.NewFakeFetchService()
	fake.Version = "4.5.1"
	fake.UserList = []sonar.User{{Login: "bob"}, {Login: "alice"}}
	fake.ProjectList = []sonar.Resource{{Key: "org:z", Name: "Zeta"}, {Key: projectKey, Name: "Alpha"}}
	f := newFixture(t, fake)
	f.c.SetProjectKey(projectKey)

	err := f.Initialize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []sonar.User{{Login: "alice"}, {Login: "bob"}, {}}, f.Users())
	assert.Equal(t, "Alpha", f.Projects()[0].Name)
	assert.Equal(t, sonar.Version("4.5.1"), f.Version())
	assert.Equal(t, "Selected Project: org:proj", f.AssociatedProjectKey())
}

func TestInitialize_RemoteFailureIsReported(t *testing.T) {
	fake := sonar_api.NewFakeFetchService()
	fake.ApiError = errors.New("connection refused")
	f := newFixture(t, fake)

	err := f.Initialize(context.Background())

	assert.True(t, errors.Is(err, sonar.ErrRemoteUnavailable))
	assert.Equal(t, 1, f.notifier.SendCount())
	assert.Empty(t, f.AssociatedProjectKey())
}

func TestRefreshForResource_NotReadyHasNoSideEffects(t *testing.T) {
	fake := fakeWithProject()
	f := newFixture(t, fake)

	err := f.RefreshForResource(context.Background(), mainPath)

	assert.True(t, errors.Is(err, sonar.ErrNotReady))
	assert.Equal(t, []any{sglsp.ShowMessageParams{Type: sglsp.MTWarning, Message: NotReadyMessage}}, f.notifier.SentMessages())
	assert.Empty(t, fake.GetAllCalls(sonar_api.ResourceOperation))
	_, _, inView := f.DocumentInView()
	assert.False(t, inView)
}

func TestRefreshForResource_NoPluginIsNotReady(t *testing.T) {
	f := associated(t)
	f.SetAnalysisPlugin(nil)

	err := f.RefreshForResource(context.Background(), mainPath)

	assert.True(t, errors.Is(err, sonar.ErrNotReady))
}

func TestRefreshForResource_FetchesOnlyWhenStale(t *testing.T) {
	f := associated(t)
	ctx := context.Background()

	require.NoError(t, f.RefreshForResource(ctx, mainPath))
	require.NoError(t, f.RefreshForResource(ctx, mainPath))

	assert.Len(t, f.fake.GetAllCalls(sonar_api.IssuesForResourceOperation), 1)
	entry, found := f.cache.Get(fileKey)
	require.True(t, found)
	assert.Equal(t, []string{"a", "b", "c"}, entry.Source)
	assert.Equal(t, f.fake.Issues, entry.Issues)
	assert.Equal(t, f.fake.Issues, f.CurrentIssues(ctx))
	assert.Positive(t, f.notifier.CountOf(notification.IssuesChanged))

	f.DocumentSaved(mainPath)
	require.NoError(t, f.RefreshForResource(ctx, mainPath))

	assert.Len(t, f.fake.GetAllCalls(sonar_api.IssuesForResourceOperation), 2)
}

func TestRefreshForResource_FailureKeepsCachedEntry(t *testing.T) {
	f := associated(t)
	ctx := context.Background()
	require.NoError(t, f.RefreshForResource(ctx, mainPath))
	before, _ := f.cache.Get(fileKey)
	f.DocumentSaved(mainPath)
	f.fake.ApiError = errors.New("timeout")

	err := f.RefreshForResource(ctx, mainPath)

	assert.True(t, errors.Is(err, sonar.ErrRemoteUnavailable))
	after, found := f.cache.Get(fileKey)
	require.True(t, found)
	assert.Equal(t, before.Issues, after.Issues)
	assert.Equal(t, before.Source, after.Source)
}

func TestRefreshForResource_LocalModeDoesNotFetchTheEntry(t *testing.T) {
	f := associated(t)
	f.SetAnalysisMode(issueview.ModeLocal)

	require.NoError(t, f.RefreshForResource(context.Background(), mainPath))

	assert.Empty(t, f.fake.GetAllCalls(sonar_api.IssuesForResourceOperation))
	assert.Empty(t, f.CurrentIssues(context.Background()), "nothing is shown before a local analysis completed")
}

func TestCurrentIssues_LockedViewNeverFetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetch := mock_sonar.NewMockFetchService(ctrl)
	f := newFixture(t, fetch)
	kept := openIssue(fileKey, 1)
	closed := openIssue(fileKey, 2)
	closed.Status = sonar.StatusClosed
	f.ReplaceAllIssues([]sonar.Issue{kept, closed})
	f.SetAnalysisMode(issueview.ModeLocal)
	f.SetChangeLinesOnly(true)
	f.SetAnalysisTrigger(true)

	issues := f.CurrentIssues(context.Background())

	assert.Equal(t, []sonar.Issue{kept}, issues)
	assert.True(t, f.State().Locked)
}

func TestRetrieveUsingCurrentFilter_UsesSearchQuery(t *testing.T) {
	f := associated(t)

	err := f.RetrieveUsingCurrentFilter(context.Background())

	require.NoError(t, err)
	calls := f.fake.GetAllCalls(sonar_api.SearchIssuesOperation)
	require.Len(t, calls, 1)
	assert.Equal(t, filter.SearchQuery(projectKey, f.FilterConfiguration()), calls[0][0])
	assert.Empty(t, f.fake.GetAllCalls(sonar_api.IssuesForProjectOperation))
	state := f.State()
	assert.True(t, state.Locked)
	assert.False(t, state.AnalysisTrigger)
	assert.Equal(t, "true", f.store.Read(filter.SettingsSection, "Saved"))
	assert.Equal(t, f.fake.Issues, f.CurrentIssues(context.Background()))
}

func TestRetrieveUsingCurrentFilter_LegacyServerFetchesProjectIssues(t *testing.T) {
	fake := fakeWithProject()
	fake.Version = "3.5"
	f := newFixture(t, fake)
	require.NoError(t, f.Initialize(context.Background()))
	require.NoError(t, f.AssociateProject(context.Background(), projectKey))

	require.NoError(t, f.RetrieveUsingCurrentFilter(context.Background()))

	assert.Len(t, fake.GetAllCalls(sonar_api.IssuesForProjectOperation), 1)
	assert.Empty(t, fake.GetAllCalls(sonar_api.SearchIssuesOperation))
}

func TestRetrieveUsingCurrentFilter_RefreshesDocumentInView(t *testing.T) {
	f := associated(t)
	ctx := context.Background()
	require.NoError(t, f.RefreshForResource(ctx, mainPath))

	require.NoError(t, f.RetrieveUsingCurrentFilter(ctx))

	assert.Empty(t, f.fake.GetAllCalls(sonar_api.SearchIssuesOperation))
	assert.Len(t, f.fake.GetAllCalls(sonar_api.ResourceOperation), 2)
	assert.False(t, f.State().Locked)
}

func TestRetrieveUsingCurrentFilter_WithoutProjectIsNotReady(t *testing.T) {
	f := newFixture(t, sonar_api.NewFakeFetchService())

	err := f.RetrieveUsingCurrentFilter(context.Background())

	assert.True(t, errors.Is(err, sonar.ErrNotReady))
	assert.Equal(t, 1, f.notifier.SendShowMessageCount())
}

func TestSelectIssues_DropsUnknownKeysAndExposesComments(t *testing.T) {
	f := newFixture(t, sonar_api.NewFakeFetchService())
	confirmed := openIssue(fileKey, 1)
	confirmed.Status = sonar.StatusConfirmed
	confirmed.Comments = []sonar.Comment{{Login: "alice", HTMLText: "seen"}}
	f.ReplaceAllIssues([]sonar.Issue{confirmed})

	visibility := f.SelectIssues([]uuid.UUID{confirmed.Key, uuid.New()})

	assert.Equal(t, []sonar.Issue{confirmed}, f.Selection())
	assert.True(t, visibility.Unconfirm)
	assert.True(t, visibility.Assign)
	assert.False(t, visibility.Confirm)
	assert.Equal(t, confirmed.Comments, f.SelectedComments())
	assert.Positive(t, f.notifier.CountOf(notification.WorkflowChanged))

	f.SelectIssues(nil)
	assert.Equal(t, workflow.Hidden, f.Visibility())
	assert.Nil(t, f.SelectedComments())
}

func TestSelectIssueByID_OnlyAmongShownIssues(t *testing.T) {
	f := newFixture(t, sonar_api.NewFakeFetchService())
	issue := openIssue(fileKey, 1)
	issue.ID = 42
	hidden := openIssue(fileKey, 2)
	hidden.ID = 7
	hidden.Status = sonar.StatusClosed
	f.ReplaceAllIssues([]sonar.Issue{issue, hidden})
	ctx := context.Background()

	selected, ok := f.SelectIssueByID(ctx, 42)
	_, hiddenFound := f.SelectIssueByID(ctx, 7)
	_, missing := f.SelectIssueByID(ctx, 8)

	assert.True(t, ok)
	assert.Equal(t, issue, selected)
	assert.False(t, hiddenFound)
	assert.False(t, missing)
	assert.Equal(t, []sonar.Issue{issue}, f.Selection())
	assert.True(t, f.Visibility().Confirm)
}

func TestTransition_ReplacesCachedIssueAndRecomputesWorkflow(t *testing.T) {
	fake := sonar_api.NewFakeFetchService()
	issue := openIssue(fileKey, 1)
	fake.Issues = []sonar.Issue{issue}
	f := newFixture(t, fake)
	f.ReplaceAllIssues([]sonar.Issue{issue})
	f.SelectIssues([]uuid.UUID{issue.Key})

	updated, err := f.Transition(context.Background(), sonar.TransitionConfirm, "")

	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, sonar.StatusConfirmed, updated[0].Status)
	cached, _ := f.cache.Issue(issue.Key)
	assert.Equal(t, sonar.StatusConfirmed, cached.Status)
	assert.True(t, f.Visibility().Unconfirm)
	assert.False(t, f.Visibility().Confirm)
}

func TestTransition_NotOfferedIsRejectedWithoutServerCall(t *testing.T) {
	fake := sonar_api.NewFakeFetchService()
	issue := openIssue(fileKey, 1)
	f := newFixture(t, fake)
	f.ReplaceAllIssues([]sonar.Issue{issue})
	f.SelectIssues([]uuid.UUID{issue.Key})

	_, err := f.Transition(context.Background(), sonar.TransitionReopen, "")
	_, unselectedErr := newFixture(t, fake).Comment(context.Background(), "hi")

	assert.ErrorIs(t, err, ErrNotAllowed)
	assert.ErrorIs(t, unselectedErr, ErrNotAllowed)
	assert.Empty(t, fake.GetAllCalls(sonar_api.TransitionOperation))
}

func TestTransition_MixedSelectionOnlyPostsToIssuesThatAllowIt(t *testing.T) {
	fake := sonar_api.NewFakeFetchService()
	open := openIssue(fileKey, 1)
	resolved := openIssue(fileKey, 2)
	resolved.Status = sonar.StatusResolved
	fake.Issues = []sonar.Issue{open, resolved}
	f := newFixture(t, fake)
	f.ReplaceAllIssues([]sonar.Issue{open, resolved})
	f.SelectIssues([]uuid.UUID{open.Key, resolved.Key})

	updated, err := f.Transition(context.Background(), sonar.TransitionReopen, "")

	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, resolved.Key, updated[0].Key)
	assert.Equal(t, sonar.StatusReopened, updated[0].Status)
	calls := fake.GetAllCalls(sonar_api.TransitionOperation)
	require.Len(t, calls, 1)
	assert.Equal(t, resolved.Key.String(), calls[0][0])
	cached, _ := f.cache.Issue(open.Key)
	assert.Equal(t, sonar.StatusOpen, cached.Status)
	assert.Len(t, f.Selection(), 2)
}

func TestTransition_PostsTheServerKey(t *testing.T) {
	fake := sonar_api.NewFakeFetchService()
	issue := openIssue(fileKey, 1)
	issue.ServerKey = "AXk1-opaqueKey"
	fake.Issues = []sonar.Issue{issue}
	f := newFixture(t, fake)
	f.ReplaceAllIssues([]sonar.Issue{issue})
	f.SelectIssues([]uuid.UUID{issue.Key})

	updated, err := f.Transition(context.Background(), sonar.TransitionConfirm, "")

	require.NoError(t, err)
	calls := fake.GetAllCalls(sonar_api.TransitionOperation)
	require.Len(t, calls, 1)
	assert.Equal(t, "AXk1-opaqueKey", calls[0][0])
	require.Len(t, updated, 1)
	assert.Equal(t, "AXk1-opaqueKey", updated[0].ServerKey)
}

func TestCommentAndAssign(t *testing.T) {
	fake := sonar_api.NewFakeFetchService()
	issue := openIssue(fileKey, 1)
	fake.Issues = []sonar.Issue{issue}
	f := newFixture(t, fake)
	f.ReplaceAllIssues([]sonar.Issue{issue})
	f.SelectIssues([]uuid.UUID{issue.Key})
	ctx := context.Background()

	_, err := f.Comment(ctx, "please look")
	require.NoError(t, err)
	_, err = f.Assign(ctx, "alice")
	require.NoError(t, err)

	cached, _ := f.cache.Issue(issue.Key)
	assert.Equal(t, "alice", cached.Assignee)
	require.Len(t, f.SelectedComments(), 1)
	assert.Equal(t, "please look", f.SelectedComments()[0].HTMLText)
}

func TestIssuesAndCoverageInEditor_FollowTheBuffer(t *testing.T) {
	f := associated(t)
	ctx := context.Background()
	require.NoError(t, f.RefreshForResource(ctx, mainPath))
	f.docs.Open(mainPath, "new\na\nb\nc")

	issues := f.IssuesInEditor(ctx, mainPath)
	coverage := f.CoverageInEditor(mainPath)

	require.Len(t, issues, 1)
	assert.Equal(t, 4, issues[0].Line)
	assert.Equal(t, sonar.Coverage{4: {LineHits: 1}}, coverage)

	f.c.SetCoverageInEditorEnabled(false)
	assert.Nil(t, f.CoverageInEditor(mainPath))
	assert.Nil(t, f.IssuesInEditor(ctx, filepath.Join(projectRoot, "other.go")))
}

func TestIssuesInEditor_OnlyTheDocumentInView(t *testing.T) {
	f := associated(t)
	ctx := context.Background()
	require.NoError(t, f.RefreshForResource(ctx, mainPath))
	f.docs.Open(mainPath, "a\nb\nc")
	f.ReplaceAllIssues([]sonar.Issue{openIssue("org:proj:other.go", 1), openIssue(fileKey, 2)})

	locked := f.IssuesInEditor(ctx, mainPath)

	assert.Equal(t, f.fake.Issues, locked)

	f.SetAnalysisMode(issueview.ModeLocal)
	f.SetAnalysisType(issueview.TypeSolution)
	f.SetChangeLinesOnly(true)
	local := f.IssuesInEditor(ctx, mainPath)

	require.Len(t, local, 1)
	assert.Equal(t, fileKey, local[0].Component)
	assert.Len(t, f.fake.GetAllCalls(sonar_api.SourceOperation), 2)
}

func TestLocalAnalysisDone_SwitchingToServerFetchesServerIssues(t *testing.T) {
	f := associated(t)
	ctx := context.Background()
	f.SetAnalysisMode(issueview.ModeLocal)
	require.NoError(t, f.RefreshForResource(ctx, mainPath))
	local := sonar.Issue{Key: uuid.New(), Line: 1, Status: sonar.StatusOpen, Severity: sonar.SeverityMinor, Message: "local"}
	require.NoError(t, f.LocalAnalysisDone(mainPath, []sonar.Issue{local}))
	assert.False(t, f.cache.IsFresh(fileKey))

	f.SetAnalysisMode(issueview.ModeServer)
	require.NoError(t, f.RefreshForResource(ctx, mainPath))

	assert.Len(t, f.fake.GetAllCalls(sonar_api.IssuesForResourceOperation), 1)
	assert.Equal(t, f.fake.Issues, f.CurrentIssues(ctx))
	entry, found := f.cache.Get(fileKey)
	require.True(t, found)
	assert.Equal(t, sonar.Coverage{3: {LineHits: 1}}, entry.Coverage)
}

func TestSetAnalysisMode_ServerMarksDocumentInViewStale(t *testing.T) {
	f := associated(t)
	ctx := context.Background()
	require.NoError(t, f.RefreshForResource(ctx, mainPath))
	f.SetAnalysisMode(issueview.ModeLocal)
	assert.True(t, f.cache.IsFresh(fileKey))

	f.SetAnalysisMode(issueview.ModeServer)

	assert.False(t, f.cache.IsFresh(fileKey))
}

func TestLocalAnalysisDone_ShowsLocalIssuesOnChangedLines(t *testing.T) {
	f := associated(t)
	ctx := context.Background()
	f.SetAnalysisMode(issueview.ModeLocal)
	require.NoError(t, f.RefreshForResource(ctx, mainPath))
	f.docs.Open(mainPath, "a\nc")
	onB := sonar.Issue{Key: uuid.New(), Line: 2, Status: sonar.StatusOpen, Severity: sonar.SeverityMinor}
	onC := sonar.Issue{Key: uuid.New(), Line: 3, Status: sonar.StatusOpen, Severity: sonar.SeverityMinor}

	require.NoError(t, f.LocalAnalysisDone(mainPath, []sonar.Issue{onB, onC}))

	assert.Len(t, f.CurrentIssues(ctx), 2)
	assert.Equal(t, fileKey, f.CurrentIssues(ctx)[0].Component)

	f.SetChangeLinesOnly(true)
	projected := f.CurrentIssues(ctx)
	require.Len(t, projected, 1)
	assert.Equal(t, onC.Key, projected[0].Key)
	assert.Equal(t, 2, projected[0].Line)
}

func TestUpdateTagsInEditor(t *testing.T) {
	f := newFixture(t, sonar_api.NewFakeFetchService())

	assert.False(t, f.UpdateTagsInEditor(), "file analysis without trigger")
	f.SetAnalysisTrigger(true)
	assert.True(t, f.UpdateTagsInEditor())
	f.SetAnalysisTrigger(false)
	f.SetLocked(true)
	assert.True(t, f.UpdateTagsInEditor())
	f.SetLocked(false)
	f.SetAnalysisMode(issueview.ModeLocal)
	f.SetAnalysisType(issueview.TypeSolution)
	assert.True(t, f.UpdateTagsInEditor())
	f.SetAnalysisMode(issueview.ModeServer)
	assert.False(t, f.UpdateTagsInEditor())
	f.c.SetEditorTagsDisabled(true)
	f.SetLocked(true)
	assert.False(t, f.UpdateTagsInEditor())
}

func TestProfile_LoadsOnceAndDegradesToNil(t *testing.T) {
	f := associated(t)
	ctx := context.Background()

	profile, err := f.Profile(ctx)

	assert.Nil(t, profile)
	assert.True(t, errors.Is(err, sonar.ErrProfileUnavailable))
	assert.Contains(t, f.notifier.SentMessages(), sglsp.ShowMessageParams{Type: sglsp.MTWarning, Message: ProfileUnavailableMessage})

	f.fake.Profile = &sonar.Profile{Name: "Sonar way", Language: "go"}
	profile, err = f.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sonar way", profile.Name)
	_, _ = f.Profile(ctx)
	assert.Len(t, f.fake.GetAllCalls(sonar_api.QualityProfileOperation), 2)
}

func TestSearchComponents_SearchesProjectsAndMasterBranches(t *testing.T) {
	fake := sonar_api.NewFakeFetchService()
	fake.ProjectList = []sonar.Resource{
		{Key: "org:a", Name: "A"},
		{Key: "org:b", Name: "B", IsBranch: true, BranchResources: []sonar.Resource{
			{Key: "org:b:master", BranchName: "master"},
			{Key: "org:b:dev", BranchName: "dev"},
		}},
	}
	fake.Components["util"] = []sonar.Resource{{Key: "org:a:util.go"}}
	fake.Components["org:a:util"] = []sonar.Resource{{Key: "org:a:util.go"}, {Key: "org:a:util/x.go"}}
	fake.Components["org:b:master:util"] = []sonar.Resource{{Key: "org:b:master:util.go"}}
	f := newFixture(t, fake)
	require.NoError(t, f.Initialize(context.Background()))

	found, err := f.SearchComponents(context.Background(), "util")

	require.NoError(t, err)
	var keys []string
	for _, r := range found {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"org:a:util.go", "org:a:util/x.go", "org:b:master:util.go"}, keys)
	assert.Len(t, fake.GetAllCalls(sonar_api.SearchComponentsOperation), 3)
}

func TestColumns(t *testing.T) {
	f := newFixture(t, sonar_api.NewFakeFetchService())

	assert.False(t, f.IsColumnVisible("Severity"))
	visible, err := f.ToggleColumn("Severity")

	require.NoError(t, err)
	assert.True(t, visible)
	assert.Equal(t, "true", f.store.Read(ColumnsSection, "SeverityVisible"))
	assert.Equal(t, []ColumnMenuItem{
		{Column: "Severity", Text: "Hide Severity", Visible: true},
		{Column: "Line", Text: "Show Line"},
	}, f.ColumnMenu([]string{"Severity", "Line"}))
}

func TestClearProjectAssociation_ClearsCache(t *testing.T) {
	f := associated(t)
	require.NoError(t, f.RefreshForResource(context.Background(), mainPath))

	f.ClearProjectAssociation()

	assert.Empty(t, f.cache.Keys())
	assert.Empty(t, f.AssociatedProjectKey())
	assert.False(t, f.cache.IsFresh(fileKey))
}

func TestSnapshot_LockedViewSurvivesCacheClear(t *testing.T) {
	store, err := snapshot.Open(t.TempDir())
	require.NoError(t, err)
	f := associated(t, WithSnapshots(store))
	ctx := context.Background()
	require.NoError(t, f.RetrieveUsingCurrentFilter(ctx))

	f.ClearCache()
	assert.Empty(t, f.CurrentIssues(ctx))
	loaded, err := f.LoadSnapshot()

	require.NoError(t, err)
	assert.True(t, loaded)
	require.Len(t, f.CurrentIssues(ctx), 1)
	assert.Equal(t, f.fake.Issues[0].Key, f.CurrentIssues(ctx)[0].Key)
}
