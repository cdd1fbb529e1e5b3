package actions_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"stackit.dev/seedissues/internal/actions"
	"stackit.dev/seedissues/internal/config"
	seederrors "stackit.dev/seedissues/internal/errors"
	"stackit.dev/seedissues/internal/manifest"
	"stackit.dev/seedissues/internal/notify"
	"stackit.dev/seedissues/internal/output"
	"stackit.dev/seedissues/internal/runtime"
	"stackit.dev/seedissues/testhelpers"
)

type testEnv struct {
	ctx    *runtime.Context
	server *testhelpers.MockGitHubServerConfig
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestEnv(t *testing.T, server *testhelpers.MockGitHubServerConfig) *testEnv {
	t.Helper()
	var out, errOut bytes.Buffer
	splog, err := output.NewSplogWithConfig(output.Options{Out: &out, Err: &errOut})
	require.NoError(t, err)

	client := testhelpers.NewMockClient(t, server)
	ctx := runtime.NewContext(context.Background(), config.Default(), client, splog)
	return &testEnv{ctx: ctx, server: server, out: &out, errOut: &errOut}
}

type recordingNotifier struct {
	summaries []notify.Summary
	err       error
}

func (n *recordingNotifier) Notify(_ context.Context, s notify.Summary) error {
	n.summaries = append(n.summaries, s)
	return n.err
}

func checklist(body string) []string {
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "- [ ] ") {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestBootstrapAction(t *testing.T) {
	t.Run("single entry against an empty repository", func(t *testing.T) {
		env := newTestEnv(t, testhelpers.NewMockGitHubServerConfig())

		result, err := actions.BootstrapAction(env.ctx, actions.BootstrapOptions{
			Entries: []manifest.Entry{{Title: "Fix README typo"}},
		})
		require.NoError(t, err)

		// label "docs" created with its color
		require.Len(t, env.server.CreatedLabels, 1)
		require.Equal(t, "docs", env.server.CreatedLabels[0].GetName())
		require.Equal(t, "1f883d", env.server.CreatedLabels[0].GetColor())
		require.Equal(t, []string{"docs"}, result.LabelsCreated)

		// milestone created
		require.Len(t, env.server.CreatedMilestones, 1)
		require.Equal(t, "v0.2 Docs polish", env.server.CreatedMilestones[0].GetTitle())
		require.True(t, result.MilestoneCreated)

		// one issue plus the tracking issue
		require.Len(t, env.server.CreatedIssues, 2)
		first := env.server.CreatedIssues[0]
		require.Equal(t, "Fix README typo", first.GetTitle())
		require.Equal(t, []string{"docs"}, first.GetLabels())
		require.Equal(t, result.MilestoneNumber, first.GetMilestone())

		trackingReq := env.server.CreatedIssues[1]
		require.Equal(t, "Documentation overhaul (v0.2)", trackingReq.GetTitle())
		require.Equal(t, []string{"docs", "tracking"}, trackingReq.GetLabels())
		require.Equal(t, result.MilestoneNumber, trackingReq.GetMilestone())
		require.Equal(t, []string{"- [ ] #101 Fix README typo"}, checklist(trackingReq.GetBody()))

		require.Equal(t,
			"Created issue #101: https://github.com/owner/repo/issues/101\n"+
				"Created issue #102: https://github.com/owner/repo/issues/102\n"+
				"\nAll set.\nTracking issue: #102\n",
			env.out.String())
		require.Empty(t, env.errOut.String())
	})

	t.Run("K entries make K+1 issue calls sharing one milestone", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig().
			WithLabels("docs", "faq").
			WithMilestone("v0.1", 1, "open").
			WithMilestone("v0.2 Docs polish", 2, "closed")
		env := newTestEnv(t, server)

		entries := []manifest.Entry{
			{Title: "Fix README typo"},
			{Title: "Add FAQ", Body: "Collect questions", Labels: []string{"faq"}},
			{Title: "Refresh vignettes", Labels: []string{}},
		}
		result, err := actions.BootstrapAction(env.ctx, actions.BootstrapOptions{Entries: entries})
		require.NoError(t, err)

		require.Empty(t, server.CreatedLabels)
		require.Empty(t, server.CreatedMilestones)
		require.False(t, result.MilestoneCreated)
		require.Equal(t, 2, result.MilestoneNumber)

		require.Len(t, server.CreatedIssues, len(entries)+1)
		for _, req := range server.CreatedIssues {
			require.Equal(t, 2, req.GetMilestone())
		}
		require.Equal(t, []string{"faq"}, server.CreatedIssues[1].GetLabels())
		require.Equal(t, "Collect questions", server.CreatedIssues[1].GetBody())
		require.Equal(t, []string{"docs"}, server.CreatedIssues[2].GetLabels())

		require.Equal(t, []string{
			"- [ ] #101 Fix README typo",
			"- [ ] #102 Add FAQ",
			"- [ ] #103 Refresh vignettes",
		}, checklist(server.CreatedIssues[3].GetBody()))
		require.Equal(t, 104, result.Tracking.Number)
		require.Len(t, result.Issues, 3)
	})

	t.Run("a failing issue call stops the run and keeps earlier issues", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		env := newTestEnv(t, server)

		// fail only once the labels and milestone exist
		client := &failAfter{Client: env.ctx.GitHubClient, issuesBeforeFailure: 1}
		env.ctx.GitHubClient = client

		_, err := actions.BootstrapAction(env.ctx, actions.BootstrapOptions{
			Entries: []manifest.Entry{{Title: "one"}, {Title: "two"}, {Title: "three"}},
		})
		require.Error(t, err)
		require.Len(t, server.CreatedIssues, 1)
		require.NotContains(t, env.out.String(), "All set.")
	})

	t.Run("api errors are typed", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		server.ErrorResponses["GET milestones"] = http.StatusInternalServerError
		env := newTestEnv(t, server)

		_, err := actions.BootstrapAction(env.ctx, actions.BootstrapOptions{
			Entries: []manifest.Entry{{Title: "one"}},
		})
		var apiErr *seederrors.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode())
		require.Empty(t, server.CreatedIssues)
	})

	t.Run("dry run makes no create calls", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig().WithLabels("docs")
		env := newTestEnv(t, server)

		_, err := actions.BootstrapAction(env.ctx, actions.BootstrapOptions{
			Entries: []manifest.Entry{{Title: "Fix README typo"}, {Title: "Add FAQ", Labels: []string{"faq"}}},
			DryRun:  true,
		})
		require.NoError(t, err)
		require.Equal(t, 0, server.CountRequests(http.MethodPost))
		require.Equal(t, 2, server.CountRequests(http.MethodGet))

		out := env.out.String()
		require.Contains(t, out, "Would create label faq (#0e8a16)")
		require.NotContains(t, out, "Would create label docs")
		require.Contains(t, out, `Would create milestone "v0.2 Docs polish"`)
		require.Contains(t, out, "- [ ] #2 Add FAQ")
	})

	t.Run("declined confirmation creates nothing", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		env := newTestEnv(t, server)

		var asked string
		result, err := actions.BootstrapAction(env.ctx, actions.BootstrapOptions{
			Entries: []manifest.Entry{{Title: "one"}, {Title: "two"}},
			Confirm: func(message string) (bool, error) {
				asked = message
				return false, nil
			},
		})
		require.NoError(t, err)
		require.True(t, result.Aborted)
		require.Equal(t, "Create 2 issues (+1 tracking) in owner/repo?", asked)
		require.Empty(t, server.Requests)
		require.Equal(t, "Aborted.\n", env.out.String())
	})

	t.Run("notifies after the tracking issue", func(t *testing.T) {
		env := newTestEnv(t, testhelpers.NewMockGitHubServerConfig())
		notifier := &recordingNotifier{}
		env.ctx.Notifier = notifier

		_, err := actions.BootstrapAction(env.ctx, actions.BootstrapOptions{
			Entries: []manifest.Entry{{Title: "one"}},
		})
		require.NoError(t, err)
		require.Equal(t, []notify.Summary{{
			Repository:     "owner/repo",
			IssueCount:     1,
			TrackingNumber: 102,
			TrackingURL:    "https://github.com/owner/repo/issues/102",
			TrackingTitle:  "Documentation overhaul (v0.2)",
		}}, notifier.summaries)
	})

	t.Run("a failed notification is only a warning", func(t *testing.T) {
		env := newTestEnv(t, testhelpers.NewMockGitHubServerConfig())
		env.ctx.Notifier = &recordingNotifier{err: errors.New("webhook down")}

		_, err := actions.BootstrapAction(env.ctx, actions.BootstrapOptions{
			Entries: []manifest.Entry{{Title: "one"}},
		})
		require.NoError(t, err)
		require.Contains(t, env.errOut.String(), "webhook down")
	})
}
