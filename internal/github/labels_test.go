package github_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	seederrors "stackit.dev/seedissues/internal/errors"
	githubpkg "stackit.dev/seedissues/internal/github"
	"stackit.dev/seedissues/testhelpers"
)

func TestLabelColor(t *testing.T) {
	require.Equal(t, "1f883d", githubpkg.LabelColor("docs"))
	require.Equal(t, "0e8a16", githubpkg.LabelColor("tracking"))
	require.Equal(t, "0e8a16", githubpkg.LabelColor("Docs"))
}

func TestMissingLabels(t *testing.T) {
	existing := []githubpkg.Label{{Name: "docs"}, {Name: "bug"}}

	missing := githubpkg.MissingLabels(existing, []string{"vignettes", "docs", "ci", "ci"})
	require.Equal(t, []string{"ci", "vignettes"}, missing)

	require.Empty(t, githubpkg.MissingLabels(existing, []string{"docs", "bug"}))
}

func TestEnsureLabels(t *testing.T) {
	ctx := context.Background()

	t.Run("creates only missing labels with the color rule", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig().WithLabels("bug")
		client := testhelpers.NewMockClient(t, config)

		created, err := githubpkg.EnsureLabels(ctx, client, []string{"bug", "docs", "faq"})
		require.NoError(t, err)
		require.Equal(t, []string{"docs", "faq"}, created)

		require.Len(t, config.CreatedLabels, 2)
		require.Equal(t, "docs", config.CreatedLabels[0].GetName())
		require.Equal(t, "1f883d", config.CreatedLabels[0].GetColor())
		require.Equal(t, "faq", config.CreatedLabels[1].GetName())
		require.Equal(t, "0e8a16", config.CreatedLabels[1].GetColor())
	})

	t.Run("is idempotent when every label exists", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig().WithLabels("docs", "faq")
		client := testhelpers.NewMockClient(t, config)

		created, err := githubpkg.EnsureLabels(ctx, client, []string{"docs", "faq"})
		require.NoError(t, err)
		require.Empty(t, created)
		require.Equal(t, 0, config.CountRequests(http.MethodPost))
		require.Equal(t, 1, config.CountRequests(http.MethodGet))
	})

	t.Run("a failed create aborts", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.ErrorResponses["POST labels"] = http.StatusUnprocessableEntity
		client := testhelpers.NewMockClient(t, config)

		_, err := githubpkg.EnsureLabels(ctx, client, []string{"a", "b"})
		var apiErr *seederrors.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 1, config.CountRequests(http.MethodPost))
	})

	t.Run("a failed list makes no create calls", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.ErrorResponses["GET labels"] = http.StatusInternalServerError
		client := testhelpers.NewMockClient(t, config)

		_, err := githubpkg.EnsureLabels(ctx, client, []string{"docs"})
		require.Error(t, err)
		require.Equal(t, 0, config.CountRequests(http.MethodPost))
	})
}
