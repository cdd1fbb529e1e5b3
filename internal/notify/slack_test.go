package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"stackit.dev/seedissues/internal/notify"
)

func TestSlackNotifier(t *testing.T) {
	summary := notify.Summary{
		Repository:     "acme/docs",
		IssueCount:     3,
		TrackingNumber: 104,
		TrackingURL:    "https://github.com/acme/docs/issues/104",
		TrackingTitle:  "Documentation overhaul (v0.2)",
	}

	t.Run("posts the summary", func(t *testing.T) {
		var got map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(server.Close)

		n := notify.NewSlackNotifier(server.URL)
		require.NoError(t, n.Notify(context.Background(), summary))
		require.Equal(t, notify.Message(summary), got["text"])
	})

	t.Run("a failed post is returned", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(server.Close)

		err := notify.NewSlackNotifier(server.URL).Notify(context.Background(), summary)
		require.Error(t, err)
	})

	t.Run("no webhook means no notifier", func(t *testing.T) {
		require.Nil(t, notify.NewSlackNotifier(""))
	})
}

func TestMessage(t *testing.T) {
	msg := notify.Message(notify.Summary{
		Repository:     "acme/docs",
		IssueCount:     1,
		TrackingNumber: 2,
		TrackingURL:    "https://github.com/acme/docs/issues/2",
		TrackingTitle:  "Docs",
	})
	require.Equal(t, "Created 1 issues in *acme/docs*. Tracking issue: <https://github.com/acme/docs/issues/2|#2 Docs>", msg)
}
