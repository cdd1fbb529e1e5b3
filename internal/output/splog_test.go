package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stackit.dev/seedissues/internal/output"
)

func TestSplog(t *testing.T) {
	t.Run("info goes to out, warnings and errors to err", func(t *testing.T) {
		var out, errOut bytes.Buffer
		splog, err := output.NewSplogWithConfig(output.Options{Out: &out, Err: &errOut})
		require.NoError(t, err)

		splog.Info("Created issue #%d: %s", 7, "https://github.com/acme/docs/issues/7")
		splog.Warn("slow")
		splog.Error("boom")

		require.Equal(t, "Created issue #7: https://github.com/acme/docs/issues/7\n", out.String())
		require.Contains(t, errOut.String(), "slow")
		require.Contains(t, errOut.String(), "boom\n")
	})

	t.Run("messages without args are not formatted", func(t *testing.T) {
		var out bytes.Buffer
		splog, err := output.NewSplogWithConfig(output.Options{Out: &out, Err: &out})
		require.NoError(t, err)

		splog.Info("100% done")
		require.Equal(t, "100% done\n", out.String())
	})

	t.Run("debug only in debug mode", func(t *testing.T) {
		var out bytes.Buffer
		splog, err := output.NewSplogWithConfig(output.Options{Out: &out, Err: &out})
		require.NoError(t, err)
		splog.Debug("hidden")
		require.Empty(t, out.String())

		splog, err = output.NewSplogWithConfig(output.Options{Out: &out, Err: &out, Debug: true})
		require.NoError(t, err)
		splog.Debug("shown")
		require.Equal(t, "shown\n", out.String())
	})

	t.Run("file logging records debug messages", func(t *testing.T) {
		var out bytes.Buffer
		logFile := filepath.Join(t.TempDir(), "logs", "seed-issues.log")
		splog, err := output.NewSplogWithConfig(output.Options{Out: &out, Err: &out, LogFile: logFile})
		require.NoError(t, err)

		splog.Debug("listing labels")
		splog.Info("Created issue #1: url")
		require.NoError(t, splog.Close())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		require.Contains(t, string(data), "listing labels")
		require.Contains(t, string(data), "Created issue #1: url")
		require.NotContains(t, out.String(), "listing labels")
	})
}

func TestStylesWithoutTerminal(t *testing.T) {
	var out bytes.Buffer
	styles := output.NewStyles(&out)

	require.Equal(t, "All set.", styles.Success.Render("All set."))
	require.False(t, output.IsTerminal(&out))
}
