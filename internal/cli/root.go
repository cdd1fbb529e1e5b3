// Package cli wires the seed-issues command line to the bootstrap action.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stackit.dev/seedissues/internal/actions"
	"stackit.dev/seedissues/internal/config"
	"stackit.dev/seedissues/internal/git"
	githubpkg "stackit.dev/seedissues/internal/github"
	"stackit.dev/seedissues/internal/manifest"
	"stackit.dev/seedissues/internal/notify"
	"stackit.dev/seedissues/internal/output"
	"stackit.dev/seedissues/internal/runtime"
)

// rootFlags holds the command line flags. Only flags the user set override
// the config file and environment.
type rootFlags struct {
	configPath    string
	manifest      string
	milestone     string
	repository    string
	remote        string
	host          string
	apiURL        string
	tokenEnv      string
	labels        []string
	trackingTitle string
	logFile       string
	slackWebhook  string
	dryRun        bool
	yes           bool
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	f := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "seed-issues",
		Short: "Create labels, a milestone and issues from a manifest, plus a tracking issue",
		Long: `seed-issues bootstraps a batch of GitHub issues from a manifest file.

It makes sure every label the manifest uses exists, finds or creates the
milestone, creates one issue per manifest entry and finally a tracking issue
whose checklist links them all.

The target repository is read from the origin remote and the API token from
the GH_TOKEN environment variable. Re-running creates the issues again.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "Path to a TOML config file (default: <repo root>/"+config.FileName+")")
	flags.StringVarP(&f.manifest, "manifest", "m", "", "Path to the issues manifest, .json or .yaml (default: <repo root>/"+manifest.DefaultPath+")")
	flags.StringVar(&f.milestone, "milestone", "", "Milestone title to attach every issue to")
	flags.StringVar(&f.repository, "repo", "", "Target repository as owner/repo instead of reading the git remote")
	flags.StringVar(&f.remote, "remote", "", "Git remote that identifies the repository")
	flags.StringVar(&f.host, "host", "", "GitHub host; anything but github.com is treated as GitHub Enterprise")
	flags.StringVar(&f.apiURL, "api-url", "", "Override the REST API base URL")
	flags.StringVar(&f.tokenEnv, "token-env", "", "Environment variable holding the API token")
	flags.StringSliceVarP(&f.labels, "label", "l", nil, "Default labels for entries without labels (repeatable)")
	flags.StringVar(&f.trackingTitle, "tracking-title", "", "Title of the tracking issue")
	flags.StringVar(&f.logFile, "log-file", "", "Also write a debug log to this file")
	flags.StringVar(&f.slackWebhook, "slack-webhook", "", "Slack incoming webhook to announce the tracking issue")
	flags.BoolVar(&f.dryRun, "dry-run", false, "Show what would be created without creating anything")
	flags.BoolVarP(&f.yes, "yes", "y", false, "Do not ask for confirmation")

	return rootCmd
}

// apply overlays the flags the user set onto cfg
func (f *rootFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("manifest", &cfg.Manifest, f.manifest)
	set("milestone", &cfg.Milestone, f.milestone)
	set("repo", &cfg.Repository, f.repository)
	set("remote", &cfg.Remote, f.remote)
	set("host", &cfg.Host, f.host)
	set("api-url", &cfg.APIURL, f.apiURL)
	set("token-env", &cfg.TokenEnv, f.tokenEnv)
	set("tracking-title", &cfg.Tracking.Title, f.trackingTitle)
	set("log-file", &cfg.LogFile, f.logFile)
	set("slack-webhook", &cfg.SlackWebhookURL, f.slackWebhook)
	if cmd.Flags().Changed("label") {
		cfg.DefaultLabels = f.labels
	}
}

// loadConfig assembles the configuration: defaults, config file, .env and
// environment, then flags.
func loadConfig(cmd *cobra.Command, f *rootFlags, workDir, repoRoot string) (*config.Config, error) {
	if err := config.LoadDotEnv(workDir); err != nil {
		return nil, err
	}

	path, required := f.configPath, true
	if path == "" {
		path, required = filepath.Join(repoRoot, config.FileName), false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv(os.Getenv)
	f.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, f *rootFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	repoRoot, err := git.GetRepoRoot(workDir)
	if err != nil {
		// Outside a repository paths resolve against the working directory
		repoRoot = workDir
	}

	cfg, err := loadConfig(cmd, f, workDir, repoRoot)
	if err != nil {
		return err
	}

	// Preconditions are checked in order, all before the first API call
	if err := cfg.ResolveToken(os.Getenv); err != nil {
		return err
	}

	var repoInfo *git.RepoInfo
	if cfg.Repository != "" {
		repoInfo, err = git.ParseFullName(cfg.Repository, cfg.Host)
	} else {
		repoInfo, err = git.ResolveRepository(ctx, git.NewCommandRunner(workDir), cfg.Remote, cfg.Host)
	}
	if err != nil {
		return err
	}

	entries, err := manifest.Load(cfg.ManifestPath(repoRoot))
	if err != nil {
		return err
	}

	splog, err := output.NewSplogWithConfig(output.Options{
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
		LogFile: cfg.LogFile,
		Debug:   os.Getenv("DEBUG") != "",
	})
	if err != nil {
		return err
	}
	defer func() { _ = splog.Close() }()

	client, err := githubpkg.NewRealClient(ctx, repoInfo.Hostname, cfg.Token, repoInfo.Owner, repoInfo.Repo)
	if err != nil {
		return err
	}
	if cfg.APIURL != "" {
		if err := client.SetBaseURL(cfg.APIURL); err != nil {
			return err
		}
	}
	splog.Debug("Seeding %d issues into %s via %s", len(entries), repoInfo.FullName(), client.BaseURL())

	rc := runtime.NewContext(ctx, cfg, client, splog)
	rc.RepoRoot = repoRoot
	if n := notify.NewSlackNotifier(cfg.SlackWebhookURL); n != nil {
		rc.Notifier = n
	}

	opts := actions.BootstrapOptions{
		Entries: entries,
		DryRun:  f.dryRun,
	}
	if !f.yes && !f.dryRun && output.IsInteractive() {
		opts.Confirm = actions.SurveyConfirm
	}

	_, err = actions.BootstrapAction(rc, opts)
	return err
}
