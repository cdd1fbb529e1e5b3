package actions

import (
	"fmt"
	"strings"

	githubpkg "stackit.dev/seedissues/internal/github"
	"stackit.dev/seedissues/internal/manifest"
	"stackit.dev/seedissues/internal/notify"
	"stackit.dev/seedissues/internal/runtime"
	"stackit.dev/seedissues/internal/tracking"
)

// BootstrapOptions contains options for the bootstrap run
type BootstrapOptions struct {
	Entries []manifest.Entry
	// DryRun reads the repository but makes no create calls
	DryRun bool
	// Confirm, when set, is asked once before the first create call
	Confirm ConfirmFunc
}

// BootstrapResult describes what a run created
type BootstrapResult struct {
	Repository       string
	LabelsCreated    []string
	MilestoneNumber  int
	MilestoneCreated bool
	Issues           []githubpkg.IssueRecord
	Tracking         *githubpkg.IssueRecord
	Aborted          bool
}

// BootstrapAction syncs labels and the milestone, creates one issue per
// manifest entry and finally the tracking issue that links them all.
// A failure stops the run; anything created before it stays created.
func BootstrapAction(ctx *runtime.Context, opts BootstrapOptions) (*BootstrapResult, error) {
	cfg := ctx.Config
	client := ctx.GitHubClient
	splog := ctx.Splog
	gctx := ctx.Context

	result := &BootstrapResult{Repository: ctx.Repository()}
	required := manifest.RequiredLabels(opts.Entries, cfg.DefaultLabels)

	if opts.DryRun {
		return result, planBootstrap(ctx, opts, required)
	}

	if opts.Confirm != nil {
		ok, err := opts.Confirm(fmt.Sprintf("Create %d issues (+1 tracking) in %s?", len(opts.Entries), result.Repository))
		if err != nil {
			return nil, err
		}
		if !ok {
			splog.Info("Aborted.")
			result.Aborted = true
			return result, nil
		}
	}

	splog.Debug("Ensuring labels: %s", strings.Join(required, ", "))
	created, err := githubpkg.EnsureLabels(gctx, client, required)
	if err != nil {
		return nil, err
	}
	result.LabelsCreated = created
	for _, name := range created {
		splog.Debug("Created label %s", name)
	}

	number, milestoneCreated, err := githubpkg.EnsureMilestone(gctx, client, cfg.Milestone)
	if err != nil {
		return nil, err
	}
	result.MilestoneNumber = number
	result.MilestoneCreated = milestoneCreated
	splog.Debug("Using milestone #%d %q (created: %v)", number, cfg.Milestone, milestoneCreated)

	for _, entry := range opts.Entries {
		record, err := createIssue(ctx, githubpkg.IssueRequest{
			Title:     entry.Title,
			Body:      entry.Body,
			Labels:    entry.Labels,
			Milestone: number,
		})
		if err != nil {
			return nil, err
		}
		result.Issues = append(result.Issues, *record)
	}

	trackingRecord, err := createIssue(ctx, tracking.Request(cfg.TrackingOptions(), result.Issues, number))
	if err != nil {
		return nil, err
	}
	result.Tracking = trackingRecord

	styles := splog.Styles()
	splog.Newline()
	splog.Info(styles.Success.Render("All set."))
	splog.Info("Tracking issue: #%d", trackingRecord.Number)

	if ctx.Notifier != nil {
		err := ctx.Notifier.Notify(gctx, notify.Summary{
			Repository:     result.Repository,
			IssueCount:     len(result.Issues),
			TrackingNumber: trackingRecord.Number,
			TrackingURL:    trackingRecord.URL,
			TrackingTitle:  trackingRecord.Title,
		})
		if err != nil {
			splog.Warn("%v", err)
		}
	}

	return result, nil
}

func createIssue(ctx *runtime.Context, req githubpkg.IssueRequest) (*githubpkg.IssueRecord, error) {
	record, err := githubpkg.CreateIssue(ctx.Context, ctx.GitHubClient, req, ctx.Config.DefaultLabels)
	if err != nil {
		return nil, err
	}
	ctx.Splog.Info("Created issue #%d: %s", record.Number, record.URL)
	return record, nil
}

// planBootstrap prints what a run would create using only list calls
func planBootstrap(ctx *runtime.Context, opts BootstrapOptions, required []string) error {
	cfg := ctx.Config
	splog := ctx.Splog
	styles := splog.Styles()

	splog.Info(styles.Heading.Render(fmt.Sprintf("Dry run for %s, nothing will be created", ctx.Repository())))

	existing, err := ctx.GitHubClient.ListLabels(ctx.Context)
	if err != nil {
		return err
	}
	for _, name := range githubpkg.MissingLabels(existing, required) {
		splog.Info("Would create label %s (#%s)", name, githubpkg.LabelColor(name))
	}

	milestones, err := ctx.GitHubClient.ListMilestones(ctx.Context)
	if err != nil {
		return err
	}
	if m, ok := githubpkg.FindMilestone(milestones, cfg.Milestone); ok {
		splog.Info("Would use milestone #%d %q", m.Number, m.Title)
	} else {
		splog.Info("Would create milestone %q", cfg.Milestone)
	}

	// Placeholder numbers show where each issue lands in the checklist
	placeholders := make([]githubpkg.IssueRecord, 0, len(opts.Entries))
	for i, entry := range opts.Entries {
		labels := entry.LabelsOr(cfg.DefaultLabels)
		splog.Info("Would create issue %q [%s]", entry.Title, strings.Join(labels, ", "))
		placeholders = append(placeholders, githubpkg.IssueRecord{Number: i + 1, Title: entry.Title})
	}

	trackingOpts := cfg.TrackingOptions()
	splog.Info("Would create tracking issue %q [%s] with body:", trackingOpts.Title, strings.Join(tracking.Labels, ", "))
	splog.Page(tracking.Body(trackingOpts, placeholders) + "\n")
	return nil
}
