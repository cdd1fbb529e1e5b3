// Package tracking builds the summary issue that links every issue created in a run.
package tracking

import (
	"fmt"
	"strings"

	githubpkg "stackit.dev/seedissues/internal/github"
)

const (
	DefaultTitle = "Documentation overhaul (v0.2)"
	DefaultGoal  = "Improve first-run success, clarify privacy, align links/site."
	DefaultScope = "README, vignettes, pkgdown, function refs, CI badges, FAQ."
)

// Labels are attached to the tracking issue regardless of the manifest
var Labels = []string{githubpkg.DocsLabel, githubpkg.TrackingLabel}

// Options configure the tracking issue
type Options struct {
	Title string
	Goal  string
	Scope string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Goal == "" {
		o.Goal = DefaultGoal
	}
	if o.Scope == "" {
		o.Scope = DefaultScope
	}
	return o
}

// ChecklistLine formats one unchecked reference to a created issue
func ChecklistLine(record githubpkg.IssueRecord) string {
	return fmt.Sprintf("- [ ] #%d %s", record.Number, record.Title)
}

// Body returns the tracking issue body: Goal and Scope sections followed by a
// checklist with one line per created issue, in the order given.
func Body(opts Options, created []githubpkg.IssueRecord) string {
	opts = opts.withDefaults()

	lines := []string{
		fmt.Sprintf("Goal\n- %s\n", opts.Goal),
		fmt.Sprintf("Scope\n- %s\n", opts.Scope),
		"Checklist",
	}
	for _, c := range created {
		lines = append(lines, ChecklistLine(c))
	}
	return strings.Join(lines, "\n")
}

// Request returns the issue request for the tracking issue
func Request(opts Options, created []githubpkg.IssueRecord, milestone int) githubpkg.IssueRequest {
	opts = opts.withDefaults()
	labels := make([]string, len(Labels))
	copy(labels, Labels)

	return githubpkg.IssueRequest{
		Title:     opts.Title,
		Body:      Body(opts, created),
		Labels:    labels,
		Milestone: milestone,
	}
}
