package runtime

import (
	"context"

	"stackit.dev/seedissues/internal/config"
	githubpkg "stackit.dev/seedissues/internal/github"
	"stackit.dev/seedissues/internal/notify"
	"stackit.dev/seedissues/internal/output"
)

// Context provides access to configuration, the API client and output for actions
type Context struct {
	Context      context.Context
	Config       *config.Config
	GitHubClient githubpkg.Client
	Splog        *output.Splog
	Notifier     notify.Notifier
	RepoRoot     string
}

// NewContext creates a new context. A nil splog writes to stdout and stderr.
func NewContext(ctx context.Context, cfg *config.Config, client githubpkg.Client, splog *output.Splog) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if splog == nil {
		splog = output.NewSplog()
	}
	return &Context{
		Context:      ctx,
		Config:       cfg,
		GitHubClient: client,
		Splog:        splog,
	}
}

// Repository returns the target repository as owner/repo
func (c *Context) Repository() string {
	owner, repo := c.GitHubClient.GetOwnerRepo()
	return owner + "/" + repo
}
