// Package github provides the GitHub API operations used to seed issues.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	seederrors "stackit.dev/seedissues/internal/errors"
)

// UserAgent identifies seed-issues to the GitHub API
const UserAgent = "seed-issues"

// listPageSize is the largest page the REST API serves. Only the first page is read.
const listPageSize = 100

// Label is a repository label
type Label struct {
	Name  string
	Color string
}

// Milestone is a repository milestone
type Milestone struct {
	Title  string
	Number int
	State  string
}

// IssueRequest contains the fields of an issue to create
type IssueRequest struct {
	Title     string
	Body      string
	Labels    []string
	Milestone int
}

// IssueRecord is a created issue
// This is a simplified struct to avoid coupling to go-github library
type IssueRecord struct {
	Number int
	Title  string
	URL    string
}

// Client is an interface for the GitHub API calls seed-issues makes
type Client interface {
	// ListLabels returns the repository's labels
	ListLabels(ctx context.Context) ([]Label, error)

	// CreateLabel creates a label
	CreateLabel(ctx context.Context, label Label) error

	// ListMilestones returns milestones in any state
	ListMilestones(ctx context.Context) ([]Milestone, error)

	// CreateMilestone creates an open milestone and returns it
	CreateMilestone(ctx context.Context, title string) (*Milestone, error)

	// CreateIssue creates an issue
	CreateIssue(ctx context.Context, req IssueRequest) (*IssueRecord, error)

	// GetOwnerRepo returns the repository owner and name
	GetOwnerRepo() (owner, repo string)
}

// RealClient implements Client using the real GitHub API
type RealClient struct {
	client *github.Client
	owner  string
	repo   string
}

// NewRealClient creates a RealClient authenticating with token against the
// API of hostname. Hosts other than github.com are treated as GitHub Enterprise.
func NewRealClient(ctx context.Context, hostname, token, owner, repo string) (*RealClient, error) {
	client, err := createGitHubClient(ctx, hostname, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return NewRealClientWithGitHub(client, owner, repo), nil
}

// NewRealClientWithGitHub wraps an already configured go-github client
func NewRealClientWithGitHub(client *github.Client, owner, repo string) *RealClient {
	return &RealClient{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

// createGitHubClient creates a GitHub client configured for the given hostname
// Supports both github.com and GitHub Enterprise instances
func createGitHubClient(ctx context.Context, hostname, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)
	client.UserAgent = UserAgent

	if hostname != "" && hostname != "github.com" {
		// REST API: https://hostname/api/v3/
		// Upload API: https://hostname/api/uploads/
		baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
		}
		uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
		}

		client.BaseURL = baseURL
		client.UploadURL = uploadURL
	}

	return client, nil
}

// SetBaseURL points the client at a different API endpoint
func (c *RealClient) SetBaseURL(apiURL string) error {
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	u, err := url.Parse(apiURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", apiURL, err)
	}
	c.client.BaseURL = u
	return nil
}

// BaseURL returns the API endpoint requests are sent to
func (c *RealClient) BaseURL() string {
	return c.client.BaseURL.String()
}

// GetOwnerRepo returns the repository owner and name
func (c *RealClient) GetOwnerRepo() (string, string) {
	return c.owner, c.repo
}

// ListLabels returns the repository's labels
func (c *RealClient) ListLabels(ctx context.Context) ([]Label, error) {
	labels, _, err := c.client.Issues.ListLabels(ctx, c.owner, c.repo, &github.ListOptions{PerPage: listPageSize})
	if err != nil {
		return nil, seederrors.NewAPIError("list labels", err)
	}

	result := make([]Label, 0, len(labels))
	for _, l := range labels {
		result = append(result, Label{Name: l.GetName(), Color: l.GetColor()})
	}
	return result, nil
}

// CreateLabel creates a label
func (c *RealClient) CreateLabel(ctx context.Context, label Label) error {
	_, _, err := c.client.Issues.CreateLabel(ctx, c.owner, c.repo, &github.Label{
		Name:  github.String(label.Name),
		Color: github.String(label.Color),
	})
	if err != nil {
		return seederrors.NewAPIError(fmt.Sprintf("create label %q", label.Name), err)
	}
	return nil
}

// ListMilestones returns milestones in any state
func (c *RealClient) ListMilestones(ctx context.Context) ([]Milestone, error) {
	milestones, _, err := c.client.Issues.ListMilestones(ctx, c.owner, c.repo, &github.MilestoneListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: listPageSize},
	})
	if err != nil {
		return nil, seederrors.NewAPIError("list milestones", err)
	}

	result := make([]Milestone, 0, len(milestones))
	for _, m := range milestones {
		result = append(result, Milestone{Title: m.GetTitle(), Number: m.GetNumber(), State: m.GetState()})
	}
	return result, nil
}

// CreateMilestone creates an open milestone and returns it
func (c *RealClient) CreateMilestone(ctx context.Context, title string) (*Milestone, error) {
	m, _, err := c.client.Issues.CreateMilestone(ctx, c.owner, c.repo, &github.Milestone{
		Title: github.String(title),
	})
	if err != nil {
		return nil, seederrors.NewAPIError(fmt.Sprintf("create milestone %q", title), err)
	}
	return &Milestone{Title: m.GetTitle(), Number: m.GetNumber(), State: m.GetState()}, nil
}

// CreateIssue creates an issue
func (c *RealClient) CreateIssue(ctx context.Context, req IssueRequest) (*IssueRecord, error) {
	labels := req.Labels
	if labels == nil {
		labels = []string{}
	}
	issue, _, err := c.client.Issues.Create(ctx, c.owner, c.repo, &github.IssueRequest{
		Title:     github.String(req.Title),
		Body:      github.String(req.Body),
		Labels:    &labels,
		Milestone: github.Int(req.Milestone),
	})
	if err != nil {
		return nil, seederrors.NewAPIError(fmt.Sprintf("create issue %q", req.Title), err)
	}

	return &IssueRecord{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		URL:    issue.GetHTMLURL(),
	}, nil
}
