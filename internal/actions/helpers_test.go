package actions_test

import (
	"context"
	"errors"

	githubpkg "stackit.dev/seedissues/internal/github"
)

// failAfter lets a number of CreateIssue calls through and fails the rest
type failAfter struct {
	githubpkg.Client
	issuesBeforeFailure int
	issues              int
}

func (f *failAfter) CreateIssue(ctx context.Context, req githubpkg.IssueRequest) (*githubpkg.IssueRecord, error) {
	if f.issues >= f.issuesBeforeFailure {
		return nil, errors.New("connection reset")
	}
	f.issues++
	return f.Client.CreateIssue(ctx, req)
}
