package github

import "context"

// CreateIssue creates one issue attached to req.Milestone. When req.Labels is
// empty the default labels are used instead.
func CreateIssue(ctx context.Context, client Client, req IssueRequest, defaultLabels []string) (*IssueRecord, error) {
	if len(req.Labels) == 0 {
		req.Labels = defaultLabels
	}

	record, err := client.CreateIssue(ctx, req)
	if err != nil {
		return nil, err
	}
	if record.Title == "" {
		record.Title = req.Title
	}
	return record, nil
}
