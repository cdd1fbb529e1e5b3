package github

import "context"

// FindMilestone returns the first milestone whose title equals title exactly
func FindMilestone(milestones []Milestone, title string) (*Milestone, bool) {
	for i := range milestones {
		if milestones[i].Title == title {
			return &milestones[i], true
		}
	}
	return nil, false
}

// EnsureMilestone returns the number of the milestone titled title, creating
// it when no milestone in any state has that title.
func EnsureMilestone(ctx context.Context, client Client, title string) (number int, created bool, err error) {
	milestones, err := client.ListMilestones(ctx)
	if err != nil {
		return 0, false, err
	}
	if m, ok := FindMilestone(milestones, title); ok {
		return m.Number, false, nil
	}

	m, err := client.CreateMilestone(ctx, title)
	if err != nil {
		return 0, false, err
	}
	return m.Number, true, nil
}
