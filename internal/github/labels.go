package github

import (
	"context"
	"sort"
)

const (
	// DocsLabel is the default documentation label
	DocsLabel = "docs"
	// TrackingLabel marks the tracking issue
	TrackingLabel = "tracking"

	docsLabelColor    = "1f883d"
	defaultLabelColor = "0e8a16"
)

// LabelColor returns the color a missing label is created with
func LabelColor(name string) string {
	if name == DocsLabel {
		return docsLabelColor
	}
	return defaultLabelColor
}

// MissingLabels returns the required names absent from existing, sorted
func MissingLabels(existing []Label, required []string) []string {
	have := make(map[string]struct{}, len(existing))
	for _, l := range existing {
		have[l.Name] = struct{}{}
	}

	seen := make(map[string]struct{}, len(required))
	var missing []string
	for _, name := range required {
		if _, ok := have[name]; ok {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}

// EnsureLabels fetches the existing labels once and creates every required
// label that is missing. It returns the names it created.
func EnsureLabels(ctx context.Context, client Client, required []string) ([]string, error) {
	existing, err := client.ListLabels(ctx)
	if err != nil {
		return nil, err
	}

	missing := MissingLabels(existing, required)
	for _, name := range missing {
		if err := client.CreateLabel(ctx, Label{Name: name, Color: LabelColor(name)}); err != nil {
			return nil, err
		}
	}
	return missing, nil
}
