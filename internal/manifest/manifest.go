// Package manifest loads the declarative list of issues to create.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	seederrors "stackit.dev/seedissues/internal/errors"
)

// DefaultPath is the manifest location relative to the repository root
const DefaultPath = "scripts/issues_manifest.json"

// Entry describes one issue to create
type Entry struct {
	Title  string   `json:"title" yaml:"title"`
	Body   string   `json:"body,omitempty" yaml:"body,omitempty"`
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// LabelsOr returns the entry's labels, or defaults when it has none
func (e Entry) LabelsOr(defaults []string) []string {
	if len(e.Labels) == 0 {
		return defaults
	}
	return e.Labels
}

// Load reads a manifest file. The format is chosen by extension: .yaml and
// .yml are YAML, anything else is JSON.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, seederrors.WrapPreconditionError(seederrors.ErrManifestNotFound,
				fmt.Sprintf("Manifest not found: %s", path), err)
		}
		return nil, seederrors.WrapPreconditionError(seederrors.ErrInvalidManifest,
			fmt.Sprintf("Failed to read manifest %s: %v", path, err), err)
	}

	entries, err := Parse(data, formatFor(path))
	if err != nil {
		return nil, seederrors.WrapPreconditionError(seederrors.ErrInvalidManifest,
			fmt.Sprintf("Invalid manifest %s: %v", path, err), err)
	}
	return entries, nil
}

// Format is a manifest encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes manifest bytes in the given format. Every entry must have a title.
func Parse(data []byte, format Format) ([]Entry, error) {
	var entries []Entry
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &entries)
	default:
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, err
	}

	for i, e := range entries {
		if strings.TrimSpace(e.Title) == "" {
			return nil, fmt.Errorf("entry %d has no title", i)
		}
	}
	return entries, nil
}

// RequiredLabels returns the union of defaults and every entry's explicit
// labels, sorted by name.
func RequiredLabels(entries []Entry, defaults []string) []string {
	set := make(map[string]struct{})
	for _, l := range defaults {
		set[l] = struct{}{}
	}
	for _, e := range entries {
		for _, l := range e.Labels {
			set[l] = struct{}{}
		}
	}

	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
