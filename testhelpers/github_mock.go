package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v62/github"

	githubpkg "stackit.dev/seedissues/internal/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// Labels are the labels that exist on the repository
	Labels []*github.Label
	// Milestones are the milestones that exist on the repository, in any state
	Milestones []*github.Milestone
	// CreatedLabels stores labels that were created (for testing)
	CreatedLabels []*github.Label
	// CreatedMilestones stores milestones that were created (for testing)
	CreatedMilestones []*github.Milestone
	// CreatedIssues stores the issue requests that were accepted (for testing)
	CreatedIssues []*github.IssueRequest
	// ErrorResponses maps "METHOD endpoint" (e.g. "POST issues") to a status code to fail with
	ErrorResponses map[string]int
	// Requests records every request as "METHOD path?query"
	Requests []string
	// Owner and Repo for the mock server
	Owner string
	Repo  string
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Labels:            make([]*github.Label, 0),
		Milestones:        make([]*github.Milestone, 0),
		CreatedLabels:     make([]*github.Label, 0),
		CreatedMilestones: make([]*github.Milestone, 0),
		CreatedIssues:     make([]*github.IssueRequest, 0),
		ErrorResponses:    make(map[string]int),
		Owner:             "owner",
		Repo:              "repo",
	}
}

// WithLabels adds existing labels to the config
func (c *MockGitHubServerConfig) WithLabels(names ...string) *MockGitHubServerConfig {
	for _, name := range names {
		c.Labels = append(c.Labels, &github.Label{Name: github.String(name), Color: github.String("ededed")})
	}
	return c
}

// WithMilestone adds an existing milestone to the config
func (c *MockGitHubServerConfig) WithMilestone(title string, number int, state string) *MockGitHubServerConfig {
	c.Milestones = append(c.Milestones, &github.Milestone{
		Title:  github.String(title),
		Number: github.Int(number),
		State:  github.String(state),
	})
	return c
}

// CountRequests returns how many recorded requests used method
func (c *MockGitHubServerConfig) CountRequests(method string) int {
	n := 0
	for _, r := range c.Requests {
		if len(r) > len(method) && r[:len(method)+1] == method+" " {
			n++
		}
	}
	return n
}

// NewMockGitHubServer creates an httptest server that mocks the labels,
// milestones and issues endpoints of one repository
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	mux := http.NewServeMux()
	basePath := "/repos/" + config.Owner + "/" + config.Repo + "/"

	// failWith writes a GitHub style error when the endpoint is configured to fail
	failWith := func(w http.ResponseWriter, r *http.Request, endpoint string) bool {
		status, ok := config.ErrorResponses[r.Method+" "+endpoint]
		if !ok {
			return false
		}
		writeJSON(w, status, map[string]interface{}{"message": http.StatusText(status)})
		return true
	}

	record := func(r *http.Request) {
		entry := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			entry += "?" + r.URL.RawQuery
		}
		config.Requests = append(config.Requests, entry)
	}

	mux.HandleFunc(basePath+"labels", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if failWith(w, r, "labels") {
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, config.Labels)
		case http.MethodPost:
			var label github.Label
			if err := json.NewDecoder(r.Body).Decode(&label); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			for _, existing := range config.Labels {
				if existing.GetName() == label.GetName() {
					writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"message": "Validation Failed"})
					return
				}
			}
			config.Labels = append(config.Labels, &label)
			config.CreatedLabels = append(config.CreatedLabels, &label)
			writeJSON(w, http.StatusCreated, label)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc(basePath+"milestones", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if failWith(w, r, "milestones") {
			return
		}
		switch r.Method {
		case http.MethodGet:
			state := r.URL.Query().Get("state")
			if state == "" {
				state = "open"
			}
			var result []*github.Milestone
			for _, m := range config.Milestones {
				if state == "all" || m.GetState() == state {
					result = append(result, m)
				}
			}
			if result == nil {
				result = []*github.Milestone{}
			}
			writeJSON(w, http.StatusOK, result)
		case http.MethodPost:
			var m github.Milestone
			if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			m.Number = github.Int(len(config.Milestones) + 1)
			m.State = github.String("open")
			config.Milestones = append(config.Milestones, &m)
			config.CreatedMilestones = append(config.CreatedMilestones, &m)
			writeJSON(w, http.StatusCreated, m)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc(basePath+"issues", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if failWith(w, r, "issues") {
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req github.IssueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		config.CreatedIssues = append(config.CreatedIssues, &req)

		// Issue numbers start past the milestones so the two are never confused in assertions
		number := 100 + len(config.CreatedIssues)
		issue := &github.Issue{
			Number:  github.Int(number),
			Title:   req.Title,
			Body:    req.Body,
			HTMLURL: github.String(fmt.Sprintf("https://github.com/%s/%s/issues/%d", config.Owner, config.Repo, number)),
		}
		writeJSON(w, http.StatusCreated, issue)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		http.Error(w, fmt.Sprintf("Unhandled path: %s (method: %s)", r.URL.Path, r.Method), http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(func() { server.Close() })
	return server
}

// NewMockGitHubClient creates a go-github client configured to use a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) (*github.Client, string, string) {
	server := NewMockGitHubServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return client, config.Owner, config.Repo
}

// NewMockClient creates a githubpkg.Client backed by a mock server
func NewMockClient(t *testing.T, config *MockGitHubServerConfig) *githubpkg.RealClient {
	client, owner, repo := NewMockGitHubClient(t, config)
	return githubpkg.NewRealClientWithGitHub(client, owner, repo)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
