package git

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	seederrors "stackit.dev/seedissues/internal/errors"
)

// DefaultRemote is the remote whose URL identifies the target repository
const DefaultRemote = "origin"

// DefaultHost is the public GitHub host
const DefaultHost = "github.com"

// RepoInfo contains parsed information from a git remote URL
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// FullName returns the "owner/repo" form used in API paths
func (r *RepoInfo) FullName() string {
	return r.Owner + "/" + r.Repo
}

// ParseRemoteURL parses a git remote URL and extracts owner and repo.
// Only two forms are accepted, both on the given host:
//   - https://host/owner/repo[.git] (http also accepted)
//   - git@host:owner/repo[.git]
func ParseRemoteURL(remoteURL, host string) (*RepoInfo, error) {
	if host == "" {
		host = DefaultHost
	}
	remoteURL = strings.TrimSpace(remoteURL)
	h := regexp.QuoteMeta(host)

	patterns := []*regexp.Regexp{
		regexp.MustCompile(`^https?://` + h + `/([^/]+)/([^/]+?)(?:\.git)?/?$`),
		regexp.MustCompile(`^git@` + h + `:([^/]+)/([^/]+?)(?:\.git)?$`),
	}
	for _, re := range patterns {
		if m := re.FindStringSubmatch(remoteURL); m != nil {
			return &RepoInfo{Hostname: host, Owner: m[1], Repo: m[2]}, nil
		}
	}

	return nil, seederrors.NewPreconditionError(seederrors.ErrUnrecognizedRemote,
		fmt.Sprintf("Unrecognized GitHub remote URL: %s", remoteURL))
}

// ParseFullName parses an explicit "owner/repo" value
func ParseFullName(fullName, host string) (*RepoInfo, error) {
	if host == "" {
		host = DefaultHost
	}
	parts := strings.Split(strings.TrimSpace(fullName), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, seederrors.NewPreconditionError(seederrors.ErrInvalidConfig,
			fmt.Sprintf("Invalid repository %q: expected owner/repo", fullName))
	}
	return &RepoInfo{Hostname: host, Owner: parts[0], Repo: parts[1]}, nil
}

// GetRemoteURL reads the configured URL of the named remote
func GetRemoteURL(ctx context.Context, runner Runner, remote string) (string, error) {
	if remote == "" {
		remote = DefaultRemote
	}
	key := fmt.Sprintf("remote.%s.url", remote)
	url, err := runner.Run(ctx, "config", "--get", key)
	if err != nil || url == "" {
		return "", seederrors.WrapPreconditionError(seederrors.ErrRemoteUnresolved,
			fmt.Sprintf("Unable to determine git %s", key), err)
	}
	return url, nil
}

// ResolveRepository reads the remote URL and parses it into a RepoInfo
func ResolveRepository(ctx context.Context, runner Runner, remote, host string) (*RepoInfo, error) {
	url, err := GetRemoteURL(ctx, runner, remote)
	if err != nil {
		return nil, err
	}
	return ParseRemoteURL(url, host)
}
