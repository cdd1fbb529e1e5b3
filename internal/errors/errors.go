// Package errors provides sentinel errors and custom error types for seed-issues.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

// Sentinel errors for unmet local preconditions
var (
	// ErrMissingToken indicates that the API token environment variable is unset or empty
	ErrMissingToken = errors.New("missing API token")

	// ErrRemoteUnresolved indicates that the git remote URL could not be read
	ErrRemoteUnresolved = errors.New("git remote unresolved")

	// ErrUnrecognizedRemote indicates that the remote URL is not a GitHub repository URL
	ErrUnrecognizedRemote = errors.New("unrecognized remote URL")

	// ErrManifestNotFound indicates that the manifest file does not exist
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrInvalidManifest indicates that the manifest could not be parsed
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrInvalidConfig indicates an unusable configuration value or file
	ErrInvalidConfig = errors.New("invalid configuration")
)

// PreconditionError is a local failure detected before or between API calls.
// Message is the diagnostic shown to the user as-is.
type PreconditionError struct {
	Kind    error
	Message string
	Err     error
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// Is matches the sentinel stored in Kind
func (e *PreconditionError) Is(target error) bool {
	return target == e.Kind
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// NewPreconditionError creates a new PreconditionError
func NewPreconditionError(kind error, message string) *PreconditionError {
	return &PreconditionError{Kind: kind, Message: message}
}

// WrapPreconditionError creates a PreconditionError carrying the underlying cause
func WrapPreconditionError(kind error, message string, err error) *PreconditionError {
	return &PreconditionError{Kind: kind, Message: message, Err: err}
}

// APIError represents a failed call to the GitHub REST API
type APIError struct {
	Op  string
	Err error
}

func (e *APIError) Error() string {
	if status := e.StatusCode(); status != 0 {
		return fmt.Sprintf("%s: %d %s: %v", e.Op, status, http.StatusText(status), e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status of the failed response, or 0 when the
// request never got a response (network failure, bad URL).
func (e *APIError) StatusCode() int {
	var ghErr *github.ErrorResponse
	if errors.As(e.Err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}
	return 0
}

// NewAPIError creates a new APIError
func NewAPIError(op string, err error) *APIError {
	return &APIError{Op: op, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
