// Package git provides the local repository queries seed-issues needs.
//
// It wraps git command execution for reading the configured remote URL,
// parses that URL into a GitHub repository identity, and locates the
// repository root with go-git.
//
// This package should be the only place where git commands are executed.
package git
