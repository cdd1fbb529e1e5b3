// Package runtime provides the execution context for seed-issues actions.
//
// It carries the dependencies assembled once at startup: the resolved
// configuration, the GitHub client, output, and the optional notifier.
package runtime
