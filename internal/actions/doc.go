// Package actions provides the business logic behind the seed-issues command.
//
// BootstrapAction runs the whole pipeline against a runtime.Context: label
// and milestone synchronization, one issue per manifest entry, and the
// tracking issue that links them.
//
// Key patterns:
//   - Actions accept runtime.Context which provides the GitHub client, Splog and config
//   - Actions are stateless; nothing survives between runs
//   - User interaction goes through a ConfirmFunc so tests can answer for the user
package actions
