// Package config assembles the seed-issues configuration once at startup.
//
// Values are layered: built-in defaults, then an optional TOML file
// (.seed-issues.toml at the repository root), then the environment
// (including a .env file), then command-line flags applied by the caller.
package config
