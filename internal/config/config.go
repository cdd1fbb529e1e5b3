package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	seederrors "stackit.dev/seedissues/internal/errors"
	"stackit.dev/seedissues/internal/git"
	"stackit.dev/seedissues/internal/manifest"
	"stackit.dev/seedissues/internal/tracking"
)

const (
	// FileName is the optional config file looked up at the repository root
	FileName = ".seed-issues.toml"
	// DefaultTokenEnv is the environment variable holding the API token
	DefaultTokenEnv = "GH_TOKEN"
	// DefaultMilestone is the milestone every created issue is attached to
	DefaultMilestone = "v0.2 Docs polish"

	envSlackWebhook = "SEED_ISSUES_SLACK_WEBHOOK"
	envLogFile      = "SEED_ISSUES_LOG_FILE"
)

// TrackingConfig configures the tracking issue
type TrackingConfig struct {
	Title string `toml:"title"`
	Goal  string `toml:"goal"`
	Scope string `toml:"scope"`
}

// Config is the complete run configuration
type Config struct {
	TokenEnv        string         `toml:"token_env"`
	Remote          string         `toml:"remote"`
	Host            string         `toml:"host"`
	APIURL          string         `toml:"api_url"`
	Repository      string         `toml:"repository"`
	Manifest        string         `toml:"manifest"`
	Milestone       string         `toml:"milestone"`
	DefaultLabels   []string       `toml:"default_labels"`
	Tracking        TrackingConfig `toml:"tracking"`
	SlackWebhookURL string         `toml:"slack_webhook_url"`
	LogFile         string         `toml:"log_file"`

	// Token is never read from a file
	Token string `toml:"-"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		TokenEnv:      DefaultTokenEnv,
		Remote:        git.DefaultRemote,
		Host:          git.DefaultHost,
		Manifest:      manifest.DefaultPath,
		Milestone:     DefaultMilestone,
		DefaultLabels: []string{"docs"},
		Tracking: TrackingConfig{
			Title: tracking.DefaultTitle,
			Goal:  tracking.DefaultGoal,
			Scope: tracking.DefaultScope,
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path. When
// required is false a missing file is not an error.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, seederrors.WrapPreconditionError(seederrors.ErrInvalidConfig,
			fmt.Sprintf("Failed to read config %s: %v", path, err), err)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, seederrors.WrapPreconditionError(seederrors.ErrInvalidConfig,
			fmt.Sprintf("Invalid config %s: %v", path, err), err)
	}
	return merge(cfg, &file), nil
}

// merge overlays every non-empty value of override onto base
func merge(base, override *Config) *Config {
	result := *base
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&result.TokenEnv, override.TokenEnv)
	setString(&result.Remote, override.Remote)
	setString(&result.Host, override.Host)
	setString(&result.APIURL, override.APIURL)
	setString(&result.Repository, override.Repository)
	setString(&result.Manifest, override.Manifest)
	setString(&result.Milestone, override.Milestone)
	setString(&result.Tracking.Title, override.Tracking.Title)
	setString(&result.Tracking.Goal, override.Tracking.Goal)
	setString(&result.Tracking.Scope, override.Tracking.Scope)
	setString(&result.SlackWebhookURL, override.SlackWebhookURL)
	setString(&result.LogFile, override.LogFile)
	if len(override.DefaultLabels) > 0 {
		result.DefaultLabels = append([]string(nil), override.DefaultLabels...)
	}
	return &result
}

// LoadDotEnv loads dir/.env into the process environment if it exists.
// Variables that are already set are left untouched.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil //nolint:nilerr // no .env is the common case
	}
	if err := godotenv.Load(path); err != nil {
		return seederrors.WrapPreconditionError(seederrors.ErrInvalidConfig,
			fmt.Sprintf("Failed to load %s: %v", path, err), err)
	}
	return nil
}

// ApplyEnv overlays environment settings onto the config
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(envSlackWebhook); v != "" {
		c.SlackWebhookURL = v
	}
	if v := getenv(envLogFile); v != "" {
		c.LogFile = v
	}
}

// ResolveToken reads the API token from the configured environment variable
func (c *Config) ResolveToken(getenv func(string) string) error {
	name := c.TokenEnv
	if name == "" {
		name = DefaultTokenEnv
	}
	token := strings.TrimSpace(getenv(name))
	if token == "" {
		return seederrors.NewPreconditionError(seederrors.ErrMissingToken,
			fmt.Sprintf("%s env var is required. Export a GitHub token with repo scope.", name))
	}
	c.Token = token
	return nil
}

// ManifestPath resolves the manifest path against root unless it is absolute
func (c *Config) ManifestPath(root string) string {
	if filepath.IsAbs(c.Manifest) {
		return c.Manifest
	}
	return filepath.Join(root, c.Manifest)
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Milestone) == "" {
		return seederrors.NewPreconditionError(seederrors.ErrInvalidConfig, "Milestone title must not be empty")
	}
	if len(c.DefaultLabels) == 0 {
		return seederrors.NewPreconditionError(seederrors.ErrInvalidConfig, "At least one default label is required")
	}
	return nil
}

// TrackingOptions returns the tracking issue options
func (c *Config) TrackingOptions() tracking.Options {
	return tracking.Options{
		Title: c.Tracking.Title,
		Goal:  c.Tracking.Goal,
		Scope: c.Tracking.Scope,
	}
}
