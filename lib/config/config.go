// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ndp190/termfolio/lib/bookmark"
	"github.com/ndp190/termfolio/lib/tui"
	"github.com/ndp190/termfolio/lib/workspace"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "TERMFOLIO_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local authoring of the portfolio content.
	Development Environment = "development"
	// Production is for the published shell.
	Production Environment = "production"
)

// Config is the master configuration for termfolio.
type Config struct {
	// Environment identifies the deployment type (development, production).
	Environment Environment `yaml:"environment"`

	// Content configures where the browsable tree comes from.
	Content ContentConfig `yaml:"content"`

	// Shell configures the prompt and the profile commands print.
	Shell ShellConfig `yaml:"shell"`

	// Appearance selects the initial theme and language.
	Appearance AppearanceConfig `yaml:"appearance"`

	// Bookmarks configures the reading list.
	Bookmarks BookmarksConfig `yaml:"bookmarks"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Content    *ContentConfig    `yaml:"content,omitempty"`
	Shell      *ShellConfig      `yaml:"shell,omitempty"`
	Appearance *AppearanceConfig `yaml:"appearance,omitempty"`
	Bookmarks  *BookmarksConfig  `yaml:"bookmarks,omitempty"`
}

// ContentConfig configures the content tree.
type ContentConfig struct {
	// Dir is a directory of markdown files to serve. Empty means the
	// content compiled into the binary.
	Dir string `yaml:"dir"`

	// TranslationsDir holds one directory per language code mirroring
	// Dir. Empty means no translations beyond the built-in ones.
	TranslationsDir string `yaml:"translations_dir"`

	// RootName is the name of the tree's root directory.
	// Default: terminal
	RootName string `yaml:"root_name"`

	// Watch reloads the tree when files under Dir change.
	// Default: true (development), false (production)
	Watch bool `yaml:"watch"`
}

// ShellConfig configures the interactive shell.
type ShellConfig struct {
	// Prompt is shown before the input line.
	// Default: visitor@terminal.nikk:~$
	Prompt string `yaml:"prompt"`

	// InitialCommand runs once at startup. Empty runs nothing.
	// Default: welcome
	InitialCommand string `yaml:"initial_command"`

	// HomeDir is printed by pwd.
	HomeDir string `yaml:"home_dir"`

	// User is printed by whoami.
	User string `yaml:"user"`
}

// AppearanceConfig selects the initial theme and language.
type AppearanceConfig struct {
	// Theme is a theme name from the themes command.
	// Default: dark
	Theme string `yaml:"theme"`

	// Language is a language code from the language command.
	// Default: en
	Language string `yaml:"language"`
}

// BookmarksConfig configures where bookmarks come from.
type BookmarksConfig struct {
	// ManifestURL is the published manifest.
	ManifestURL string `yaml:"manifest_url"`

	// ContentBaseURL is the directory holding "<key>.json" documents.
	ContentBaseURL string `yaml:"content_base_url"`

	// APIBaseURL is the reading API. Empty disables progress and
	// annotations.
	APIBaseURL string `yaml:"api_base_url"`

	// ManifestFile is the local JSONC manifest managed by the
	// manifest command.
	ManifestFile string `yaml:"manifest_file"`

	// CacheDir holds fetched documents between runs. Empty disables
	// the disk cache.
	CacheDir string `yaml:"cache_dir"`

	// CacheMaxAge is how long a cached document is served without
	// refetching.
	// Default: 24h
	CacheMaxAge string `yaml:"cache_max_age"`

	// Timeout bounds each background fetch.
	// Default: 15s
	Timeout string `yaml:"timeout"`

	// S3 configures the bucket documents are read from and the
	// manifest is pushed to. Reads fall back to ContentBaseURL when
	// S3.Bucket is empty.
	S3 S3Config `yaml:"s3"`
}

// S3Config configures an S3-compatible bucket.
type S3Config struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// Default returns the default configuration. Unlike a daemon, the
// shell runs without any config file, so these values are complete.
func Default() *Config {
	cacheRoot, err := os.UserCacheDir()
	if err != nil {
		cacheRoot = filepath.Join(os.TempDir(), "cache")
	}

	return &Config{
		Environment: Production,
		Content: ContentConfig{
			RootName: "terminal",
		},
		Shell: ShellConfig{
			Prompt:         "visitor@terminal.nikk:~$",
			InitialCommand: "welcome",
			HomeDir:        "/home/nikk",
			User:           "visitor",
		},
		Appearance: AppearanceConfig{
			Theme:    tui.DefaultThemeName,
			Language: workspace.Languages[0].Code,
		},
		Bookmarks: BookmarksConfig{
			ManifestURL:    bookmark.DefaultManifestURL,
			ContentBaseURL: bookmark.DefaultContentBaseURL,
			ManifestFile:   "bookmarks.jsonc",
			CacheDir:       filepath.Join(cacheRoot, "termfolio", "bookmarks"),
			CacheMaxAge:    "24h",
			Timeout:        "15s",
			S3: S3Config{
				Region: "auto",
			},
		},
	}
}

// Load loads configuration from the file named by TERMFOLIO_CONFIG.
// When the variable is unset the defaults are returned.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// Environment variables never override config values. The only
// expansion performed is ${VAR} and ${VAR:-default} in path and
// credential fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Development defaults differ from production; apply them before
	// the file so explicit values still win.
	var probe struct {
		Environment Environment `yaml:"environment"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if probe.Environment == Development {
		c.Content.Watch = true
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.Content != nil {
		setString(&c.Content.Dir, overrides.Content.Dir)
		setString(&c.Content.TranslationsDir, overrides.Content.TranslationsDir)
		setString(&c.Content.RootName, overrides.Content.RootName)
		// Watch is a bool, so we always apply it from overrides.
		c.Content.Watch = overrides.Content.Watch
	}

	if overrides.Shell != nil {
		setString(&c.Shell.Prompt, overrides.Shell.Prompt)
		setString(&c.Shell.InitialCommand, overrides.Shell.InitialCommand)
		setString(&c.Shell.HomeDir, overrides.Shell.HomeDir)
		setString(&c.Shell.User, overrides.Shell.User)
	}

	if overrides.Appearance != nil {
		setString(&c.Appearance.Theme, overrides.Appearance.Theme)
		setString(&c.Appearance.Language, overrides.Appearance.Language)
	}

	if overrides.Bookmarks != nil {
		bookmarks := overrides.Bookmarks
		setString(&c.Bookmarks.ManifestURL, bookmarks.ManifestURL)
		setString(&c.Bookmarks.ContentBaseURL, bookmarks.ContentBaseURL)
		setString(&c.Bookmarks.APIBaseURL, bookmarks.APIBaseURL)
		setString(&c.Bookmarks.ManifestFile, bookmarks.ManifestFile)
		setString(&c.Bookmarks.CacheDir, bookmarks.CacheDir)
		setString(&c.Bookmarks.CacheMaxAge, bookmarks.CacheMaxAge)
		setString(&c.Bookmarks.Timeout, bookmarks.Timeout)
		setString(&c.Bookmarks.S3.Endpoint, bookmarks.S3.Endpoint)
		setString(&c.Bookmarks.S3.Region, bookmarks.S3.Region)
		setString(&c.Bookmarks.S3.Bucket, bookmarks.S3.Bucket)
		setString(&c.Bookmarks.S3.Prefix, bookmarks.S3.Prefix)
		setString(&c.Bookmarks.S3.AccessKeyID, bookmarks.S3.AccessKeyID)
		setString(&c.Bookmarks.S3.SecretAccessKey, bookmarks.S3.SecretAccessKey)
	}
}

func setString(target *string, value string) {
	if value != "" {
		*target = value
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// and credential fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Content.Dir = expandVars(c.Content.Dir, vars)
	c.Content.TranslationsDir = expandVars(c.Content.TranslationsDir, vars)
	c.Bookmarks.ManifestFile = expandVars(c.Bookmarks.ManifestFile, vars)
	c.Bookmarks.CacheDir = expandVars(c.Bookmarks.CacheDir, vars)
	c.Bookmarks.APIBaseURL = expandVars(c.Bookmarks.APIBaseURL, vars)
	c.Bookmarks.S3.Endpoint = expandVars(c.Bookmarks.S3.Endpoint, vars)
	c.Bookmarks.S3.AccessKeyID = expandVars(c.Bookmarks.S3.AccessKeyID, vars)
	c.Bookmarks.S3.SecretAccessKey = expandVars(c.Bookmarks.S3.SecretAccessKey, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Content.RootName == "" {
		errs = append(errs, fmt.Errorf("content.root_name is required"))
	}
	if c.Content.Watch && c.Content.Dir == "" {
		errs = append(errs, fmt.Errorf("content.watch requires content.dir"))
	}

	if c.Shell.Prompt == "" {
		errs = append(errs, fmt.Errorf("shell.prompt is required"))
	}

	if _, ok := tui.LookupTheme(c.Appearance.Theme); !ok {
		errs = append(errs, fmt.Errorf("appearance.theme must be one of: %v", tui.ThemeNames()))
	}
	if !workspace.IsLanguage(c.Appearance.Language) {
		errs = append(errs, fmt.Errorf("appearance.language %q is not supported", c.Appearance.Language))
	}

	if c.Bookmarks.ManifestURL == "" {
		errs = append(errs, fmt.Errorf("bookmarks.manifest_url is required"))
	}
	if c.Bookmarks.ContentBaseURL == "" && c.Bookmarks.S3.Bucket == "" {
		errs = append(errs, fmt.Errorf("bookmarks.content_base_url or bookmarks.s3.bucket is required"))
	}
	if _, err := parsePositiveDuration(c.Bookmarks.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("bookmarks.timeout: %w", err))
	}
	if _, err := parsePositiveDuration(c.Bookmarks.CacheMaxAge); err != nil {
		errs = append(errs, fmt.Errorf("bookmarks.cache_max_age: %w", err))
	}
	s3 := c.Bookmarks.S3
	if s3.Bucket != "" && (s3.AccessKeyID == "") != (s3.SecretAccessKey == "") {
		errs = append(errs, fmt.Errorf("bookmarks.s3 needs both access_key_id and secret_access_key, or neither"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func parsePositiveDuration(value string) (time.Duration, error) {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if duration <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", value)
	}
	return duration, nil
}

// FetchTimeout returns the parsed bookmarks.timeout. Call after
// Validate.
func (c *Config) FetchTimeout() time.Duration {
	duration, _ := parsePositiveDuration(c.Bookmarks.Timeout)
	return duration
}

// CacheMaxAge returns the parsed bookmarks.cache_max_age. Call after
// Validate.
func (c *Config) CacheMaxAge() time.Duration {
	duration, _ := parsePositiveDuration(c.Bookmarks.CacheMaxAge)
	return duration
}

// BookmarkS3 returns the bucket settings in the form the bookmark
// client takes, and whether a bucket is configured.
func (c *Config) BookmarkS3() (bookmark.S3Config, bool) {
	s3 := c.Bookmarks.S3
	return bookmark.S3Config{
		Endpoint:        s3.Endpoint,
		Region:          s3.Region,
		Bucket:          s3.Bucket,
		Prefix:          s3.Prefix,
		AccessKeyID:     s3.AccessKeyID,
		SecretAccessKey: s3.SecretAccessKey,
	}, s3.Bucket != ""
}

// EnsurePaths creates the configured cache directory.
func (c *Config) EnsurePaths() error {
	if c.Bookmarks.CacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.Bookmarks.CacheDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", c.Bookmarks.CacheDir, err)
	}
	return nil
}
