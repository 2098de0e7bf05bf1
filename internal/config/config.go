package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults mirror the baseline workspace the generator was built for. All of
// them can be overridden per run.
const (
	DefaultWorkspaceName        = "Channel 4 Core"
	DefaultWorkspaceDescription = "Base Line Model - Generated from LeanIX"
	DefaultOutput               = "dsl/c4-core-workspace.dsl"

	DefaultThemeURL = "https://raw.githubusercontent.com/synchrotron/c4c4/main/assets/c4-default-theme.json"
	DefaultLogoURL  = "https://raw.githubusercontent.com/synchrotron/c4c4/main/assets/4-logo-black.png"
	DefaultFontName = "4Text"
	DefaultFontURL  = "https://raw.githubusercontent.com/synchrotron/c4c4/main/assets/4Text-Regular.ttf"
)

const defaultTimeout = 30 * time.Second

// Config is the resolved configuration of one generator invocation.
//
// NOTE: APIToken is a secret; it is only ever read from the environment,
// never from flags, so it cannot end up in shell history.
type Config struct {
	GraphQLURL string
	APIToken   string
	PlatformID string

	Output               string
	WorkspaceName        string
	WorkspaceDescription string
	ThemeURL             string
	LogoURL              string
	FontName             string
	FontURL              string

	SnapshotDB string
	Timeout    time.Duration
}

// FromEnv builds the configuration from the environment, applying defaults.
// A .env file in the working directory is loaded first when present, which is
// how the workspace token is usually provisioned.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		GraphQLURL:           os.Getenv("LEANIX_GRAPHQL_URL"),
		APIToken:             os.Getenv("LEANIX_API_TOKEN"),
		PlatformID:           os.Getenv("LEANIX_PLATFORM_ID"),
		Output:               DefaultOutput,
		WorkspaceName:        DefaultWorkspaceName,
		WorkspaceDescription: DefaultWorkspaceDescription,
		ThemeURL:             DefaultThemeURL,
		LogoURL:              DefaultLogoURL,
		FontName:             DefaultFontName,
		FontURL:              DefaultFontURL,
		SnapshotDB:           DefaultSnapshotPath(),
		Timeout:              defaultTimeout,
	}
}

// ValidateFetch checks the fields required to reach the metadata source.
func (c Config) ValidateFetch() error {
	if strings.TrimSpace(c.GraphQLURL) == "" {
		return errors.New("missing graphql url (set LEANIX_GRAPHQL_URL)")
	}
	if u, err := url.Parse(c.GraphQLURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid graphql url %q", c.GraphQLURL)
	}
	if strings.TrimSpace(c.APIToken) == "" {
		return errors.New("missing api token (set LEANIX_API_TOKEN)")
	}
	return nil
}

// ValidatePlatform checks that a platform id was supplied.
func (c Config) ValidatePlatform() error {
	if strings.TrimSpace(c.PlatformID) == "" {
		return errors.New("missing platform id (set LEANIX_PLATFORM_ID or pass -platform)")
	}
	return nil
}

// DefaultSnapshotPath returns the default snapshot cache location:
//
//	~/.c4gen/snapshots.sqlite
func DefaultSnapshotPath() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "c4gen-snapshots.sqlite"
	}
	return filepath.Join(home, ".c4gen", "snapshots.sqlite")
}
