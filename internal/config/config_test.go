package config

import (
	"strings"
	"testing"
	"time"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("LEANIX_GRAPHQL_URL", "https://acme.leanix.net/services/pathfinder/v1/graphql")
	t.Setenv("LEANIX_API_TOKEN", "secret")
	t.Setenv("LEANIX_PLATFORM_ID", "plat-1")

	cfg := FromEnv()
	if cfg.GraphQLURL != "https://acme.leanix.net/services/pathfinder/v1/graphql" {
		t.Fatalf("graphql url = %q", cfg.GraphQLURL)
	}
	if cfg.APIToken != "secret" || cfg.PlatformID != "plat-1" {
		t.Fatalf("env fields not picked up: %+v", cfg)
	}
	if cfg.Output != DefaultOutput {
		t.Fatalf("output = %q, want default", cfg.Output)
	}
	if cfg.WorkspaceName != DefaultWorkspaceName || cfg.WorkspaceDescription != DefaultWorkspaceDescription {
		t.Fatalf("workspace defaults not applied: %+v", cfg)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}
	if cfg.SnapshotDB == "" {
		t.Fatalf("snapshot db default missing")
	}
}

func TestValidateFetch(t *testing.T) {
	t.Parallel()

	base := Config{
		GraphQLURL: "https://acme.leanix.net/services/pathfinder/v1/graphql",
		APIToken:   "secret",
	}
	if err := base.ValidateFetch(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg := base
	cfg.GraphQLURL = ""
	if err := cfg.ValidateFetch(); err == nil || !strings.Contains(err.Error(), "LEANIX_GRAPHQL_URL") {
		t.Fatalf("err = %v, want missing url naming the variable", err)
	}

	cfg = base
	cfg.GraphQLURL = "not a url"
	if err := cfg.ValidateFetch(); err == nil {
		t.Fatalf("expected error for invalid url")
	}

	cfg = base
	cfg.APIToken = "  "
	if err := cfg.ValidateFetch(); err == nil || !strings.Contains(err.Error(), "LEANIX_API_TOKEN") {
		t.Fatalf("err = %v, want missing token naming the variable", err)
	}
}

func TestValidatePlatform(t *testing.T) {
	t.Parallel()

	if err := (Config{PlatformID: "plat-1"}).ValidatePlatform(); err != nil {
		t.Fatalf("valid platform rejected: %v", err)
	}
	if err := (Config{}).ValidatePlatform(); err == nil {
		t.Fatalf("expected error for missing platform id")
	}
}

func TestDefaultSnapshotPath(t *testing.T) {
	t.Parallel()

	p := DefaultSnapshotPath()
	if !strings.HasSuffix(p, "snapshots.sqlite") {
		t.Fatalf("path = %q", p)
	}
}
