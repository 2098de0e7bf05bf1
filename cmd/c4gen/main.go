package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/synchrotron/c4c4/internal/config"
	"github.com/synchrotron/c4c4/internal/dsl"
	"github.com/synchrotron/c4c4/internal/leanix"
	"github.com/synchrotron/c4c4/internal/mapper"
	"github.com/synchrotron/c4c4/internal/model"
	"github.com/synchrotron/c4c4/internal/snapshot"
	"github.com/synchrotron/c4c4/internal/staticmodel"
)

var (
	// Version is set via -ldflags at build time.
	Version = "dev"
	// Commit is set via -ldflags at build time.
	Commit = "unknown"
	// BuildTime is set via -ldflags at build time.
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "generate":
		generateCmd(os.Args[2:])
	case "static":
		staticCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	case "version":
		fmt.Printf("c4gen %s (%s) %s\n", Version, Commit, BuildTime)
	default:
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `c4gen

Usage:
  c4gen generate [flags]
  c4gen static [flags]
  c4gen check [flags]
  c4gen version

Commands:
  generate    Fetch a platform from the metadata repository and write its workspace DSL.
  static      Render the authored baseline model (or a YAML model file) to workspace DSL.
  check       Verify connectivity and credentials against the metadata repository.
  version     Print build information.

`)
}

func generateCmd(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfg := config.FromEnv()

	platform := fs.String("platform", cfg.PlatformID, "Platform fact sheet id")
	out := fs.String("out", cfg.Output, "Output DSL file path")
	workspaceName := fs.String("workspace-name", cfg.WorkspaceName, "Workspace name")
	workspaceDesc := fs.String("workspace-description", cfg.WorkspaceDescription, "Workspace description")
	offline := fs.Bool("offline", false, "Render from the latest local snapshot instead of fetching")
	saveSnapshot := fs.Bool("snapshot", false, "Store the fetched payloads in the local snapshot cache")
	snapshotDB := fs.String("snapshot-db", cfg.SnapshotDB, "Snapshot cache path")
	timeout := fs.Duration("timeout", cfg.Timeout, "Fetch timeout")
	logFormat := fs.String("log-format", "text", "Log format: json|text")
	logLevel := fs.String("log-level", "info", "Log level: debug|info|warn|error")
	_ = fs.Parse(args)

	cfg.PlatformID = *platform
	cfg.Output = *out
	cfg.WorkspaceName = *workspaceName
	cfg.WorkspaceDescription = *workspaceDesc
	cfg.SnapshotDB = *snapshotDB
	cfg.Timeout = *timeout

	log, err := newLogger(*logFormat, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	if err := runGenerate(cfg, *offline, *saveSnapshot, log); err != nil {
		log.Error("generation failed", "err", err)
		os.Exit(1)
	}
}

func runGenerate(cfg config.Config, offline, saveSnapshot bool, log *slog.Logger) error {
	if err := cfg.ValidatePlatform(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	var platformRaw, interfacesRaw []byte
	if offline {
		store, err := snapshot.Open(cfg.SnapshotDB)
		if err != nil {
			return fmt.Errorf("open snapshot cache: %w", err)
		}
		defer func() { _ = store.Close() }()

		snap, err := store.Latest(ctx, cfg.PlatformID)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		log.Info("rendering from snapshot", "run_id", snap.RunID, "fetched_at", time.UnixMilli(snap.CreatedAtUnixMs).Format(time.RFC3339))
		platformRaw, interfacesRaw = snap.Platform, snap.Interfaces
	} else {
		if err := cfg.ValidateFetch(); err != nil {
			return err
		}
		client, err := leanix.New(ctx, leanix.Options{
			GraphQLURL: cfg.GraphQLURL,
			APIToken:   cfg.APIToken,
			Timeout:    cfg.Timeout,
		})
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}

		log.Info("fetching platform", "platform_id", cfg.PlatformID)
		platformRaw, err = client.FetchPlatform(ctx, cfg.PlatformID)
		if err != nil {
			return fmt.Errorf("fetch platform: %w", err)
		}
		log.Info("fetching interfaces")
		interfacesRaw, err = client.FetchInterfaces(ctx)
		if err != nil {
			return fmt.Errorf("fetch interfaces: %w", err)
		}

		if saveSnapshot {
			// Best effort: a broken cache must not block generation.
			if err := storeSnapshot(ctx, cfg, platformRaw, interfacesRaw, log); err != nil {
				log.Warn("snapshot not stored", "err", err)
			}
		}
	}

	platformRec, err := leanix.DecodePlatform(platformRaw)
	if err != nil {
		return err
	}
	integrations, err := leanix.DecodeInterfaces(interfacesRaw)
	if err != nil {
		return err
	}

	run := mapper.NewRun()
	m, err := mapper.MapPlatform(run, platformRec, integrations)
	if err != nil {
		return err
	}

	if err := writeDocument(m, cfg, log); err != nil {
		return err
	}
	reportDiagnostics(run)
	return nil
}

func storeSnapshot(ctx context.Context, cfg config.Config, platformRaw, interfacesRaw []byte, log *slog.Logger) error {
	store, err := snapshot.Open(cfg.SnapshotDB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runID, err := store.Save(ctx, cfg.PlatformID, platformRaw, interfacesRaw)
	if err != nil {
		return err
	}
	log.Info("snapshot stored", "run_id", runID, "path", cfg.SnapshotDB)
	return nil
}

func staticCmd(args []string) {
	fs := flag.NewFlagSet("static", flag.ExitOnError)
	cfg := config.FromEnv()

	modelPath := fs.String("model", "", "YAML model file (default: built-in baseline model)")
	out := fs.String("out", cfg.Output, "Output DSL file path")
	logFormat := fs.String("log-format", "text", "Log format: json|text")
	logLevel := fs.String("log-level", "info", "Log level: debug|info|warn|error")
	_ = fs.Parse(args)

	cfg.Output = *out

	log, err := newLogger(*logFormat, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	if err := runStatic(cfg, *modelPath, log); err != nil {
		log.Error("generation failed", "err", err)
		os.Exit(1)
	}
}

func runStatic(cfg config.Config, modelPath string, log *slog.Logger) error {
	var def staticmodel.Definition
	var err error
	if strings.TrimSpace(modelPath) == "" {
		def, err = staticmodel.Default()
	} else {
		def, err = staticmodel.Load(modelPath)
	}
	if err != nil {
		return err
	}

	cfg.WorkspaceName = def.Workspace.Name
	if def.Workspace.Description != "" {
		cfg.WorkspaceDescription = def.Workspace.Description
	}

	run := mapper.NewRun()
	m, err := staticmodel.Build(run, def)
	if err != nil {
		return err
	}

	if err := writeDocument(m, cfg, log); err != nil {
		return err
	}
	reportDiagnostics(run)
	return nil
}

func writeDocument(m *model.Model, cfg config.Config, log *slog.Logger) error {
	doc := dsl.Assemble(m, dsl.Options{
		WorkspaceName:        cfg.WorkspaceName,
		WorkspaceDescription: cfg.WorkspaceDescription,
		ThemeURL:             cfg.ThemeURL,
		LogoURL:              cfg.LogoURL,
		FontName:             cfg.FontName,
		FontURL:              cfg.FontURL,
	})
	if err := dsl.WriteFile(cfg.Output, doc); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	log.Info("workspace written",
		"path", cfg.Output,
		"teams", len(m.Teams),
		"applications", m.Applications(),
		"relationships", m.Relationships(),
	)
	return nil
}

// reportDiagnostics prints the run's accumulated warnings to stderr, after
// the document is on disk, with separators when stderr is a terminal.
func reportDiagnostics(run *mapper.Run) {
	if !run.HasDiagnostics() {
		return
	}
	decorated := term.IsTerminal(int(os.Stderr.Fd()))
	if decorated {
		fmt.Fprintln(os.Stderr, strings.Repeat("-", 70))
	}
	run.Report(os.Stderr)
	if decorated {
		fmt.Fprintln(os.Stderr, strings.Repeat("-", 70))
	}
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	cfg := config.FromEnv()

	timeout := fs.Duration("timeout", cfg.Timeout, "Request timeout")
	_ = fs.Parse(args)
	cfg.Timeout = *timeout

	if err := runCheck(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "check failed: %v\n", err)
		os.Exit(1)
	}
}

func runCheck(cfg config.Config) error {
	if err := cfg.ValidateFetch(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client, err := leanix.New(ctx, leanix.Options{
		GraphQLURL: cfg.GraphQLURL,
		APIToken:   cfg.APIToken,
		Timeout:    cfg.Timeout,
	})
	if err != nil {
		return err
	}
	count, err := client.Ping(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Connected. Applications in workspace: %d\n", count)
	return nil
}

// --- logger ---

func newLogger(format string, level string) (*slog.Logger, error) {
	var h slog.Handler

	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		lvl = slog.LevelInfo
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level: %s", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		h = slog.NewTextHandler(os.Stdout, opts)
	case "json":
		h = slog.NewJSONHandler(os.Stdout, opts)
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}

	return slog.New(h), nil
}
