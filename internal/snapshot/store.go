package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store is a local SQLite cache of fetched source payloads, keyed by platform
// id. It lets a generation re-run offline against the last fetched data, and
// keeps the raw payloads around for reviewing what a document was built from.
//
// The store is advisory: generation works without it, and a failed snapshot
// write is a warning, not an abort.
type Store struct {
	db *sql.DB
}

// ErrNoSnapshot means the cache holds nothing for the requested platform.
var ErrNoSnapshot = errors.New("no snapshot for platform")

func Open(path string) (*Store, error) {
	p := filepath.Clean(strings.TrimSpace(path))
	if p == "" || p == "." {
		return nil, errors.New("missing snapshot db path")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			platform_id TEXT NOT NULL,
			platform_json BLOB NOT NULL,
			interfaces_json BLOB NOT NULL,
			created_at_unix_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_platform
			ON snapshots(platform_id, created_at_unix_ms);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Snapshot is one stored fetch: the raw platform and interface payloads as
// they came off the wire.
type Snapshot struct {
	RunID           string
	PlatformID      string
	Platform        []byte
	Interfaces      []byte
	CreatedAtUnixMs int64
}

// Save stores one fetched payload pair and returns the snapshot's run id.
func (s *Store) Save(ctx context.Context, platformID string, platform, interfaces []byte) (string, error) {
	if strings.TrimSpace(platformID) == "" {
		return "", errors.New("missing platform id")
	}
	runID := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (run_id, platform_id, platform_json, interfaces_json, created_at_unix_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		runID, platformID, platform, interfaces, time.Now().UnixMilli(),
	)
	if err != nil {
		return "", err
	}
	return runID, nil
}

// Latest returns the most recent snapshot for the platform, or ErrNoSnapshot.
func (s *Store) Latest(ctx context.Context, platformID string) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, platform_id, platform_json, interfaces_json, created_at_unix_ms
		 FROM snapshots
		 WHERE platform_id = ?
		 ORDER BY created_at_unix_ms DESC, id DESC
		 LIMIT 1`,
		platformID,
	)
	var snap Snapshot
	err := row.Scan(&snap.RunID, &snap.PlatformID, &snap.Platform, &snap.Interfaces, &snap.CreatedAtUnixMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
