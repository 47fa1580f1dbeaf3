// Package store owns the canonical dataset file on disk: memoized loads
// keyed by file content, and validated atomic replacement.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tdpulse/internal/dataset"
	"tdpulse/internal/errors"
)

// Store serializes access to the dataset file. The parsed table is
// memoized by the sha256 of the file bytes, so a load of an unchanged
// file is a cache hit and a replaced file is always re-read. The memo is
// invalidated explicitly on replacement, never by a timer.
type Store struct {
	path   string
	logger *slog.Logger

	mu       sync.Mutex
	cached   *dataset.Table
	cacheKey string
	loadedAt time.Time
}

// New creates a store for the dataset file at path.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", "dataset_store")),
	}
}

// Load returns the canonical table for the current dataset file. An
// absent file yields an empty table with no error. The returned table is
// shared; callers must treat it as immutable.
func (s *Store) Load(ctx context.Context) (*dataset.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.InfoContext(ctx, "dataset file absent, serving empty table",
				slog.String("path", s.path))
			return dataset.NewTable(), nil
		}
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	key := contentKey(data)
	if s.cached != nil && s.cacheKey == key {
		s.logger.DebugContext(ctx, "dataset cache hit", slog.String("content_hash", key))
		return s.cached, nil
	}

	table, err := dataset.Parse(data)
	if err != nil {
		return nil, err
	}

	s.cached = table
	s.cacheKey = key
	s.loadedAt = time.Now()
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", s.path),
		slog.String("content_hash", key),
		slog.Int("rows", table.Len()))
	return table, nil
}

// Replace validates a candidate dataset and atomically swaps it in. On
// any rejection the previous file and memo are left untouched. The file
// is persisted as UTF-8 regardless of the upload's encoding, and the
// memo is invalidated so the next Load re-reads it.
func (s *Store) Replace(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read uploaded dataset: %w", err)
	}

	decoded, encName, err := dataset.Decode(data)
	if err != nil {
		return 0, err
	}
	table, err := dataset.Parse(decoded)
	if err != nil {
		return 0, err
	}
	if table.Len() == 0 {
		return 0, errors.ErrDatasetEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeAtomic(s.path, decoded); err != nil {
		return 0, err
	}

	s.cached = nil
	s.cacheKey = ""
	s.logger.InfoContext(ctx, "dataset replaced",
		slog.String("path", s.path),
		slog.String("source_encoding", encName),
		slog.Int("rows", table.Len()))
	return table.Len(), nil
}

// Invalidate drops the memoized table so the next Load re-reads the file.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.cacheKey = ""
}

// Status describes the current dataset for the status endpoint.
type Status struct {
	Path        string    `json:"path"`
	Exists      bool      `json:"exists"`
	Rows        int       `json:"rows"`
	ContentHash string    `json:"content_hash,omitempty"`
	LoadedAt    time.Time `json:"loaded_at,omitempty"`
}

// Describe reports the dataset file state, loading it if necessary.
func (s *Store) Describe(ctx context.Context) (Status, error) {
	table, err := s.Load(ctx)
	if err != nil {
		return Status{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Path:        s.path,
		Exists:      s.cached != nil,
		Rows:        table.Len(),
		ContentHash: s.cacheKey,
		LoadedAt:    s.loadedAt,
	}, nil
}

func contentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// writeAtomic writes via a temp file and rename so a crashed upload can
// never leave a half-written dataset behind.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".dataset-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace dataset file: %w", err)
	}
	return nil
}
