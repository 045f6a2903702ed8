// Package jsonstore persists the entry and draft collections as two flat
// JSON documents under one data directory, and keeps the HTML archive
// snapshot beside them.
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ymori/labnote/internal/domain/entry"
)

const (
	entriesFile = "entries.json"
	draftsFile  = "drafts.json"
	archiveFile = "archive.html"
)

// ArchiveRenderer produces the HTML snapshot from both collections.
type ArchiveRenderer interface {
	Render(entries, drafts []entry.Entry) ([]byte, error)
}

// Store reads and rewrites the two JSON documents wholesale. Writes are
// plain truncate-writes; a crash mid-write can corrupt a document.
type Store struct {
	entriesPath string
	draftsPath  string
	archivePath string
	archive     ArchiveRenderer
	logger      *slog.Logger
}

// New creates a store rooted at dataDir, creating the directory if needed.
func New(dataDir string, archive ArchiveRenderer, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Store{
		entriesPath: filepath.Join(dataDir, entriesFile),
		draftsPath:  filepath.Join(dataDir, draftsFile),
		archivePath: filepath.Join(dataDir, archiveFile),
		archive:     archive,
		logger:      logger,
	}, nil
}

// ArchivePath returns the location of the HTML snapshot.
func (s *Store) ArchivePath() string {
	return s.archivePath
}

// Load reads both documents. On any read or parse failure both collections
// reset to empty; this is a fail-safe-to-empty policy, not data repair.
func (s *Store) Load(_ context.Context) (entries, drafts []entry.Entry) {
	var err error
	if entries, err = readDocument(s.entriesPath); err != nil {
		s.logger.Error("failed to load data, starting empty", "error", err)
		return nil, nil
	}
	if drafts, err = readDocument(s.draftsPath); err != nil {
		s.logger.Error("failed to load data, starting empty", "error", err)
		return nil, nil
	}
	return entries, drafts
}

// SaveEntries rewrites the completed-entries document, then regenerates the
// HTML archive from the union of both collections. Archive failures are
// logged but do not fail the save.
func (s *Store) SaveEntries(_ context.Context, entries, drafts []entry.Entry) error {
	if err := writeDocument(s.entriesPath, entries); err != nil {
		return fmt.Errorf("writing entries document: %w", err)
	}

	html, err := s.archive.Render(entries, drafts)
	if err != nil {
		s.logger.Error("failed to render archive", "error", err)
		return nil
	}
	if err := os.WriteFile(s.archivePath, html, 0o644); err != nil {
		s.logger.Error("failed to write archive", "error", err)
	}
	return nil
}

// SaveDrafts rewrites the drafts document. The archive is not rebuilt;
// drafts become visible there on the next entry commit.
func (s *Store) SaveDrafts(_ context.Context, drafts []entry.Entry) error {
	if err := writeDocument(s.draftsPath, drafts); err != nil {
		return fmt.Errorf("writing drafts document: %w", err)
	}
	return nil
}

func readDocument(path string) ([]entry.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var list []entry.Entry
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return list, nil
}

func writeDocument(path string, list []entry.Entry) error {
	if list == nil {
		list = []entry.Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
