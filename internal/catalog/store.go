// Package catalog persists database schemas as JSON documents, one file per
// database, named <database>.json inside the store directory.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileSuffix is the extension of every catalog document.
const FileSuffix = ".json"

const filePerm = 0o644

var (
	ErrMalformedDocument = errors.New("catalog: malformed document")
	ErrInvalidName       = errors.New("catalog: invalid database name")
)

// Store reads and writes catalog documents in a single directory.
// It holds no state between calls and does no locking: two processes
// writing the same document race, the last rename wins.
type Store struct {
	dir    string
	logger *slog.Logger
}

func NewStore(dir string, logger *slog.Logger) *Store {
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

func (s *Store) Dir() string { return s.dir }

// Path returns the document path for a database.
func (s *Store) Path(db string) string {
	return filepath.Join(s.dir, db+FileSuffix)
}

// Create writes an empty document for db, replacing whatever was there.
func (s *Store) Create(db string) error {
	if err := s.Save(db, Document{}); err != nil {
		return err
	}
	s.logger.Debug("catalog.created", "db", db, "path", s.Path(db))
	return nil
}

// Load reads the document for db. A missing or empty file is an empty
// document; it is not created. Only the top level has to be a JSON object,
// entries are kept as they were written.
func (s *Store) Load(db string) (Document, error) {
	if err := checkName(db); err != nil {
		return nil, err
	}

	path := s.Path(db)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, nil
		}
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedDocument, path, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Save rewrites the whole document for db as indented JSON.
func (s *Store) Save(db string, doc Document) error {
	if err := checkName(db); err != nil {
		return err
	}
	if doc == nil {
		doc = Document{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("catalog: encode %s: %w", db, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	path := s.Path(db)
	if err := writeFileAtomic(path, data, filePerm); err != nil {
		return fmt.Errorf("catalog: write %s: %w", path, err)
	}

	s.logger.Debug("catalog.saved",
		"db", db,
		"path", path,
		"tables", len(doc),
	)
	return nil
}

// List returns the names of all databases in the store directory, in
// directory listing order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("catalog: list %s: %w", s.dir, err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(e.Name(), FileSuffix)
		if !ok || name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func checkName(db string) error {
	if db == "" || db == "." || db == ".." || strings.ContainsAny(db, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, db)
	}
	return nil
}
