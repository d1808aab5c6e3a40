// Package store implements the JSON file backend for playbook documents.
// This file provides atomic load/save/initialize over a single document.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/playbook/pkg/types"
)

// DocumentFileName is the playbook document file inside the data directory.
const DocumentFileName = "playbook.json"

// Store persists a playbook document as indented JSON at a fixed path.
// It implements types.Store.
type Store struct {
	path string
}

// New returns a Store for the document inside dataDir.
func New(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, DocumentFileName)}
}

// Path returns the document file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the document. A missing file returns an empty
// default document together with types.ErrNotFound. Unparseable or invalid
// content returns types.ErrCorruptDocument; the file is never repaired.
func (s *Store) Load() (*types.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.NewDocument(), types.ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrCorruptDocument, s.path, err)
	}
	if doc.Patterns == nil {
		doc.Patterns = []types.Pattern{}
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrCorruptDocument, s.path, err)
	}
	return &doc, nil
}

// Save writes the document atomically using the temp-file, fsync, rename
// pattern. UpdatedAt is refreshed before writing. A crash before the rename
// leaves the previous document intact.
func (s *Store) Save(doc *types.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	if doc.Patterns == nil {
		doc.Patterns = []types.Pattern{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".playbook-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Initialize creates a new document populated with the given seed patterns.
// Returns types.ErrAlreadyExists if a document exists and force is false.
func (s *Store) Initialize(seed []types.Pattern, force bool) (*types.Document, error) {
	if _, err := os.Stat(s.path); err == nil && !force {
		return nil, fmt.Errorf("%w: %s (use force to overwrite)", types.ErrAlreadyExists, s.path)
	} else if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat %s: %w", s.path, err)
	}

	doc := types.NewDocument()
	doc.Patterns = append(doc.Patterns, seed...)
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if err := s.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
