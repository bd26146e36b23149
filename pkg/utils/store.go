// =============================================================================
// Dynamic Tables - Document Store
// =============================================================================
//
// This module is the persistence collaborator of the enclosing document. The
// engine mutates tables in memory; after every mutation the caller hands the
// document to a DocumentStore.
//
// FEATURES:
//   - YAML documents, one file per document
//   - Atomic saves: written to a uniquely named temp file, then renamed
//   - Optional backup of the previous version on every save
//
// =============================================================================

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

// =============================================================================
// DOCUMENT STORE
// =============================================================================

// DocumentStore loads and saves YAML documents.
type DocumentStore struct {
	// BackupDir receives a timestamped copy of the previous document on each
	// save. Empty disables backups.
	BackupDir string
}

// NewDocumentStore creates a DocumentStore.
func NewDocumentStore(backupDir string) *DocumentStore {
	return &DocumentStore{BackupDir: backupDir}
}

// Load reads the document at path. A missing file yields an empty document.
func (s *DocumentStore) Load(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return types.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	// A plain map keeps nested mappings as map[string]any instead of
	// types.Document.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if raw == nil {
		return types.Document{}, nil
	}
	return types.Document(raw), nil
}

// Save writes doc to path atomically.
//
// RETURNS:
//   - An error if the document cannot be encoded or written. The previous
//     file is left intact on failure.
func (s *DocumentStore) Save(path string, doc types.Document) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if s.BackupDir != "" && FileExists(path) {
		if err := s.backup(path); err != nil {
			return err
		}
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace document: %w", err)
	}
	return nil
}

// PersistTable stores table under tableKey in the document at path. This is
// the hook callers invoke after each engine mutation.
func (s *DocumentStore) PersistTable(path string, doc types.Document, tableKey string, table types.Table) error {
	doc[tableKey] = table
	return s.Save(path, doc)
}

// backup copies the current document into BackupDir with a timestamp suffix.
func (s *DocumentStore) backup(path string) error {
	if err := os.MkdirAll(s.BackupDir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	ext := filepath.Ext(path)
	base := filepath.Base(path)
	name := fmt.Sprintf("%s_%s%s", base[:len(base)-len(ext)], time.Now().Format("20060102_150405.000000"), ext)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document for backup: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.BackupDir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
