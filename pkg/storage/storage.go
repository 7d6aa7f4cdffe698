// Package storage persists records as individual JSON files.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sternrassler/bdr-collector/pkg/record"
)

const (
	// DefaultDir is the default output directory.
	DefaultDir = "./metadata"

	// Extension is appended to the local id to form the file name.
	Extension = ".json"

	indent = "    "
)

// FileStore writes one file per record under Dir.
type FileStore struct {
	dir string
}

// New creates a FileStore rooted at dir, creating the directory if needed.
func New(dir string) (*FileStore, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the output directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file path a record is stored at.
func (s *FileStore) Path(rec record.Record) (string, error) {
	localID, err := rec.LocalID()
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, localID+Extension), nil
}

// Save writes rec as indented JSON to <dir>/<local-id>.json and returns the path.
// An existing file is overwritten.
func (s *FileStore) Save(rec record.Record) (string, error) {
	path, err := s.Path(rec)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	// MarshalJSON directly; json.Marshal would HTML-escape the source text.
	data, err := rec.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("encode record %s: %w", rec.PID(), err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", indent); err != nil {
		return "", fmt.Errorf("indent record %s: %w", rec.PID(), err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}
