package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// fileDocument is the on-disk layout of a FileStore.
type fileDocument struct {
	Values    map[string]json.RawMessage `json:"values"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// FileStore is a Store backed by a JSON file. The file is read once when the
// store is opened and rewritten on every Set.
type FileStore struct {
	path string
	mu   sync.Mutex
	doc  fileDocument
}

// OpenFileStore loads the store at path. A missing or unreadable file yields
// an empty store; the file is created on the first Set.
func OpenFileStore(path string) *FileStore {
	fs := &FileStore{path: path}
	fs.doc = fs.load()
	return fs
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the raw JSON value stored under key.
func (s *FileStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.doc.Values[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

// Set stores value under key and rewrites the file. Value must be valid JSON.
// The in-memory value is kept even when the write fails.
func (s *FileStore) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v := make(json.RawMessage, len(value))
	copy(v, value)
	s.doc.Values[key] = v

	return s.save()
}

func (s *FileStore) load() fileDocument {
	now := time.Now()
	empty := fileDocument{
		Values:    make(map[string]json.RawMessage),
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.Warnf("Failed to read state file %s: %v", s.path, err)
		}
		return empty
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logrus.Warnf("Ignoring corrupt state file %s: %v", s.path, err)
		return empty
	}
	if doc.Values == nil {
		doc.Values = make(map[string]json.RawMessage)
	}
	return doc
}

// save writes the document to a temp file and renames it over the target so
// a crash never leaves a half-written file behind.
func (s *FileStore) save() error {
	s.doc.UpdatedAt = time.Now()
	if s.doc.CreatedAt.IsZero() {
		s.doc.CreatedAt = s.doc.UpdatedAt
	}

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write state: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
