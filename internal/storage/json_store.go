package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore keeps all keys in a single JSON document on disk. It loads
// lazily on first access and rewrites the whole file on every Set, which is
// fine at personal-tracker scale and keeps the file hand-inspectable.
type JSONStore struct {
	path   string
	loaded bool
	data   map[string]string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) load() error {
	if s.loaded {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]string)
			s.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.data = make(map[string]string)
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	s.loaded = true
	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	if err := s.load(); err != nil {
		return "", false, err
	}
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	if err := s.load(); err != nil {
		return err
	}
	s.data[key] = value
	return s.save()
}

func (s *JSONStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}
