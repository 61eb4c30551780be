package views

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps every counter in one JSON object file that is rewritten on
// each increment. Writers in the same process are serialized; separate
// processes sharing the file can still overwrite each other.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Backend() string { return "file" }

func (s *FileStore) Get(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts, err := s.load()
	if err != nil {
		return 0, err
	}
	return counts[key], nil
}

func (s *FileStore) Increment(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts, err := s.load()
	if err != nil {
		return 0, err
	}
	counts[key]++
	if err := s.save(counts); err != nil {
		return 0, err
	}
	return counts[key], nil
}

func (s *FileStore) All(_ context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (map[string]int64, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]int64{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	counts := map[string]int64{}
	if len(raw) == 0 {
		return counts, nil
	}
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return counts, nil
}

func (s *FileStore) save(counts map[string]int64) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create views dir: %w", err)
	}
	raw, err := json.MarshalIndent(counts, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".views-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
