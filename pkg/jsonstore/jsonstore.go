// Package jsonstore persists a slice of values as a single JSON array file.
//
// Writes go to a temporary file in the target directory, are synced, and are
// renamed over the target so readers never observe a partial document.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ErrEmptyPath is returned when a store is created without a file path.
var ErrEmptyPath = errors.New("jsonstore: empty path")

// Store guards one JSON array file. Load takes a shared lock; Update and
// Replace hold the exclusive lock for their whole critical section.
type Store[T any] struct {
	path string
	mu   sync.RWMutex
}

// New returns a store backed by path. The file need not exist yet.
func New[T any](path string) (*Store[T], error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	return &Store[T]{path: path}, nil
}

// Path returns the backing file path.
func (s *Store[T]) Path() string {
	return s.path
}

// Exists reports whether the backing file is present.
func (s *Store[T]) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads every item. A missing file yields an empty slice.
func (s *Store[T]) Load() ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read()
}

// Update loads the items, applies fn and saves the result atomically.
// Nothing is written when fn returns an error.
func (s *Store[T]) Update(fn func(items []T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}

	items, err = fn(items)
	if err != nil {
		return err
	}

	return WriteJSON(s.path, items)
}

// Replace overwrites the file with items.
func (s *Store[T]) Replace(items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WriteJSON(s.path, items)
}

func (s *Store[T]) read() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Stage encodes items to a synced temp file beside the store without
// touching the live file. Commit swaps it in under the store's write lock.
func (s *Store[T]) Stage(items []T) (*Staged, error) {
	staged, err := StageJSON(s.path, items)
	if err != nil {
		return nil, err
	}
	staged.mu = &s.mu
	return staged, nil
}

// WriteJSON atomically replaces path with the indented JSON encoding of v.
func WriteJSON(path string, v any) error {
	staged, err := StageJSON(path, v)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// WriteFile atomically replaces path with data, creating parent directories.
func WriteFile(path string, data []byte) error {
	staged, err := StageFile(path, data)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// Staged is a written and synced temp file waiting to replace its target.
// Exactly one of Commit or Discard takes effect; later calls are no-ops.
type Staged struct {
	path string
	tmp  string
	mu   *sync.RWMutex
}

// StageJSON stages the indented JSON encoding of v for path.
func StageJSON(path string, v any) (*Staged, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode %s: %w", path, err)
	}
	return StageFile(path, buf.Bytes())
}

// StageFile writes data to a synced temp file in path's directory,
// creating the directory when needed.
func StageFile(path string, data []byte) (_ *Staged, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return nil, fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	return &Staged{path: path, tmp: tmp.Name()}, nil
}

// Path returns the file the staged data will replace.
func (s *Staged) Path() string {
	return s.path
}

// Commit renames the temp file over the target.
func (s *Staged) Commit() error {
	if s.tmp == "" {
		return nil
	}
	if s.mu != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	tmp := s.tmp
	s.tmp = ""
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename to %s: %w", s.path, err)
	}

	if d, err := os.Open(filepath.Dir(s.path)); err == nil {
		d.Sync()
		d.Close()
	}
	return nil
}

// Discard removes the temp file.
func (s *Staged) Discard() {
	if s.tmp == "" {
		return
	}
	os.Remove(s.tmp)
	s.tmp = ""
}
