package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists values as a single JSON object on disk, the way
// the CLI stores credentials under the user's dot-directory. The file
// is created with 0600: it holds the auth token.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the file at path. The parent
// directory is created on first write, not here.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt credentials file behaves like an empty one. The
		// session layer clears and rewrites it during restore.
		return map[string]string{}, nil
	}
	return values, nil
}

func (f *FileStore) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(f.path), err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

// Get returns the value for key.
func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set writes the value for key.
func (f *FileStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

// Delete removes key.
func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}
