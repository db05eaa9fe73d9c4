package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	defaultFileMode = 0644
	defaultDirMode  = 0755
)

// FileKV is a KV persisted as one JSON object file. Every Set rewrites the
// file through a temp file and rename, so readers never observe a partial write.
type FileKV struct {
	mu   sync.Mutex
	path string
}

// OpenFileKV returns a FileKV at path, creating its parent directory.
func OpenFileKV(path string) (*FileKV, error) {
	if path == "" {
		return nil, errors.New("filekv: path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), defaultDirMode); err != nil {
		return nil, fmt.Errorf("filekv: mkdir: %w", err)
	}
	return &FileKV{path: path}, nil
}

// Path returns the backing file path.
func (f *FileKV) Path() string { return f.path }

func (f *FileKV) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return nil, false, err
	}
	v, ok := entries[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (f *FileKV) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		// A corrupt file is replaced rather than blocking every write.
		entries = make(map[string]string)
	}
	entries[key] = string(value)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("filekv: marshal: %w", err)
	}
	return writeFileAtomic(f.path, data)
}

func (f *FileKV) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("filekv: read: %w", err)
	}

	entries := make(map[string]string)
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("filekv: decode %s: %w", f.path, err)
	}
	return entries, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	dst, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, defaultFileMode)
	if err != nil {
		return fmt.Errorf("filekv: create temp: %w", err)
	}
	if _, err := dst.Write(data); err != nil {
		dst.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("filekv: write: %w", err)
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("filekv: sync: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("filekv: close: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("filekv: rename: %w", err)
	}
	return nil
}
