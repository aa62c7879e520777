package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFileName is the session file created inside the config directory.
const DefaultFileName = "session.json"

// FileBackend stores all keys in a single JSON object file.
// Writes go through a temp file and os.Rename so a crash never leaves a
// half-written session behind.
type FileBackend struct {
	mu   sync.Mutex
	path string
}

// NewFileBackend creates a FileBackend writing to dir/session.json.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{path: filepath.Join(filepath.Clean(dir), DefaultFileName)}
}

// Path returns the session file location.
func (b *FileBackend) Path() string {
	return b.path
}

// Get implements Backend.
func (b *FileBackend) Get(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := b.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

// Set implements Backend. A corrupt file is replaced rather than patched.
func (b *FileBackend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := b.read()
	if err != nil {
		data = make(map[string]string)
	}
	data[key] = value
	return b.write(data)
}

// Delete implements Backend. Deleting from a missing file is a no-op.
func (b *FileBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := b.read()
	if err != nil {
		data = make(map[string]string)
	}
	if _, ok := data[key]; !ok {
		if _, statErr := os.Stat(b.path); os.IsNotExist(statErr) {
			return nil
		}
	}
	delete(data, key)
	return b.write(data)
}

func (b *FileBackend) read() (map[string]string, error) {
	raw, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if len(raw) == 0 {
		return make(map[string]string), nil
	}

	data := make(map[string]string)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse session file %s: %w", b.path, err)
	}
	return data, nil
}

func (b *FileBackend) write(data map[string]string) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".folio-session-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmpName, b.path)
}
