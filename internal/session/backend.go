package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPath returns ~/.salonadmin/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".salonadmin", "session.json"), nil
}

// FileBackend keeps the key-value map as a JSON object in a single file,
// re-read on every Load.
type FileBackend struct {
	Path string
}

// Load returns an empty map when the file does not exist yet.
func (f *FileBackend) Load() (map[string]string, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	kv := map[string]string{}
	if len(data) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(data, &kv); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return kv, nil
}

// Save replaces the file atomically with owner-only permissions.
func (f *FileBackend) Save(kv map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// MemoryBackend is an in-process map, used in tests and as a fallback when no
// session file can be located.
type MemoryBackend struct {
	mu sync.Mutex
	kv map[string]string
}

// NewMemoryBackend returns a backend seeded with a copy of kv.
func NewMemoryBackend(kv map[string]string) *MemoryBackend {
	b := &MemoryBackend{kv: make(map[string]string, len(kv))}
	for k, v := range kv {
		b.kv[k] = v
	}
	return b
}

func (m *MemoryBackend) Load() (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.kv))
	for k, v := range m.kv {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryBackend) Save(kv map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv = make(map[string]string, len(kv))
	for k, v := range kv {
		m.kv[k] = v
	}
	return nil
}
