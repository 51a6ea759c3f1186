package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// TokenSlot persists the credential token across restarts of a session.
type TokenSlot interface {
	Token() (string, bool)
	SetToken(token string) error
	ClearToken() error
}

// MemorySlot keeps the token in memory.
type MemorySlot struct {
	mu    sync.Mutex
	token string
	ok    bool
}

func NewMemorySlot(token string) *MemorySlot {
	return &MemorySlot{token: token, ok: token != ""}
}

func (m *MemorySlot) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.ok
}

func (m *MemorySlot) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.ok = token, true
	return nil
}

func (m *MemorySlot) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.ok = "", false
	return nil
}

// FileSlot stores the token in a JSON file readable only by the owner.
type FileSlot struct {
	path string
}

type tokenFile struct {
	Token string `json:"token"`
}

func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// DefaultTokenPath is ~/.eventify/auth.json.
func DefaultTokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".eventify", "auth.json"), nil
}

func (f *FileSlot) Path() string {
	return f.path
}

func (f *FileSlot) Token() (string, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to read token file", "path", f.path, "error", err)
		}
		return "", false
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		slog.Warn("ignoring malformed token file", "path", f.path, "error", err)
		return "", false
	}
	if tf.Token == "" {
		return "", false
	}
	return tf.Token, true
}

func (f *FileSlot) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}

	data, err := json.MarshalIndent(tokenFile{Token: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

func (f *FileSlot) ClearToken() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
