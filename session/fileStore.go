package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/oren0115/ecommerce-sub000/models"
)

// fileSlots is the on-disk shape: two string slots, the user profile kept as
// a JSON string so the file layout matches the token/user slot pair rather
// than one merged document.
type fileSlots struct {
	Token string `json:"token,omitempty"`
	User  string `json:"user,omitempty"`
}

// FileStore persists the session in a small JSON file so it survives
// restarts. All methods are safe for concurrent use.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	slots fileSlots
}

// NewFileStore loads the session file at path, creating parent directories
// as needed. A missing file means "logged out", not an error.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.slots); err != nil {
		// A corrupt session file is treated as logged out rather than
		// wedging the whole client.
		s.slots = fileSlots{}
	}
	if s.slots.Token == "" || s.slots.User == "" {
		s.slots = fileSlots{}
	}
	// A discarded file may still hold stale token bytes; remove it so the
	// rejected session is gone from disk too, not just from memory.
	if len(raw) > 0 && s.slots == (fileSlots{}) {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("failed to purge invalid session file: %w", err)
		}
	}
	return s, nil
}

func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots.Token
}

func (s *FileStore) User() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.slots.User == "" {
		return nil, false
	}
	var user models.User
	if err := json.Unmarshal([]byte(s.slots.User), &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (s *FileStore) Set(token string, user *models.User) error {
	if token == "" || user == nil {
		return errors.New("session requires both a token and a user")
	}
	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = fileSlots{Token: token, User: string(profile)}
	return s.flush()
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots == (fileSlots{}) {
		return nil
	}
	s.slots = fileSlots{}
	return s.flush()
}

// flush writes the slots via temp file + rename so a crash mid-write never
// leaves a torn session file. Caller holds the lock.
func (s *FileStore) flush() error {
	raw, err := json.Marshal(s.slots)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}
