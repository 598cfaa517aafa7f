package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/nfrund/portal/internal/domain"
	"github.com/spf13/afero"
)

// Record is the on-disk form of a persisted CLI session.
type Record struct {
	Data    json.RawMessage `json:"data"`
	SavedAt time.Time       `json:"saved_at"`
}

// FileStore is the CLI's session handler. Every login is kept in memory for
// the life of the process; only logins with keepLoggedIn are written to disk.
type FileStore struct {
	fs      afero.Fs
	path    string
	current json.RawMessage
}

var _ domain.SessionStore = (*FileStore)(nil)

// NewFileStore creates a FileStore writing to path on fsys.
func NewFileStore(fsys afero.Fs, path string) *FileStore {
	return &FileStore{fs: fsys, path: path}
}

// Path returns the location of the persisted session.
func (s *FileStore) Path() string {
	return s.path
}

// Login implements domain.SessionStore.
func (s *FileStore) Login(ctx context.Context, data json.RawMessage, keepLoggedIn bool) error {
	s.current = data
	if !keepLoggedIn {
		// A session that should not outlive the process replaces any older persisted one.
		return s.Clear()
	}

	raw, err := json.MarshalIndent(Record{Data: data, SavedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Current returns the session established by this process, if any.
func (s *FileStore) Current() (json.RawMessage, bool) {
	return s.current, s.current != nil
}

// Load reads the persisted session, returning domain.ErrNoSession if none exists.
func (s *FileStore) Load() (*Record, error) {
	raw, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode session file: %w", err)
	}
	return &rec, nil
}

// Clear removes the persisted session. A missing file is not an error.
func (s *FileStore) Clear() error {
	err := s.fs.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
