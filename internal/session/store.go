// Package session persists the logged-in user's identity and UI preferences
// between invocations. It is a plain key/value cache, not an authentication
// scheme: the backend trusts the stored email as-is.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNoSession means no user is logged in on this machine
var ErrNoSession = errors.New("not logged in (run: alppass login <email>)")

// Session mirrors what the backend knows about the user, plus local-only
// preferences
type Session struct {
	UserID int    `json:"user_id,omitempty"`
	Email  string `json:"email"`
	Fam    string `json:"fam,omitempty"`
	Name   string `json:"name,omitempty"`
	Otc    string `json:"otc,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Theme  string `json:"theme,omitempty"`
}

// DisplayName assembles the full name in the fam-name-otc order used
// throughout the app
func (s *Session) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Fam, s.Name, s.Otc} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return s.Email
	}
	name := parts[0]
	for _, p := range parts[1:] {
		name += " " + p
	}
	return name
}

// Store reads and writes the session file
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a store backed by the real filesystem
func NewStore(path string) *Store {
	return NewStoreFS(afero.NewOsFs(), path)
}

// NewStoreFS creates a store on an explicit filesystem, which tests swap for
// an in-memory one
func NewStoreFS(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Load reads the current session. A missing file means ErrNoSession.
func (s *Store) Load() (*Session, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if sess.Email == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Save writes the session, creating the parent directory if needed
func (s *Store) Save(sess *Session) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear removes the session file. Absent file is not an error.
func (s *Store) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
