// Package session holds the bearer credential for the authenticated user.
//
// The token lives in a single yaml file under the user config dir and
// outlives one process run. Only the login and logout paths (and the
// gateway's reaction to a 401) may mutate the store; everything else is a
// reader.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// Store is the session credential holder. Presence of a token is the
// canonical authenticated state.
type Store interface {
	SetToken(token string) error
	Token() (string, bool)
	Clear() error
	IsAuthenticated() bool
}

type sessionFile struct {
	AccessToken string `yaml:"access_token,omitempty"`
}

// FileStore persists the token as yaml at a fixed path, mode 0600.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), os.FileMode(0700)); err != nil {
		return fmt.Errorf("cannot create session dir: %w", err)
	}
	buf, err := yaml.Marshal(sessionFile{AccessToken: token})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, buf, os.FileMode(0600)); err != nil {
		return fmt.Errorf("cannot write session file: %w", err)
	}
	return nil
}

func (s *FileStore) Token() (string, bool) {
	buf, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var f sessionFile
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return "", false
	}
	if f.AccessToken == "" {
		return "", false
	}
	return f.AccessToken, true
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot remove session file: %w", err)
	}
	return nil
}

func (s *FileStore) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// MemStore keeps the token in memory. Used by tests and anywhere a durable
// session is not wanted.
type MemStore struct {
	token string
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) SetToken(token string) error {
	s.token = token
	return nil
}

func (s *MemStore) Token() (string, bool) {
	if s.token == "" {
		return "", false
	}
	return s.token, true
}

func (s *MemStore) Clear() error {
	s.token = ""
	return nil
}

func (s *MemStore) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}
