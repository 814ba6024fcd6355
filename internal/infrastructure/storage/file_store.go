// Package storage holds the local session store adapters.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

const (
	tokenFile = "gigsly_token"
	userFile  = "gigsly_user.json"
)

// FileStore keeps the token and the cached user as two files inside one
// per-installation directory. Every failure is logged and reads back as absent.
type FileStore struct {
	dir string
	log zerolog.Logger
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir. The directory is created on the
// first write.
func NewFileStore(dir string, log zerolog.Logger) *FileStore {
	return &FileStore{dir: dir, log: log.With().Str("component", "file_store").Logger()}
}

func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.read(tokenFile)
	if !ok {
		return "", false
	}
	token := string(bytes.TrimSpace(data))
	return token, token != ""
}

func (s *FileStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		s.remove(tokenFile)
		return
	}
	s.write(tokenFile, []byte(token))
}

func (s *FileStore) User() (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.read(userFile)
	if !ok {
		return nil, false
	}
	var u *domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.log.Warn().Err(err).Str("file", userFile).Msg("cached user is corrupt, ignoring")
		return nil, false
	}
	return u, u != nil
}

func (s *FileStore) SetUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u == nil {
		s.remove(userFile)
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		s.log.Warn().Err(err).Msg("encode cached user")
		return
	}
	s.write(userFile, data)
}

func (s *FileStore) Clear() {
	s.SetToken("")
	s.SetUser(nil)
}

func (s *FileStore) read(name string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Str("file", name).Msg("read session file")
		}
		return nil, false
	}
	return data, true
}

func (s *FileStore) remove(name string) {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn().Err(err).Str("file", name).Msg("remove session file")
	}
}

// write replaces name atomically so a crash never leaves a half-written value.
func (s *FileStore) write(name string, data []byte) {
	if err := s.writeFile(name, data); err != nil {
		s.log.Warn().Err(err).Str("file", name).Msg("write session file")
	}
}

func (s *FileStore) writeFile(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
