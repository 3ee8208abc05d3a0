// internal/adapters/session/file.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

const fileMode = 0o600

// FileStore persists the session as a small JSON document holding the two
// keys, token and user, with user kept as its serialized string.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

var _ ports.SessionStore = (*FileStore)(nil)

// DefaultPath returns the session file under the user config directory
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "stockdesk", "session.json"), nil
}

// NewFileStore creates a store at path
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.With(slog.String("component", "session_file")),
	}
}

// Path returns the backing file
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(ctx context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return domain.Session{}, err
	}

	user, err := decodeUser(values[domain.KeyUser])
	if err != nil {
		s.logger.WarnContext(ctx, "stored user is corrupt, ignoring", slog.String("error", err.Error()))
	}

	return domain.Session{Token: values[domain.KeyToken], User: user}, nil
}

func (s *FileStore) Set(ctx context.Context, session domain.Session) error {
	user, err := encodeUser(session.User)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values := map[string]string{
		domain.KeyToken: session.Token,
		domain.KeyUser:  user,
	}
	if err := s.write(values); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "session stored", slog.String("path", s.path))
	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	s.logger.DebugContext(ctx, "session cleared", slog.String("path", s.path))
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", s.path, err)
	}
	return values, nil
}

// write replaces the file atomically so a crash never leaves half a session
func (s *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set session file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}
