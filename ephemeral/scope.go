package ephemeral

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/atomic"
)

const dirPattern = "failsafe-"

// Scope is a private temporary directory that is deleted exactly once.
type Scope struct {
	dir string
	log *slog.Logger

	// mu serializes writes with removal; released is set only once the
	// directory is gone.
	mu       sync.Mutex
	released atomic.Bool
	stop     func() bool
}

// Acquire creates a fresh directory under parent (os.TempDir() when empty).
// The directory is also removed if ctx is cancelled before Close.
func Acquire(ctx context.Context, parent string, log *slog.Logger) (*Scope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(parent, dirPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create ephemeral directory: %w", err)
	}

	// MkdirTemp already uses 0700, make it explicit against odd umasks.
	if err := os.Chmod(dir, 0700); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to restrict ephemeral directory: %w", err)
	}

	s := &Scope{dir: dir, log: log}
	s.stop = context.AfterFunc(ctx, func() {
		if err := s.release(); err != nil {
			s.log.Error("Failed to remove ephemeral directory after cancellation", "err", err)
		}
	})

	log.Debug("Acquired ephemeral directory", slog.String("path", dir))
	return s, nil
}

// Dir returns the absolute directory path.
func (s *Scope) Dir() string {
	return s.dir
}

// Path returns the path of name inside the scope.
func (s *Scope) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Write stores data under name with owner-only permissions.
func (s *Scope) Write(name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released.Load() {
		return "", errors.New("ephemeral directory already released")
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	path := s.Path(name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	s.log.Debug("Wrote ephemeral file", slog.String("path", path), slog.Int("size", len(data)))
	return path, nil
}

// Released reports whether the directory has been removed.
func (s *Scope) Released() bool {
	return s.released.Load()
}

// Close removes the directory and everything in it. It returns only after the
// removal has finished, also when cancellation started it. Calling Close after
// a successful removal is a no-op; a failed removal is attempted again.
func (s *Scope) Close() error {
	if s.stop != nil {
		s.stop()
	}
	return s.release()
}

func (s *Scope) release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released.Load() {
		return nil
	}

	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to remove ephemeral directory %s: %w", s.dir, err)
	}
	s.released.Store(true)

	s.log.Debug("Released ephemeral directory", slog.String("path", s.dir))
	return nil
}

// With acquires a scope, runs fn and always releases the scope. A release
// failure is joined with the error returned by fn.
func With(ctx context.Context, parent string, log *slog.Logger, fn func(*Scope) error) (err error) {
	scope, err := Acquire(ctx, parent, log)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, scope.Close())
	}()

	return fn(scope)
}
