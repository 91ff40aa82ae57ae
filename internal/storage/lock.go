package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	lockTimeout = 10 * time.Second
	lockRetry   = 50 * time.Millisecond
)

// ErrLockTimeout is returned when a lock cannot be acquired in time.
var ErrLockTimeout = errors.New("timeout acquiring lock")

// Lock is a directory-based lock shared between processes using the same state dir.
type Lock struct {
	dir     string
	timeout time.Duration
}

// NewLock creates a new lock at the given directory path.
func NewLock(dir string) *Lock {
	return &Lock{dir: dir, timeout: lockTimeout}
}

// Acquire creates the lock directory, retrying until the timeout elapses.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.dir), FileModeDir); err != nil {
		return fmt.Errorf("create lock parent: %w", err)
	}
	start := time.Now()
	for {
		err := os.Mkdir(l.dir, FileModeDir)
		if err == nil {
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("create lock directory: %w", err)
		}
		if time.Since(start) > l.timeout {
			return fmt.Errorf("%w: %s", ErrLockTimeout, l.dir)
		}
		time.Sleep(lockRetry)
	}
}

// Release releases the lock by removing the directory.
func (l *Lock) Release() error {
	return os.Remove(l.dir)
}

// WithLock executes fn while holding the lock at dir.
func WithLock(dir string, fn func() error) error {
	lock := NewLock(dir)
	if err := lock.Acquire(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer lock.Release()
	return fn()
}
