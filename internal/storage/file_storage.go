package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cristianoliveira/form-intray/internal/colors"
	"github.com/cristianoliveira/form-intray/internal/submission"
)

// FileStorage keeps the liked collection as one JSON array on disk.
// Writes are serialized in-process by a mutex and across processes by a directory lock.
type FileStorage struct {
	path    string
	lockDir string
	mu      sync.Mutex
}

var _ Store = (*FileStorage)(nil)

// NewFileStorage creates a file store at path. The parent directory is created if missing.
func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("file storage: path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return nil, fmt.Errorf("file storage: create directory: %w", err)
	}
	return &FileStorage{path: path, lockDir: path + ".lock"}, nil
}

// Path returns the JSON file location.
func (fs *FileStorage) Path() string { return fs.path }

// FetchAll returns the stored submissions. A missing file is an empty collection.
func (fs *FileStorage) FetchAll(ctx context.Context) ([]submission.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.read()
}

// Save merges s into the stored collection.
func (fs *FileStorage) Save(ctx context.Context, s submission.Submission) error {
	if err := ValidateID(s.ID); err != nil {
		return fmt.Errorf("file storage: %w", err)
	}
	return fs.update(ctx, func(items []submission.Submission) []submission.Submission {
		return Merge(items, s)
	})
}

// ReplaceAll overwrites the stored collection.
func (fs *FileStorage) ReplaceAll(ctx context.Context, items []submission.Submission) error {
	return fs.update(ctx, func([]submission.Submission) []submission.Submission {
		return submission.CloneAll(items)
	})
}

func (fs *FileStorage) update(ctx context.Context, fn func([]submission.Submission) []submission.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return WithLock(fs.lockDir, func() error {
		items, err := fs.read()
		if err != nil {
			return err
		}
		return fs.write(fn(items))
	})
}

func (fs *FileStorage) read() ([]submission.Submission, error) {
	data, err := os.ReadFile(fs.path)
	if errors.Is(err, os.ErrNotExist) {
		return []submission.Submission{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file storage: read %s: %w", fs.path, err)
	}
	if len(data) == 0 {
		return []submission.Submission{}, nil
	}
	var items []submission.Submission
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("file storage: decode %s: %w", fs.path, err)
	}
	if items == nil {
		items = []submission.Submission{}
	}
	return items, nil
}

// write replaces the file atomically through a temp file and rename.
func (fs *FileStorage) write(items []submission.Submission) error {
	if items == nil {
		items = []submission.Submission{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("file storage: encode: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(fs.path), filepath.Base(fs.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("file storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("file storage: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file storage: close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, FileModeFile); err != nil {
		colors.Debug("file storage: chmod temp file:", err.Error())
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file storage: replace %s: %w", fs.path, err)
	}
	return nil
}
