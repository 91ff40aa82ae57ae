package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/form-intray/internal/colors"
	"github.com/cristianoliveira/form-intray/internal/config"
	"github.com/cristianoliveira/form-intray/internal/storage/memory"
	"github.com/cristianoliveira/form-intray/internal/storage/redis"
	"github.com/cristianoliveira/form-intray/internal/storage/sqlite"
)

const (
	// BackendFile selects the JSON file store.
	BackendFile = "file"
	// BackendSQLite selects the SQLite store.
	BackendSQLite = "sqlite"
	// BackendRedis selects the Redis store.
	BackendRedis = "redis"
	// BackendMemory selects the in-process store. Nothing survives a restart.
	BackendMemory = "memory"

	likedFileName   = "liked_submissions.json"
	likedDBFileName = "liked_submissions.db"
)

var (
	_ Store = (*sqlite.SQLiteStorage)(nil)
	_ Store = (*memory.Store)(nil)
	_ Store = (*redis.Store)(nil)
)

// NewFromConfig creates the configured store, wrapped in Flaky when
// store_failure_rate or store_latency_ms is set. config.Load must have run.
func NewFromConfig(ctx context.Context) (Store, error) {
	s, err := NewForBackend(ctx, config.Get("storage_backend", BackendFile))
	if err != nil {
		return nil, err
	}
	rate := config.GetInt("store_failure_rate", 0)
	latency := time.Duration(config.GetInt("store_latency_ms", 0)) * time.Millisecond
	if rate > 0 || latency > 0 {
		colors.Debug(fmt.Sprintf("simulating store latency=%s failure_rate=%d%%", latency, rate))
		return NewFlaky(s, FlakyOptions{FailureRate: rate, Latency: latency}), nil
	}
	return s, nil
}

// NewForBackend creates a store for the provided backend name.
// Unknown names and sqlite/redis setup failures fall back to the file store.
func NewForBackend(ctx context.Context, backend string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return newFileStore()
	case BackendSQLite:
		stateDir, err := GetStateDir()
		if err != nil {
			return nil, err
		}
		dbPath := filepath.Join(stateDir, likedDBFileName)
		filePath := filepath.Join(stateDir, likedFileName)
		dbExisted, err := pathExists(dbPath)
		if err != nil {
			return nil, fmt.Errorf("check sqlite database path: %w", err)
		}
		sqliteStorage, err := sqlite.NewSQLiteStorage(dbPath)
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to file: %v", err))
			return newFileStore()
		}
		if !dbExisted {
			if err := importFileStore(ctx, filePath, sqliteStorage); err != nil {
				colors.Warning(fmt.Sprintf("file to sqlite import failed: %v", err))
			}
		}
		return sqliteStorage, nil
	case BackendRedis:
		addr := config.Get("redis_addr", "localhost:6379")
		s, err := redis.Dial(ctx, addr, config.Get("redis_key", ""))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize redis backend, falling back to file: %v", err))
			return newFileStore()
		}
		return s, nil
	case BackendMemory:
		return memory.New(), nil
	default:
		colors.Warning(fmt.Sprintf("unknown storage backend '%s', falling back to file", backend))
		return newFileStore()
	}
}

func newFileStore() (*FileStorage, error) {
	stateDir, err := GetStateDir()
	if err != nil {
		return nil, err
	}
	return NewFileStorage(filepath.Join(stateDir, likedFileName))
}

// importFileStore copies a JSON file collection into dst the first time sqlite is used.
func importFileStore(ctx context.Context, filePath string, dst Store) error {
	exists, err := pathExists(filePath)
	if err != nil || !exists {
		return err
	}
	src, err := NewFileStorage(filePath)
	if err != nil {
		return err
	}
	items, err := src.FetchAll(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	if err := dst.ReplaceAll(ctx, items); err != nil {
		return err
	}
	colors.Success(fmt.Sprintf("Imported %d liked submissions into SQLite", len(items)))
	return nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
