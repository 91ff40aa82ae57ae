package storage

import (
	"fmt"
	"os"

	"github.com/cristianoliveira/form-intray/internal/colors"
	"github.com/cristianoliveira/form-intray/internal/config"
)

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644
)

// GetStateDir returns the configured state directory, creating it if needed.
func GetStateDir() (string, error) {
	stateDir := config.Get("state_dir", "")
	if stateDir == "" {
		return "", fmt.Errorf("storage initialization failed: state_dir not configured")
	}
	colors.Debug("state_dir: " + stateDir)
	if err := os.MkdirAll(stateDir, FileModeDir); err != nil {
		return "", fmt.Errorf("failed to create state directory: %w", err)
	}
	return stateDir, nil
}
