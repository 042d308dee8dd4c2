package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"archie-go/internal/archie"
)

// OSFilesystemManager is the real filesystem implementation of archie.FilesystemManager.
type OSFilesystemManager struct{}

// NewOSFilesystemManager creates a new filesystem manager that operates on the real filesystem.
func NewOSFilesystemManager() *OSFilesystemManager {
	return &OSFilesystemManager{}
}

// Stat follows symlinks. A missing path, or one under a regular file, is
// reported as not existing.
func (m *OSFilesystemManager) Stat(path string) (bool, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || isNotDirErr(err) {
			return false, false, nil
		}
		return false, false, err
	}
	return true, info.IsDir(), nil
}

// ListDirectory returns the non-directory entries of path in os.ReadDir
// order. Symlinks are listed unless they point to a directory.
func (m *OSFilesystemManager) ListDirectory(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(path, entry.Name()))
			if err == nil && info.IsDir() {
				continue
			}
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Compile-time check that OSFilesystemManager implements archie.FilesystemManager
var _ archie.FilesystemManager = (*OSFilesystemManager)(nil)
