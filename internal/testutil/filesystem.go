package testutil

import (
	"fmt"
	"path"
	"strings"
	"sync"

	"archie-go/internal/archie"
)

// MockFilesystemManager is an in-memory filesystem for testing. Entries are
// listed in the order they were added, so directory listings are deterministic.
type MockFilesystemManager struct {
	mu         sync.Mutex
	entries    map[string]bool // path -> isDir
	order      []string
	statErrors map[string]error
	listErrors map[string]error
}

// NewMockFilesystemManager creates a new, empty mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		entries:    make(map[string]bool),
		statErrors: make(map[string]error),
		listErrors: make(map[string]error),
	}
}

// AddFile adds a regular file. Missing parent directories are created.
func (m *MockFilesystemManager) AddFile(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addParents(p)
	m.add(p, false)
}

// AddDirectory adds a directory. Missing parent directories are created.
func (m *MockFilesystemManager) AddDirectory(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addParents(p)
	m.add(p, true)
}

// SetStatError makes Stat fail for p with err.
func (m *MockFilesystemManager) SetStatError(p string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statErrors[p] = err
}

// SetListError makes ListDirectory fail for p with err.
func (m *MockFilesystemManager) SetListError(p string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErrors[p] = err
}

func (m *MockFilesystemManager) Stat(p string) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.statErrors[p]; ok {
		return false, false, err
	}
	isDir, ok := m.entries[clean(p)]
	return ok, isDir, nil
}

func (m *MockFilesystemManager) ListDirectory(p string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.listErrors[p]; ok {
		return nil, err
	}
	dir := clean(p)
	isDir, ok := m.entries[dir]
	if !ok || !isDir {
		return nil, fmt.Errorf("not a directory: %s", p)
	}

	var names []string
	for _, entry := range m.order {
		if m.entries[entry] || path.Dir(entry) != dir {
			continue
		}
		names = append(names, path.Base(entry))
	}
	return names, nil
}

func (m *MockFilesystemManager) add(p string, isDir bool) {
	p = clean(p)
	if _, ok := m.entries[p]; !ok {
		m.order = append(m.order, p)
	}
	m.entries[p] = isDir
}

func (m *MockFilesystemManager) addParents(p string) {
	for dir := path.Dir(clean(p)); ; dir = path.Dir(dir) {
		if _, ok := m.entries[dir]; !ok {
			m.add(dir, true)
		}
		if dir == "/" || dir == "." {
			return
		}
	}
}

func clean(p string) string {
	if p == "/" {
		return p
	}
	return path.Clean(strings.TrimRight(p, "/"))
}

// Compile-time check
var _ archie.FilesystemManager = (*MockFilesystemManager)(nil)
