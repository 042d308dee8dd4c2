package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
)

func TestOSFilesystemManager_Stat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.tar")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		path       string
		wantExists bool
		wantDir    bool
	}{
		{"directory", dir, true, true},
		{"regular file", file, true, false},
		{"missing path", filepath.Join(dir, "missing.zip"), false, false},
		{"path below a file", filepath.Join(file, "inner"), false, false},
	}

	m := NewOSFilesystemManager()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, isDir, err := m.Stat(tt.path)
			if err != nil {
				t.Fatalf("Stat() error = %v", err)
			}
			if exists != tt.wantExists || isDir != tt.wantDir {
				t.Errorf("Stat(%q) = (%v, %v), want (%v, %v)", tt.path, exists, isDir, tt.wantExists, tt.wantDir)
			}
		})
	}
}

func TestOSFilesystemManager_Stat_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	if err := os.Mkdir(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	_, _, err := NewOSFilesystemManager().Stat(filepath.Join(locked, "a.zip"))
	if err == nil {
		t.Error("Stat() expected permission error, got nil")
	}
}

func TestOSFilesystemManager_ListDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.tar", "b.zip", "readme.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.zip"), 0755); err != nil {
		t.Fatal(err)
	}

	names, err := NewOSFilesystemManager().ListDirectory(dir)
	if err != nil {
		t.Fatalf("ListDirectory() error = %v", err)
	}

	sort.Strings(names)
	want := []string{"a.tar", "b.zip", "readme.md"}
	if len(names) != len(want) {
		t.Fatalf("ListDirectory() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestOSFilesystemManager_ListDirectory_Missing(t *testing.T) {
	if _, err := NewOSFilesystemManager().ListDirectory(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("ListDirectory() expected error for missing directory, got nil")
	}
}
