package archie

// FilesystemManager provides the two filesystem reads the core needs.
// It abstracts file access to enable testing without touching the real filesystem.
type FilesystemManager interface {
	// Stat reports whether path exists and whether it is a directory.
	// A missing path is not an error: it returns exists=false and a nil error.
	// Any other failure (permission denied, I/O error) is returned as-is.
	Stat(path string) (exists bool, isDir bool, err error)

	// ListDirectory returns the names of the non-directory entries directly
	// inside path, in the order the filesystem reports them.
	ListDirectory(path string) ([]string, error)
}

// NameFilter excludes directory entries from bulk discovery.
type NameFilter interface {
	Match(name string) bool
}
