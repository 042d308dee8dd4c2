package archie

import "fmt"

// Path is a resolved user path: either a regular file, or a directory with an
// optional wildcard selecting entries inside it. Paths are created by Resolve
// (or the constructors below in tests) and are never modified afterwards.
// A file with a wildcard cannot be constructed.
type Path struct {
	base     string
	isDir    bool
	wildcard string
}

// NewFilePath creates a Path for a regular file.
func NewFilePath(base string) *Path {
	return &Path{base: base}
}

// NewDirectoryPath creates a Path for a directory. An empty wildcard selects
// the whole directory.
func NewDirectoryPath(base, wildcard string) *Path {
	return &Path{base: base, isDir: true, wildcard: wildcard}
}

// Base returns the existing path the input resolved to. It never contains a wildcard.
func (p *Path) Base() string {
	return p.base
}

// IsDir returns true if this path points to a directory.
func (p *Path) IsDir() bool {
	return p.isDir
}

// Wildcard returns the raw final segment of the input and whether one was given.
func (p *Path) Wildcard() (string, bool) {
	return p.wildcard, p.wildcard != ""
}

// String renders the path the way it is passed to archiving tools, unquoted.
func (p *Path) String() string {
	if !p.isDir {
		return p.base
	}
	return joinPath(p.base, p.selector())
}

func (p *Path) selector() string {
	if p.wildcard == "" {
		return "*"
	}
	return p.wildcard
}

// GoString keeps %#v readable in log lines and test failures.
func (p *Path) GoString() string {
	if !p.isDir {
		return fmt.Sprintf("File(%q)", p.base)
	}
	return fmt.Sprintf("Directory(%q, %q)", p.base, p.wildcard)
}
