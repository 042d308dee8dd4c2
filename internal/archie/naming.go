package archie

import (
	"fmt"
	"strings"
)

const (
	archiveSuffix = "_archive"

	// maxNameAttempts bounds CollisionSafeNamer's numeric suffix search.
	maxNameAttempts = 1000
)

// ShortName returns the final segment of the path's base. Directories keep the
// segment verbatim; files are cut at their first '.', so "a/b/name.tar.gz"
// becomes "name".
func ShortName(p *Path) (string, error) {
	var last string
	segments := strings.Split(p.Base(), separator)
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			last = segments[i]
			break
		}
	}
	if last == "" {
		return "", pathError(p.Base(), ErrCouldNotSplitPath)
	}

	if p.IsDir() {
		return last, nil
	}
	if idx := strings.Index(last, "."); idx >= 0 {
		last = last[:idx]
	}
	if last == "" {
		return "", pathError(p.Base(), ErrCouldNotSplitPath)
	}
	return last, nil
}

// CleanArchiveBasename replaces every '.' with '_' and appends "_archive",
// so the resulting archive name carries no dot besides its own extension.
func CleanArchiveBasename(shortName string) string {
	return strings.ReplaceAll(shortName, ".", "_") + archiveSuffix
}

// Namer picks the basename (without extension) for a new archive.
// ext includes the leading dot, e.g. ".zip".
type Namer interface {
	ArchiveBasename(p *Path, ext string) (string, error)
}

// PlainNamer derives the name from the source path and nothing else.
// Repeated runs on the same input produce the same name.
type PlainNamer struct{}

func (PlainNamer) ArchiveBasename(p *Path, _ string) (string, error) {
	short, err := ShortName(p)
	if err != nil {
		return "", err
	}
	return CleanArchiveBasename(short), nil
}

// CollisionSafeNamer derives the name like PlainNamer and appends _1, _2, ...
// up to _1000 until no file with that name exists in OutputDir.
type CollisionSafeNamer struct {
	FS        FilesystemManager
	OutputDir string
}

func (n *CollisionSafeNamer) ArchiveBasename(p *Path, ext string) (string, error) {
	base, err := PlainNamer{}.ArchiveBasename(p, ext)
	if err != nil {
		return "", err
	}

	dir := n.OutputDir
	if dir == "" {
		dir = "."
	}

	for i := 0; i <= maxNameAttempts; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d", base, i)
		}
		target := joinPath(dir, candidate+ext)
		exists, _, err := n.FS.Stat(target)
		if err != nil {
			return "", &PathError{Path: target, Err: ErrCouldNotCheckFile, Cause: err}
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", pathError(joinPath(dir, base+ext), ErrNoFreeArchiveName)
}

// UniqueNamer appends a generated ID to the derived name. Names never collide
// but differ on every run.
type UniqueNamer struct {
	IDs IDGenerator
}

func (n *UniqueNamer) ArchiveBasename(p *Path, ext string) (string, error) {
	base, err := PlainNamer{}.ArchiveBasename(p, ext)
	if err != nil {
		return "", err
	}
	return base + "_" + strings.ReplaceAll(n.IDs.New(), ".", "_"), nil
}
