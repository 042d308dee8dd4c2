package archie

import "strings"

const (
	separator = "/"
	wildcard  = "*"
)

// Resolve parses a raw user path and checks it against the filesystem.
//
// Without a '*' the whole input is the base path. With one, the input is split
// at its last separator: the part before is the base directory and the final
// segment is kept verbatim as the wildcard. A '*' anywhere before the last
// separator is rejected. No globbing happens here; the wildcard is left for
// the shell that runs the synthesized command.
func Resolve(fsmgr FilesystemManager, rawPath string) (*Path, error) {
	base, suffix, err := splitWildcard(rawPath)
	if err != nil {
		return nil, err
	}
	if base == "" {
		return nil, pathError(rawPath, ErrFileDoesNotExist)
	}

	exists, isDir, err := fsmgr.Stat(base)
	if err != nil {
		return nil, &PathError{Path: base, Err: ErrCouldNotCheckFile, Cause: err}
	}
	if !exists {
		return nil, pathError(base, ErrFileDoesNotExist)
	}

	if !isDir {
		if suffix != "" {
			return nil, pathError(rawPath, ErrWildcardOnFile)
		}
		return NewFilePath(base), nil
	}
	return NewDirectoryPath(base, suffix), nil
}

// splitWildcard returns the base path and wildcard segment of rawPath.
func splitWildcard(rawPath string) (string, string, error) {
	if !strings.Contains(rawPath, wildcard) {
		return trimSeparators(rawPath), "", nil
	}

	slashIdx := strings.LastIndex(rawPath, separator)
	if slashIdx < 0 {
		return "", "", pathError(rawPath, ErrNoDirForWildcard)
	}
	if strings.LastIndex(rawPath, wildcard) < slashIdx {
		return "", "", pathError(rawPath, ErrInvalidWildcardIndex)
	}

	base := rawPath[:slashIdx]
	if base == "" {
		return "", "", pathError(rawPath, ErrNoDirForWildcard)
	}
	return base, rawPath[slashIdx+1:], nil
}

// trimSeparators drops trailing separators but keeps a lone root.
func trimSeparators(path string) string {
	trimmed := strings.TrimRight(path, separator)
	if trimmed == "" && path != "" {
		return separator
	}
	return trimmed
}

func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, separator) {
		return dir + name
	}
	return dir + separator + name
}
