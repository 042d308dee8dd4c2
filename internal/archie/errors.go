package archie

import (
	"errors"
	"fmt"
)

// Path resolution errors.
var (
	ErrFileDoesNotExist     = errors.New("file does not exist")
	ErrCouldNotCheckFile    = errors.New("failed to check file existence")
	ErrInvalidWildcardIndex = errors.New("wildcard is only supported at the end of a path - e.g. './my/path/file*' or './my/path/*.txt'")
	ErrNoDirForWildcard     = errors.New("could not find the directory for wildcarded input")
	ErrWildcardOnFile       = errors.New("wildcard can only select files inside a directory")
)

// Naming and synthesis errors.
var (
	ErrNoExtension        = errors.New("no extension found")
	ErrCouldNotSplitPath  = errors.New("could not split path")
	ErrUnquotablePath     = errors.New("path cannot be quoted for the shell")
	ErrNoFreeArchiveName  = errors.New("no free archive name")
	ErrNotDirectory       = errors.New("path is not a directory")
	ErrArchiveIsDirectory = errors.New("archive is a directory")
)

// Front end and runner errors.
var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrCommandFailed    = errors.New("failed to run command")
)

// PathError records the path an operation failed on. Err is one of the
// sentinel errors above; Cause is the underlying I/O error, if any.
type PathError struct {
	Path  string
	Err   error
	Cause error
}

func (e *PathError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: '%s': %v", e.Err, e.Path, e.Cause)
	}
	return fmt.Sprintf("%v: '%s'", e.Err, e.Path)
}

// Unwrap lets errors.Is match both the sentinel and the cause.
func (e *PathError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func pathError(path string, kind error) *PathError {
	return &PathError{Path: path, Err: kind}
}

// CommandError reports a command that ran but exited non-zero.
type CommandError struct {
	Command  Command
	ExitCode int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%v: '%s' failed with code: %d", ErrCommandFailed, e.Command, e.ExitCode)
}

func (e *CommandError) Unwrap() error { return ErrCommandFailed }
