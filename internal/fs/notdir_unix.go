//go:build unix

package fs

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isNotDirErr reports ENOTDIR, returned when a path component is a regular file.
func isNotDirErr(err error) bool {
	return errors.Is(err, unix.ENOTDIR)
}
