//go:build !unix

package fs

func isNotDirErr(error) bool { return false }
