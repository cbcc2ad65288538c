// Package fs has file system utilities shared by the storage engine
// and the server.
package fs

import "os"

// Open opens the named file for reading.
func Open(name string) (*os.File, error) {
	return os.Open(name)
}

// OpenFile opens the named file with the given flag and permissions.
func OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// Exists reports whether the named file or directory exists.
func Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}
