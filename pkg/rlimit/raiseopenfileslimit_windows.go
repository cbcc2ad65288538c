//go:build windows
// +build windows

package rlimit

// Windows has no rlimit interface.
func raiseOpenFilesLimit() (int, error) {
	return 0, nil
}
