// Package rlimit raises the process's open-file limit to its hard
// maximum so a busy service does not run out of descriptors.
package rlimit

// RaiseOpenFilesLimit raises the soft limit on open files to the hard
// limit and returns the resulting limit.
func RaiseOpenFilesLimit() (uint64, error) {
	n, err := raiseOpenFilesLimit()
	return uint64(n), err
}
