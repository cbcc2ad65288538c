package storage

import "fmt"

type Scheme string

const (
	FileScheme  Scheme = "file"
	HTTPScheme  Scheme = "http"
	HTTPSScheme Scheme = "https"
	S3Scheme    Scheme = "s3"
)

func knownScheme(s Scheme) bool {
	switch s {
	case FileScheme, HTTPScheme, HTTPSScheme, S3Scheme:
		return true
	}
	return false
}

func getScheme(u *URI) (Scheme, error) {
	scheme := Scheme(u.Scheme)
	if !knownScheme(scheme) {
		return "", fmt.Errorf("unsupported scheme: %s", u)
	}
	return scheme, nil
}
