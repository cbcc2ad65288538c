package storage

import (
	"net/url"
	"path/filepath"
	"strings"
)

type URI url.URL

// ParseURI parses the path using url.Parse.  A path with no scheme, or
// with a scheme we don't recognize (a windows drive letter parses as a
// scheme), is treated as a file system path: it is made absolute and
// given the file scheme.  An empty path returns a zero-valued URI.
func ParseURI(path string) (*URI, error) {
	if path == "" {
		return &URI{}, nil
	}
	u, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	if !knownScheme(Scheme(u.Scheme)) {
		return parseBarePath(path)
	}
	return (*URI)(u), nil
}

func parseBarePath(path string) (*URI, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if len(filepath.VolumeName(path)) == 2 {
		// Add a leading '/' to paths beginning with a drive letter.
		path = "/" + path
	}
	u, err := url.Parse(string(FileScheme) + "://" + filepath.ToSlash(path))
	if err != nil {
		return nil, err
	}
	return (*URI)(u), nil
}

func MustParseURI(path string) *URI {
	u, err := ParseURI(path)
	if err != nil {
		panic(err)
	}
	return u
}

func (u URI) String() string {
	return (*url.URL)(&u).String()
}

// Filepath returns the URI's path in the operating system's file path
// notation.
func (u *URI) Filepath() string {
	path := u.Path
	if len(path) > 2 && path[0] == '/' && len(filepath.VolumeName(path[1:])) == 2 {
		// Strip the leading '/' from paths beginning with a drive letter.
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

func (u *URI) HasScheme(s Scheme) bool {
	return Scheme(u.Scheme) == s
}

func (u *URI) AppendPath(elem ...string) *URI {
	out := *u
	for _, el := range elem {
		out.Path = out.Path + "/" + el
	}
	return &out
}

func (u *URI) RelPath(target URI) string {
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return strings.TrimPrefix(target.Path, u.Path)
}

func (u *URI) IsZero() bool {
	return *u == URI{}
}

func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *URI) UnmarshalText(b []byte) error {
	uri, err := ParseURI(string(b))
	if err != nil {
		return err
	}
	*u = *uri
	return nil
}
