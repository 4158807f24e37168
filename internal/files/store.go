// Package files is the filesystem collaborator for selection and saving.
package files

import (
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"
)

// ErrNotText is returned by ReadText when a file is not valid UTF-8.
var ErrNotText = errors.New("file is not valid UTF-8 text")

// Store is what the session needs from a filesystem.
type Store interface {
	Stat(path string) (fs.FileInfo, error)
	ReadText(path string) (string, error)
	WriteText(path, text string) error
}

// OS is the Store backed by the local filesystem.
type OS struct{}

// Stat returns the file info for path.
func (OS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadText returns the whole file. Line endings are left untouched.
func (OS) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrNotText
	}
	return string(data), nil
}

// WriteText replaces the file's contents, keeping its permission bits.
func (OS) WriteText(path, text string) error {
	perm := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(path, []byte(text), perm)
}

// IsRegular reports whether path currently names a regular file.
func IsRegular(s Store, path string) bool {
	info, err := s.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
