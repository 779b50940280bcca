package fsutil

import (
	"os"
	"path/filepath"
)

// FileExists returns true if the given path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// DirExists returns true if the given path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// Touch creates an empty file at the given path if it does not exist.
func Touch(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

// EnsureDir creates the given directory if it does not exist.
func EnsureDir(path string) error {
	exists, _ := DirExists(path)
	if exists {
		return nil
	}
	return os.MkdirAll(path, 0755)
}

// GetHomeDirectory returns the current user's home directory, falling back
// to the working directory when it cannot be resolved.
func GetHomeDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// FindInPaths returns the first path in paths that contains baseName, or an
// empty string if none do.
func FindInPaths(paths []string, baseName string) string {
	for _, p := range paths {
		candidate := filepath.Join(p, baseName)
		if exists, _ := FileExists(candidate); exists {
			return candidate
		}
	}
	return ""
}
