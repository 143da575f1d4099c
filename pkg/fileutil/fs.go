package fileutil

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// FS defines the filesystem operations needed by permnorm: metadata queries,
// mode changes and reading path-list files.
type FS interface {
	Lstat(name string) (os.FileInfo, error)
	Chmod(name string, mode os.FileMode) error
	ReadFile(filename string) ([]byte, error)
}

// AferoFS adapts an afero.Fs to our FS interface
type AferoFS struct {
	fs afero.Fs
}

// NewAferoFS creates a new AferoFS instance wrapping the provided afero.Fs
func NewAferoFS(fs afero.Fs) *AferoFS {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &AferoFS{fs: fs}
}

// stat returns file info, following symlinks
func (a *AferoFS) stat(name string) (os.FileInfo, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return info, nil
}

// Lstat returns file info without following a final symlink. Filesystems
// that cannot tell links apart fall back to Stat.
func (a *AferoFS) Lstat(name string) (os.FileInfo, error) {
	if lfs, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lfs.LstatIfPossible(name)
		if err != nil {
			return nil, fmt.Errorf("failed to lstat %s: %w", name, err)
		}
		return info, nil
	}
	return a.stat(name)
}

// Chmod changes the mode of a file
func (a *AferoFS) Chmod(name string, mode os.FileMode) error {
	if err := a.fs.Chmod(name, mode); err != nil {
		return fmt.Errorf("failed to chmod %s to %s: %w", name, mode, err)
	}
	return nil
}

// ReadFile reads a file
func (a *AferoFS) ReadFile(filename string) ([]byte, error) {
	data, err := afero.ReadFile(a.fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return data, nil
}

// GetUnderlyingFs returns the underlying afero.Fs implementation
func (a *AferoFS) GetUnderlyingFs() afero.Fs {
	return a.fs
}

// DefaultFS is the OS-backed filesystem the CLI operates on. Tests swap it
// with SetFS.
var DefaultFS = NewAferoFS(afero.NewOsFs())

// SetFS replaces the default filesystem with the provided one and returns a cleanup function
func SetFS(fs *AferoFS) func() {
	oldFS := DefaultFS
	DefaultFS = fs
	return func() {
		DefaultFS = oldFS
	}
}
