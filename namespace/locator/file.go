package locator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileLocator resolves locations on the local filesystem.
type FileLocator struct {
	root string
}

// NewFileLocator creates a FileLocator rooted at root. An empty root means
// the working directory.
func NewFileLocator(root string) *FileLocator {
	if root == "" {
		root = "."
	}

	return &FileLocator{root: filepath.Clean(root)}
}

// Protocol returns LocalPath.
func (l *FileLocator) Protocol() Protocol { return LocalPath }

// Root returns the cleaned root directory.
func (l *FileLocator) Root() string { return l.root }

// Join appends elem to base using the OS path separator.
func (l *FileLocator) Join(base, elem string) string {
	return filepath.Join(base, elem)
}

// Stat reports whether location is a directory, a file, or absent.
func (l *FileLocator) Stat(_ context.Context, location string) (Kind, error) {
	info, err := os.Stat(location)
	if errors.Is(err, fs.ErrNotExist) {
		return Absent, nil
	}

	if err != nil {
		return Absent, fmt.Errorf("stat %q: %w", location, err)
	}

	if info.IsDir() {
		return Container, nil
	}

	return Leaf, nil
}

// Open opens the file at location.
func (l *FileLocator) Open(_ context.Context, location string) (io.ReadCloser, error) {
	file, err := os.Open(location) // #nosec G304 -- locations are built from the configured root
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, location)
	}

	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", location, err)
	}

	return file, nil
}

// List returns the entries of the directory at location in name order.
func (l *FileLocator) List(_ context.Context, location string) ([]Child, error) {
	entries, err := os.ReadDir(location)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", location, err)
	}

	return children(entries), nil
}

func children(entries []fs.DirEntry) []Child {
	out := make([]Child, 0, len(entries))

	for _, entry := range entries {
		kind := Leaf
		if entry.IsDir() {
			kind = Container
		}

		out = append(out, Child{Name: entry.Name(), Kind: kind})
	}

	return out
}
