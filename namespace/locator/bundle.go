package locator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
)

// BundleLocator resolves locations inside an embedded resource bundle.
// Existence is checked directly; containment is left to the resolver,
// so Stat reports Unknown for anything that exists.
type BundleLocator struct {
	fsys fs.FS
	root string
}

// NewBundleLocator creates a BundleLocator over fsys rooted at root.
func NewBundleLocator(fsys fs.FS, root string) *BundleLocator {
	return &BundleLocator{
		fsys: fsys,
		root: cleanBundlePath(root),
	}
}

// Protocol returns Bundled.
func (l *BundleLocator) Protocol() Protocol { return Bundled }

// Root returns the bundle-relative root.
func (l *BundleLocator) Root() string { return l.root }

// Join appends elem to base with a forward slash.
func (l *BundleLocator) Join(base, elem string) string {
	return cleanBundlePath(path.Join(base, elem))
}

// Stat reports Unknown when location exists in the bundle and Absent otherwise.
func (l *BundleLocator) Stat(_ context.Context, location string) (Kind, error) {
	_, err := fs.Stat(l.fsys, cleanBundlePath(location))
	if errors.Is(err, fs.ErrNotExist) {
		return Absent, nil
	}

	if err != nil {
		return Absent, fmt.Errorf("stat bundle resource %q: %w", location, err)
	}

	return Unknown, nil
}

// Open opens the bundle resource at location.
func (l *BundleLocator) Open(_ context.Context, location string) (io.ReadCloser, error) {
	file, err := l.fsys.Open(cleanBundlePath(location))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, location)
	}

	if err != nil {
		return nil, fmt.Errorf("opening bundle resource %q: %w", location, err)
	}

	return file, nil
}

// List returns the entries of the bundle directory at location.
func (l *BundleLocator) List(_ context.Context, location string) ([]Child, error) {
	entries, err := fs.ReadDir(l.fsys, cleanBundlePath(location))
	if err != nil {
		return nil, fmt.Errorf("reading bundle directory %q: %w", location, err)
	}

	return children(entries), nil
}
