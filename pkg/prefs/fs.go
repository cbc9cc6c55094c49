package prefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FS is a Backend on the local filesystem. Files are laid out as
// <root>/<appID>/<key>.<ext>; writes go through a temp-file-then-rename
// sequence in the destination directory so a crash at any point leaves the
// previous file (or its absence) intact.
type FS struct {
	root string
	ext  string
	dir  string // container directory, set by EnsureContainer

	// rename is swapped in tests to inject failures between the temp
	// write and the final replace.
	rename func(oldpath, newpath string) error
}

// FSOptions configures the filesystem backend.
type FSOptions struct {
	// Root is the base preferences directory, typically DefaultRoot().
	// Required.
	Root string

	// Ext is the file extension without dot, normally Codec.Ext().
	// Required.
	Ext string
}

// NewFS creates a filesystem backend. The container directory is not
// created until EnsureContainer runs.
func NewFS(opts FSOptions) (*FS, error) {
	if opts.Root == "" {
		return nil, errors.New("prefs: FSOptions.Root is required")
	}
	if opts.Ext == "" {
		return nil, errors.New("prefs: FSOptions.Ext is required")
	}
	abs, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, err
	}
	return &FS{root: abs, ext: opts.Ext, rename: os.Rename}, nil
}

// EnsureContainer creates <root>/<appID> (with parents) if needed.
func (f *FS) EnsureContainer(_ context.Context, appID string) error {
	dir := filepath.Join(f.root, appID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f.dir = dir
	return nil
}

// Read returns the contents of <key>.<ext>, or ErrNotFound if the file
// has never been written.
func (f *FS) Read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// WriteAtomic writes data to a temp file in the container directory,
// syncs it, and renames it over the destination. On any failure the temp
// file is removed and the destination is left unmodified.
func (f *FS) WriteAtomic(_ context.Context, key string, data []byte) error {
	if f.dir == "" {
		return fmt.Errorf("%w: container not ensured", ErrContainerUnavailable)
	}
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := f.rename(tmpName, f.path(key)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Close is a no-op; the backend holds no open resources between calls.
func (f *FS) Close() error { return nil }

// path returns the destination path for a key. Valid only after
// EnsureContainer.
func (f *FS) path(key string) string {
	return filepath.Join(f.dir, key+"."+f.ext)
}

// DefaultRoot returns the platform-specific base directory for user
// preferences (os.UserConfigDir): ~/.config on Linux,
// ~/Library/Application Support on macOS, %AppData% on Windows. The app ID
// is appended by the backend, not here.
func DefaultRoot() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContainerUnavailable, err)
	}
	return dir, nil
}

// Compile-time interface check.
var _ Backend = (*FS)(nil)
