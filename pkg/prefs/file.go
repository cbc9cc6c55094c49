package prefs

import "context"

// File is one persistence unit: a named root group plus change tracking
// against the last successfully persisted snapshot. Files are created and
// owned by a Store; they are loaded lazily on first access and live for
// the lifetime of the Store.
type File struct {
	name     string
	root     *Group
	snapshot *Group
	dirty    bool
}

// newFile wraps a root tree (nil for an empty file) and records it as the
// persisted snapshot, so a freshly loaded file starts clean.
func newFile(name string, root *Group) *File {
	if root == nil {
		root = NewGroup()
	}
	f := &File{name: name, root: root}
	root.attach(f)
	f.snapshot = root.Clone()
	return f
}

// Name returns the file name (without extension).
func (f *File) Name() string { return f.name }

// Root returns the root group.
func (f *File) Root() *Group { return f.root }

// Dirty reports whether the in-memory tree differs from the last persisted
// snapshot.
func (f *File) Dirty() bool { return f.dirty }

// MarkChanged forces the dirty flag, independent of value comparison. The
// next SaveIfChanged cycle will persist the file even if no tracked
// mutation occurred.
func (f *File) MarkChanged() { f.dirty = true }

// recompute re-derives dirty from a full structural comparison. Preference
// trees are small, so comparing on every mutation keeps the flag exact:
// reverting a value to its persisted state clears dirty again.
func (f *File) recompute() { f.dirty = !f.root.Equal(f.snapshot) }

// flush serializes and atomically writes the file. Clean files are skipped
// unless force is set. On success the snapshot advances and dirty clears;
// on failure the file stays dirty so the next cycle retries.
func (f *File) flush(ctx context.Context, backend Backend, codec Codec, force bool) error {
	if !f.dirty && !force {
		return nil
	}
	data, err := codec.Encode(f.root)
	if err != nil {
		return &WriteError{Name: f.name, Err: err}
	}
	if err := backend.WriteAtomic(ctx, f.name, data); err != nil {
		return &WriteError{Name: f.name, Err: err}
	}
	f.snapshot = f.root.Clone()
	f.dirty = false
	return nil
}
