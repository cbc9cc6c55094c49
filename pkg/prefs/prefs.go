// Package prefs persists small hierarchical, per-user application
// preferences. Preferences are organized as named files, each holding a tree
// of groups and typed values. Files are loaded lazily, mutated in memory
// through typed accessors, and written back implicitly: every write is
// atomic, and the Autosaver turns bursts of changes into a single deferred
// save.
//
// The engine is format- and platform-agnostic. A Store is bound at
// construction to one Codec (TOML, JSON, msgpack) and one Backend
// (filesystem, BadgerDB, S3, in-memory); neither choice leaks into the
// rest of the engine.
//
// The engine performs no internal threading: all mutation is synchronous,
// and the host drives autosaving by calling Tick.
package prefs

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNotFound is returned by a Backend when a key has no stored blob.
	// Store treats it as "never saved", not as a failure.
	ErrNotFound = errors.New("prefs: not found")

	// ErrContainerUnavailable is returned by New when the backend cannot
	// create or access the container for the app ID.
	ErrContainerUnavailable = errors.New("prefs: container unavailable")
)

// Codec encodes a preferences tree to bytes and back. Implementations must
// round-trip every value kind exactly, including the int/float distinction.
type Codec interface {
	// Ext is the file extension (without dot) used by path-shaped backends.
	Ext() string

	// Encode serializes the group tree.
	Encode(g *Group) ([]byte, error)

	// Decode parses a previously encoded tree. Unsupported or malformed
	// content is an error; Decode never silently drops data.
	Decode(data []byte) (*Group, error)
}

// Backend is the durable medium for encoded preference files.
//
// WriteAtomic must be all-or-nothing: at no observable point may the stored
// blob contain partial content, and a failure must leave the previous blob
// (or its absence) intact. Backends whose native write is a single atomic
// operation (key-value overwrite, object PUT) satisfy this directly; the
// filesystem backend uses a temp-file-then-rename sequence.
type Backend interface {
	// EnsureContainer creates or validates the namespace for one app ID
	// (a directory, key prefix, or bucket prefix). Called once by New.
	EnsureContainer(ctx context.Context, appID string) error

	// Read returns the stored blob for a key, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// WriteAtomic durably replaces the blob for a key.
	WriteAtomic(ctx context.Context, key string, data []byte) error

	// Close releases any resources held by the backend.
	Close() error
}

// DecodeError reports corrupt or schema-incompatible stored data for one
// file. The file is left unloaded; callers decide whether to reset it.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("prefs: decode %q: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WriteError reports an I/O failure while saving one file. The file stays
// dirty, so the next save cycle retries it.
type WriteError struct {
	Name string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("prefs: write %q: %v", e.Name, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
