package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// Options configures a Store.
type Options struct {
	// AppID uniquely namespaces the backend container so that multiple
	// applications never collide. Use a reverse domain name, e.g.
	// "com.example.myapp".
	AppID string

	// Backend is the durable medium. Required.
	Backend Backend

	// Codec is the serialization format. Required; one codec per store,
	// chosen at construction.
	Codec Codec

	// Logger is optional. If nil, uses slog.Default().
	Logger *slog.Logger
}

// Store is the top-level container for an application's preference files.
// It loads files lazily, keeps them resident for its lifetime, and flushes
// dirty ones through the bound backend and codec.
//
// A Store is not safe for concurrent use; it assumes a single owning
// context, typically the host application's update loop.
type Store struct {
	appID   string
	backend Backend
	codec   Codec
	logger  *slog.Logger
	files   map[string]*File
}

// New creates a Store and ensures the backend container for the app ID
// exists. No files are loaded eagerly. A failure to establish the
// container is fatal to construction and wraps ErrContainerUnavailable.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.AppID == "" {
		return nil, errors.New("prefs: Options.AppID is required")
	}
	if opts.Backend == nil {
		return nil, errors.New("prefs: Options.Backend is required")
	}
	if opts.Codec == nil {
		return nil, errors.New("prefs: Options.Codec is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := opts.Backend.EnsureContainer(ctx, opts.AppID); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrContainerUnavailable, opts.AppID, err)
	}
	return &Store{
		appID:   opts.AppID,
		backend: opts.Backend,
		codec:   opts.Codec,
		logger:  logger,
		files:   make(map[string]*File),
	}, nil
}

// AppID returns the application identifier the store was created with.
func (s *Store) AppID() string { return s.appID }

// Lookup returns the named file if it is resident or has a backing blob.
// It returns (nil, nil) when the file has never been saved; a *DecodeError
// when the blob exists but cannot be parsed. Once loaded, a file stays
// resident.
func (s *Store) Lookup(ctx context.Context, name string) (*File, error) {
	if f, ok := s.files[name]; ok {
		return f, nil
	}
	f, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	if f != nil {
		s.files[name] = f
	}
	return f, nil
}

// Open returns the named file, loading it from the backend if present or
// creating an empty one if absent. The empty file is not persisted until
// something is written to it and a save cycle runs.
func (s *Store) Open(ctx context.Context, name string) (*File, error) {
	if f, ok := s.files[name]; ok {
		return f, nil
	}
	f, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	if f == nil {
		f = newFile(name, nil)
	}
	s.files[name] = f
	return f, nil
}

// load reads and decodes one file. Absence is not an error and yields
// (nil, nil); a decode failure is surfaced so corrupt user data is never
// silently replaced with an empty tree.
func (s *Store) load(ctx context.Context, name string) (*File, error) {
	data, err := s.backend.Read(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("prefs: read %q: %w", name, err)
	}
	root, err := s.codec.Decode(data)
	if err != nil {
		return nil, &DecodeError{Name: name, Err: err}
	}
	return newFile(name, root), nil
}

// SaveIfChanged flushes every dirty file and leaves clean ones untouched.
// Per-file failures are collected with errors.Join and do not abort the
// remaining flushes; failed files stay dirty for the next cycle.
func (s *Store) SaveIfChanged(ctx context.Context) error { return s.save(ctx, false) }

// SaveAll flushes every resident file unconditionally, with the same
// partial-failure policy as SaveIfChanged.
func (s *Store) SaveAll(ctx context.Context) error { return s.save(ctx, true) }

func (s *Store) save(ctx context.Context, force bool) error {
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(s.files)) {
		f := s.files[name]
		if !f.dirty && !force {
			continue
		}
		s.logger.Info("prefs: saving file", "app_id", s.appID, "name", name)
		if err := f.flush(ctx, s.backend, s.codec, force); err != nil {
			s.logger.Warn("prefs: save failed", "app_id", s.appID, "name", name, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close releases the backend. Unsaved changes are not flushed; call
// SaveIfChanged first if that matters.
func (s *Store) Close() error { return s.backend.Close() }
