package prefs

import (
	"context"
	"errors"
	"log"

	badger "github.com/dgraph-io/badger/v4"
)

// Badger is a Backend backed by BadgerDB v4. Blobs are stored under
// <appID>-<key>; a single Set transaction is the atomic write, so the
// temp-resource steps of the filesystem protocol collapse into one call.
type Badger struct {
	db     *badger.DB
	prefix string // set by EnsureContainer
}

// BadgerOptions configures the BadgerDB backend.
type BadgerOptions struct {
	// Dir is the directory for BadgerDB data files.
	// Required unless InMemory is set.
	Dir string

	// InMemory runs BadgerDB in memory-only mode (no disk persistence).
	// Useful for testing with a real badger engine.
	InMemory bool

	// Logger sets the badger logger. If nil, a quiet logger is used that
	// only reports warnings and errors.
	Logger badger.Logger
}

// NewBadger opens a BadgerDB-backed Backend.
func NewBadger(opts BadgerOptions) (*Badger, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("prefs: BadgerOptions.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	if opts.Logger != nil {
		dbOpts = dbOpts.WithLogger(opts.Logger)
	} else {
		dbOpts = dbOpts.WithLogger(quietLogger{})
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}
	return &Badger{db: db}, nil
}

// EnsureContainer records the app ID as the key prefix; the database
// itself is the container and was opened by NewBadger.
func (b *Badger) EnsureContainer(_ context.Context, appID string) error {
	b.prefix = appID + "-"
	return nil
}

func (b *Badger) Read(_ context.Context, key string) ([]byte, error) {
	k := []byte(b.prefix + key)
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(k)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (b *Badger) WriteAtomic(_ context.Context, key string, data []byte) error {
	k := []byte(b.prefix + key)
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(k, data)
	})
}

func (b *Badger) Close() error {
	return b.db.Close()
}

// quietLogger wraps the standard log package for badger, suppressing
// debug and info level messages.
type quietLogger struct{}

func (quietLogger) Errorf(f string, v ...interface{}) { log.Printf("[badger] ERROR: "+f, v...) }
func (quietLogger) Warningf(f string, v ...interface{}) {
	log.Printf("[badger] WARN: "+f, v...)
}
func (quietLogger) Infof(string, ...interface{})  {}
func (quietLogger) Debugf(string, ...interface{}) {}

// Compile-time interface check.
var _ Backend = (*Badger)(nil)
