package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// Backend names accepted by Open
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendS3     = "s3"
)

// Options selects and configures a backend
type Options struct {
	Backend string
	// Path is the badger directory
	Path string
	// S3 client and object location for the s3 backend
	S3     S3API
	Bucket string
	Key    string
	// Logger receives backend logs
	Logger *slog.Logger
}

// Open creates the configured store and loads its persisted state
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)

	switch opts.Backend {
	case BackendMemory:
		store = NewMemory()
	case BackendBadger, "":
		store, err = OpenBadger(BadgerConfig{Path: opts.Path, Logger: opts.Logger})
	case BackendS3:
		if opts.S3 == nil {
			return nil, fmt.Errorf("s3 cache: no client configured")
		}
		store, err = NewS3(opts.S3, opts.Bucket, opts.Key)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (must be memory, badger, or s3)", opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Load(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("load cache: %w", err)
	}
	return store, nil
}
