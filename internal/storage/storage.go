package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Package storage provides the local key-value store backing credentials.

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("storage: key not found")

// Store is a small string key-value store with per-entry expiry.
type Store interface {
	Close() error
	Get(key string) (string, error)
	Set(key, value string, ttl time.Duration) error
	Delete(key string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	// DefaultTTL applies when Set is called with a non-positive ttl.
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTTL             = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "memory":
		return newMemoryStore(opts), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

func expiryFor(now time.Time, ttl time.Duration, opts Options) time.Time {
	if ttl <= 0 {
		ttl = opts.DefaultTTL
	}
	return now.Add(ttl)
}
