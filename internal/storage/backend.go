package storage

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("storage backend is closed")
)

// Backend is the key-value contract the learner stores persist through.
// Values are opaque JSON documents.
type Backend interface {
	// Get returns the value stored under key or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error
}

// Driver is a Backend with a connection lifecycle
type Driver interface {
	Backend

	// Ping checks backend connectivity
	Ping(ctx context.Context) error

	// Close releases the underlying connections
	Close() error
}

// prefixed namespaces every key of an underlying backend
type prefixed struct {
	backend Backend
	prefix  string
}

// WithPrefix returns a Backend that stores every key under prefix.
// It is used to give each learner an isolated keyspace.
func WithPrefix(backend Backend, prefix string) Backend {
	if p, ok := backend.(*prefixed); ok {
		return &prefixed{backend: p.backend, prefix: p.prefix + prefix}
	}
	return &prefixed{backend: backend, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.backend.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.backend.Set(ctx, p.prefix+key, value)
}
