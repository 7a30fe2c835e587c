// Package store provides the device-local persistence port and its
// implementations.
//
// Every record store in the application is persisted as one whole serialized
// document under a single key. Components depend on the narrow KV capability
// rather than on any concrete storage, so tests can substitute the in-memory
// implementation.
package store

import "context"

// KV is the persistence port: a flat key-value space of serialized documents.
type KV interface {
	// Get returns the value stored under key, or (nil, nil) when the key
	// is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping verifies the backing storage is reachable.
	Ping(ctx context.Context) error

	// Close releases the backing storage.
	Close() error
}

// Storage keys. These match the browser localStorage names the app shipped
// with, so backups exported from the browser version import cleanly.
const (
	KeyChats       = "burme-mark-chats"
	KeyImages      = "burme-mark-images"
	KeyProjects    = "burme-mark-codes"
	KeyPreferences = "burme-mark-prefs"
	KeyLanguage    = "burme-mark-lang"
)
