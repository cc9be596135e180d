// Package storage provides the persistent key–value contract the
// session manager writes credentials through. The contract is the same
// get/set/remove-by-key surface in every backend, so the session code
// never cares whether state lives in a local file, process memory, or a
// shared Redis instance.
package storage

import "context"

// Well-known keys. These names are part of the on-disk contract and
// must not change: an upgraded client has to be able to rehydrate a
// session persisted by an older one.
const (
	// KeyToken holds the opaque credential string.
	KeyToken = "token"
	// KeyUser holds the JSON-encoded user profile.
	KeyUser = "user"
)

// Store is a synchronous key–value store. Implementations must be safe
// for concurrent use.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent;
	// absence is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
