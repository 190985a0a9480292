// Package metadata is the client's durable key/value storage. The session
// store keeps the credential and the user identity here.
package metadata

import (
	"context"
)

// Repository stores opaque values under string keys.
//
// Get returns (nil, nil) for an absent key. Delete removes every given key
// and does not fail for keys that are already gone.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
