package kvstore

import (
	"context"
	"errors"
)

var (
	ErrKeyNotFound = errors.New("key not found")
)

// UpdateFunc receives the current value of a key (nil if the key does not
// exist) and returns the value to write back.
type UpdateFunc func(current []byte) ([]byte, error)

// Store is the durable record store: point get/set/delete over opaque keys.
// Update performs a read-modify-write of a single key; implementations must
// make it atomic with respect to concurrent updates of the same key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
