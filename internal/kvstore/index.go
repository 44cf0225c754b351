package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Index maintains a flat ordered list of entity ids under a single key,
// emulating a "list all" query the point-lookup store cannot do natively.
// Each id appears at most once; append order is preserved.
type Index struct {
	store Store
	key   string
}

func NewIndex(store Store, name string) *Index {
	return &Index{store: store, key: name}
}

func (i *Index) Key() string {
	return i.key
}

// Append adds id to the index unless it is already present.
func (i *Index) Append(ctx context.Context, id string) error {
	return i.store.Update(ctx, i.key, func(current []byte) ([]byte, error) {
		ids, err := decodeIDs(current)
		if err != nil {
			return nil, err
		}

		for _, existing := range ids {
			if existing == id {
				return current, nil
			}
		}

		return json.Marshal(append(ids, id))
	})
}

// Remove filters id out of the index. Removing an absent id is not an error.
func (i *Index) Remove(ctx context.Context, id string) error {
	return i.store.Update(ctx, i.key, func(current []byte) ([]byte, error) {
		ids, err := decodeIDs(current)
		if err != nil {
			return nil, err
		}

		kept := ids[:0]
		for _, existing := range ids {
			if existing != id {
				kept = append(kept, existing)
			}
		}

		return json.Marshal(kept)
	})
}

// IDs returns the indexed ids in append order. A missing index reads as empty.
func (i *Index) IDs(ctx context.Context) ([]string, error) {
	value, err := i.store.Get(ctx, i.key)
	if errors.Is(err, ErrKeyNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	return decodeIDs(value)
}

func decodeIDs(value []byte) ([]string, error) {
	if len(value) == 0 {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal(value, &ids); err != nil {
		return nil, fmt.Errorf("corrupt index value: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}
