package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/thomsonxavier/kaviecommerce/internal/kvstore"
)

const (
	keyPrefix = "user:"
	indexName = "userIndex"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	Save(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	AppendOrder(ctx context.Context, userID, orderID string) (*User, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	store kvstore.Store
	index *kvstore.Index
}

func NewRepository(store kvstore.Store) Repository {
	return &repository{
		store: store,
		index: kvstore.NewIndex(store, indexName),
	}
}

func (r *repository) Save(ctx context.Context, u *User) error {
	value, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	if err := r.store.Set(ctx, keyPrefix+u.ID, value); err != nil {
		return err
	}

	return r.index.Append(ctx, u.ID)
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	value, err := r.store.Get(ctx, keyPrefix+id)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var u User
	if err := json.Unmarshal(value, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}

	return &u, nil
}

func (r *repository) List(ctx context.Context) ([]*User, error) {
	ids, err := r.index.IDs(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyPrefix + id
	}

	values, err := r.store.GetMany(ctx, keys)
	if err != nil {
		return nil, err
	}

	users := make([]*User, 0, len(ids))
	for _, id := range ids {
		value, ok := values[keyPrefix+id]
		if !ok {
			continue
		}

		var u User
		if err := json.Unmarshal(value, &u); err != nil {
			return nil, fmt.Errorf("unmarshal user %s: %w", id, err)
		}
		users = append(users, &u)
	}

	return users, nil
}

// AppendOrder adds orderID to the user's order list inside a single
// read-modify-write, so two checkouts for the same user cannot drop an id.
func (r *repository) AppendOrder(ctx context.Context, userID, orderID string) (*User, error) {
	var u User

	err := r.store.Update(ctx, keyPrefix+userID, func(current []byte) ([]byte, error) {
		if len(current) == 0 {
			return nil, ErrUserNotFound
		}
		if err := json.Unmarshal(current, &u); err != nil {
			return nil, fmt.Errorf("unmarshal user: %w", err)
		}

		for _, existing := range u.OrderIDs {
			if existing == orderID {
				return current, nil
			}
		}

		u.OrderIDs = append(u.OrderIDs, orderID)
		return json.Marshal(&u)
	})
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	ids, err := r.index.IDs(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
