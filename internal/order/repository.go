package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/thomsonxavier/kaviecommerce/internal/kvstore"
	"github.com/thomsonxavier/kaviecommerce/internal/logger"

	"go.uber.org/zap"
)

const (
	keyPrefix = "order:"
	indexName = "orderIndex"
)

type Repository interface {
	Save(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	Update(ctx context.Context, o *Order) error
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

func (r *repository) Save(ctx context.Context, o *Order) error {
	value, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	if err := r.store.Set(ctx, keyPrefix+o.ID, value); err != nil {
		return err
	}

	// The record is durable at this point; an index failure leaves it
	// unlisted but still fetchable by id.
	if err := r.index.Append(ctx, o.ID); err != nil {
		logger.FromCtx(ctx).Error("order: record stored but index append failed",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	value, err := r.store.Get(ctx, keyPrefix+id)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	var o Order
	if err := json.Unmarshal(value, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}

	return &o, nil
}

func (r *repository) List(ctx context.Context) ([]*Order, error) {
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

	orders := make([]*Order, 0, len(ids))
	for _, id := range ids {
		value, ok := values[keyPrefix+id]
		if !ok {
			continue
		}

		var o Order
		if err := json.Unmarshal(value, &o); err != nil {
			return nil, fmt.Errorf("unmarshal order %s: %w", id, err)
		}
		orders = append(orders, &o)
	}

	return orders, nil
}

func (r *repository) Update(ctx context.Context, o *Order) error {
	value, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	return r.store.Set(ctx, keyPrefix+o.ID, value)
}

func (r *repository) Count(ctx context.Context) (int, error) {
	ids, err := r.index.IDs(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
