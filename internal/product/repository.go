package product

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
	keyPrefix = "product:"
	indexName = "productIndex"
)

type Repository interface {
	Save(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
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

// Save writes the record and indexes its id. The index append dedupes, so
// saving an existing id overwrites the record without double-listing it.
func (r *repository) Save(ctx context.Context, p *Product) error {
	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	if err := r.store.Set(ctx, keyPrefix+p.ID, value); err != nil {
		return err
	}

	if err := r.index.Append(ctx, p.ID); err != nil {
		logger.FromCtx(ctx).Error("product: record stored but index append failed",
			zap.String("product_id", p.ID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	value, err := r.store.Get(ctx, keyPrefix+id)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	var p Product
	if err := json.Unmarshal(value, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}

	return &p, nil
}

// List resolves every indexed id. Ids whose record is gone are skipped.
func (r *repository) List(ctx context.Context) ([]*Product, error) {
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

	products := make([]*Product, 0, len(ids))
	for _, id := range ids {
		value, ok := values[keyPrefix+id]
		if !ok {
			continue
		}

		var p Product
		if err := json.Unmarshal(value, &p); err != nil {
			return nil, fmt.Errorf("unmarshal product %s: %w", id, err)
		}
		products = append(products, &p)
	}

	return products, nil
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	return r.store.Set(ctx, keyPrefix+p.ID, value)
}

// Delete removes the record and its index entry together, so the index never
// keeps pointing at a deleted product.
func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, keyPrefix+id); err != nil {
		return err
	}

	return r.index.Remove(ctx, id)
}
