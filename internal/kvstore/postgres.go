package kvstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/thomsonxavier/kaviecommerce/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a Store backed by the kv_store table.
func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_store WHERE key = $1`, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("kvstore: failed to get key",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}

	return value, nil
}

func (s *postgresStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	if len(keys) == 0 {
		return map[string][]byte{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM kv_store WHERE key = ANY($1)`, pq.Array(keys),
	)
	if err != nil {
		logger.FromCtx(ctx).Error("kvstore: failed to get keys",
			zap.Int("key_count", len(keys)),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	values := make(map[string][]byte, len(keys))
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return values, nil
}

func (s *postgresStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)

	if err != nil {
		logger.FromCtx(ctx).Error("kvstore: failed to set key",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	return err
}

func (s *postgresStore) Del(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kv_store WHERE key = $1`, key,
	)

	if err != nil {
		logger.FromCtx(ctx).Error("kvstore: failed to delete key",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	return err
}

// Update runs the read-modify-write inside a transaction with the row locked,
// so concurrent updates of the same key serialize instead of losing writes.
func (s *postgresStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	log := logger.FromCtx(ctx).With(zap.String("key", key))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("kvstore: failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("kvstore: failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// FOR UPDATE locks nothing when the row does not exist yet, so two
	// first writers of a key could both read empty and the later commit
	// would win. Seed the row with a JSON null placeholder so there is
	// always a row to lock; a rollback removes the seed again.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO kv_store (key, value)
		VALUES ($1, 'null')
		ON CONFLICT (key) DO NOTHING
	`, key)
	if err != nil {
		log.Error("kvstore: failed to seed key", zap.Error(err))
		return err
	}

	var current []byte
	err = tx.QueryRowContext(ctx,
		`SELECT value FROM kv_store WHERE key = $1 FOR UPDATE`, key,
	).Scan(&current)
	if err != nil {
		log.Error("kvstore: failed to lock key", zap.Error(err))
		return err
	}
	// records never store a bare JSON null, so it only ever means the
	// placeholder: the key did not exist before this update
	if string(current) == "null" {
		current = nil
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO kv_store (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, next)
	if err != nil {
		log.Error("kvstore: failed to write key", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("kvstore: failed to commit update", zap.Error(err))
		return err
	}

	committed = true
	return nil
}
