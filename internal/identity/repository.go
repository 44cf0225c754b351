package identity

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
	accountKeyPrefix = "account:"
	emailKeyPrefix   = "accountEmail:"
	inviteKeyPrefix  = "invite:"
)

type Repository interface {
	Create(ctx context.Context, acc *Account) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	CreateInvite(ctx context.Context, inv *Invite) error
	ConsumeInvite(ctx context.Context, token string) (*Invite, error)
}

type repository struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) Repository {
	return &repository{store: store}
}

// Create claims the email key first, so two signups for the same address
// cannot both succeed.
func (r *repository) Create(ctx context.Context, acc *Account) error {
	log := logger.FromCtx(ctx)

	err := r.store.Update(ctx, emailKeyPrefix+acc.Email, func(current []byte) ([]byte, error) {
		if len(current) > 0 {
			return nil, ErrEmailExists
		}
		return json.Marshal(acc.ID)
	})
	if err != nil {
		return err
	}

	value, err := json.Marshal(acc)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}

	if err := r.store.Set(ctx, accountKeyPrefix+acc.ID, value); err != nil {
		log.Error("identity: failed to store account",
			zap.String("account_id", acc.ID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Account, error) {
	value, err := r.store.Get(ctx, accountKeyPrefix+id)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	var acc Account
	if err := json.Unmarshal(value, &acc); err != nil {
		return nil, fmt.Errorf("unmarshal account: %w", err)
	}

	return &acc, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	value, err := r.store.Get(ctx, emailKeyPrefix+email)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	var id string
	if err := json.Unmarshal(value, &id); err != nil {
		return nil, fmt.Errorf("unmarshal account id: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *repository) CreateInvite(ctx context.Context, inv *Invite) error {
	value, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("marshal invite: %w", err)
	}

	return r.store.Set(ctx, inviteKeyPrefix+inv.Token, value)
}

// ConsumeInvite marks the invite used in the same read-modify-write, so a
// token can be redeemed at most once.
func (r *repository) ConsumeInvite(ctx context.Context, token string) (*Invite, error) {
	var inv Invite

	err := r.store.Update(ctx, inviteKeyPrefix+token, func(current []byte) ([]byte, error) {
		if len(current) == 0 {
			return nil, ErrInviteInvalid
		}
		if err := json.Unmarshal(current, &inv); err != nil {
			return nil, fmt.Errorf("unmarshal invite: %w", err)
		}
		if inv.Used {
			return nil, ErrInviteInvalid
		}

		inv.Used = true
		return json.Marshal(&inv)
	})
	if err != nil {
		return nil, err
	}

	return &inv, nil
}
