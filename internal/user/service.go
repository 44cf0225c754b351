package user

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/thomsonxavier/kaviecommerce/internal/logger"

	"go.uber.org/zap"
)

type RecordOrderInput struct {
	UserID  string
	Name    string
	Email   string
	Phone   string
	Address string
	OrderID string
}

type Service interface {
	// RecordOrder attaches an order to the user record for UserID, creating
	// the record on first checkout.
	RecordOrder(ctx context.Context, input RecordOrderInput) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Count(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RecordOrder(ctx context.Context, input RecordOrderInput) (*User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.AppendOrder(ctx, input.UserID, input.OrderID)
	if err == nil {
		log.Info("order appended to existing user",
			zap.String("user_id", input.UserID),
			zap.String("order_id", input.OrderID),
		)
		return u, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	u = &User{
		ID:        input.UserID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		OrderIDs:  []string{input.OrderID},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, u); err != nil {
		log.Error("failed to create user record",
			zap.String("user_id", input.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	log.Info("user record created",
		zap.String("user_id", input.UserID),
		zap.String("order_id", input.OrderID),
	)
	return u, nil
}

// List returns users newest first.
func (s *service) List(ctx context.Context) ([]*User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	return users, nil
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
