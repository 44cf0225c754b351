package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/thomsonxavier/kaviecommerce/internal/identity"
	"github.com/thomsonxavier/kaviecommerce/internal/logger"
	"github.com/thomsonxavier/kaviecommerce/internal/product"
	"github.com/thomsonxavier/kaviecommerce/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountLookup resolves a checkout email to an identity-provider account,
// so orders from known customers land on their account id.
type AccountLookup interface {
	FindByEmail(ctx context.Context, email string) (*identity.Account, error)
}

type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Order, error)
	ListByEmail(ctx context.Context, email string) ([]*Order, error)
	Count(ctx context.Context) (int, error)
}

type service struct {
	repo     Repository
	products product.Service
	users    user.Service
	accounts AccountLookup
}

func NewService(repo Repository, products product.Service, users user.Service, accounts AccountLookup) Service {
	return &service{
		repo:     repo,
		products: products,
		users:    users,
		accounts: accounts,
	}
}

// Checkout creates the order and its user record. The total is recomputed
// from the catalog; a client-supplied total that disagrees is rejected
// rather than trusted.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*Order, error) {
	log := logger.FromCtx(ctx)

	if len(input.Products) == 0 {
		return nil, ErrNoLineItems
	}

	var total float64
	items := make([]LineItem, len(input.Products))
	for i, item := range input.Products {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		p, err := s.products.GetByID(ctx, item.ProductID)
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, item.ProductID)
		}
		if err != nil {
			return nil, err
		}

		price, ok := p.SizePrice(item.Size)
		if !ok {
			return nil, fmt.Errorf("%w: %s %q", ErrUnknownSize, item.ProductID, item.Size)
		}

		items[i] = LineItem{
			ProductID: item.ProductID,
			Name:      p.Name,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Price:     price,
		}
		total += price * float64(item.Quantity)
	}

	if math.Abs(total-input.TotalAmount) > 0.009 {
		log.Warn("checkout rejected: total mismatch",
			zap.Float64("client_total", input.TotalAmount),
			zap.Float64("computed_total", total),
		)
		return nil, ErrTotalMismatch
	}

	userID := s.resolveUserID(ctx, input.Email)
	now := time.Now().UTC()

	o := &Order{
		ID:             uuid.New().String(),
		UserID:         userID,
		UserName:       input.Name,
		UserEmail:      input.Email,
		UserPhone:      input.Phone,
		UserAddress:    input.Address,
		Products:       items,
		TotalAmount:    total,
		Status:         StatusPending,
		CourierDetails: "",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Save(ctx, o); err != nil {
		log.Error("failed to store order", zap.Error(err))
		return nil, err
	}

	if _, err := s.users.RecordOrder(ctx, user.RecordOrderInput{
		UserID:  userID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		OrderID: o.ID,
	}); err != nil {
		log.Error("order stored but user record update failed",
			zap.String("order_id", o.ID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("user_id", userID),
		zap.Float64("total", total),
	)

	return o, nil
}

// resolveUserID unifies on the identity-provider account id when the checkout
// email belongs to a registered customer; guests get a generated id.
func (s *service) resolveUserID(ctx context.Context, email string) string {
	if acc, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return acc.ID
	}
	return "guest_" + uuid.New().String()
}

// List returns all orders newest first.
func (s *service) List(ctx context.Context) ([]*Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	sortByCreatedAtDesc(orders)
	return orders, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies admin-editable fields only: status and courier details.
// Any status from the enum is reachable from any other.
func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*Order, error) {
	log := logger.FromCtx(ctx)

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *input.Status)
		}
		o.Status = *input.Status
	}
	if input.CourierDetails != nil {
		o.CourierDetails = *input.CourierDetails
	}
	o.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, o); err != nil {
		log.Error("failed to update order",
			zap.String("order_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	log.Info("order updated",
		zap.String("order_id", id),
		zap.String("status", string(o.Status)),
	)

	return o, nil
}

// ListByEmail returns the caller's orders, matched on the denormalized
// checkout email, newest first.
func (s *service) ListByEmail(ctx context.Context, email string) ([]*Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	mine := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if o.UserEmail == email {
			mine = append(mine, o)
		}
	}

	sortByCreatedAtDesc(mine)
	return mine, nil
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func sortByCreatedAtDesc(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
