package stats

import (
	"context"
	"testing"
	"time"

	"github.com/thomsonxavier/kaviecommerce/internal/identity"
	"github.com/thomsonxavier/kaviecommerce/internal/kvstore"
	"github.com/thomsonxavier/kaviecommerce/internal/order"
	"github.com/thomsonxavier/kaviecommerce/internal/product"
	"github.com/thomsonxavier/kaviecommerce/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noAccounts struct{}

func (noAccounts) FindByEmail(ctx context.Context, email string) (*identity.Account, error) {
	return nil, identity.ErrAccountNotFound
}

func TestService_Dashboard(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	orderRepo := order.NewRepository(store)
	userRepo := user.NewRepository(store)

	products := product.NewService(product.NewRepository(store))
	users := user.NewService(userRepo)
	orders := order.NewService(orderRepo, products, users, noAccounts{})

	svc := NewService(orders, users)

	t.Run("EmptyStore", func(t *testing.T) {
		d, err := svc.Dashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, d.TotalUsers)
		assert.Equal(t, 0, d.TotalOrders)
		assert.Equal(t, 0.0, d.TotalRevenue)
		assert.Len(t, d.StatusCounts, 5)
		for status, count := range d.StatusCounts {
			assert.Equal(t, 0, count, status)
		}
	})

	t.Run("RevenueCountsDeliveredOnly", func(t *testing.T) {
		now := time.Now().UTC()
		require.NoError(t, orderRepo.Save(ctx, &order.Order{
			ID:          "o1",
			Status:      order.StatusDelivered,
			TotalAmount: 100,
			CreatedAt:   now,
		}))
		require.NoError(t, orderRepo.Save(ctx, &order.Order{
			ID:          "o2",
			Status:      order.StatusPending,
			TotalAmount: 50,
			CreatedAt:   now,
		}))
		require.NoError(t, userRepo.Save(ctx, &user.User{ID: "u1", CreatedAt: now}))

		d, err := svc.Dashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, d.TotalUsers)
		assert.Equal(t, 2, d.TotalOrders)
		assert.Equal(t, 100.0, d.TotalRevenue)
		assert.Equal(t, 1, d.StatusCounts[string(order.StatusDelivered)])
		assert.Equal(t, 1, d.StatusCounts[string(order.StatusPending)])
		assert.Equal(t, 0, d.StatusCounts[string(order.StatusConfirmed)])
	})
}
