package stats

import (
	"context"

	"github.com/thomsonxavier/kaviecommerce/internal/order"
	"github.com/thomsonxavier/kaviecommerce/internal/user"
)

// Dashboard aggregates the admin panel's headline numbers. Revenue only
// counts orders that reached Delivered.
type Dashboard struct {
	TotalUsers   int            `json:"totalUsers"`
	TotalOrders  int            `json:"totalOrders"`
	StatusCounts map[string]int `json:"statusCounts"`
	TotalRevenue float64        `json:"totalRevenue"`
}

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type service struct {
	orders order.Service
	users  user.Service
}

func NewService(orders order.Service, users user.Service) Service {
	return &service{orders: orders, users: users}
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	statusCounts := make(map[string]int, len(order.Statuses()))
	for _, status := range order.Statuses() {
		statusCounts[string(status)] = 0
	}

	var totalRevenue float64
	for _, o := range orders {
		if _, known := statusCounts[string(o.Status)]; known {
			statusCounts[string(o.Status)]++
		}
		if o.Status == order.StatusDelivered {
			totalRevenue += o.TotalAmount
		}
	}

	return &Dashboard{
		TotalUsers:   totalUsers,
		TotalOrders:  len(orders),
		StatusCounts: statusCounts,
		TotalRevenue: totalRevenue,
	}, nil
}
