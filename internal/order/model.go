package order

import "time"

type Status string

const (
	StatusPending         Status = "Pending"
	StatusConfirmed       Status = "Confirmed"
	StatusPaymentReceived Status = "Payment Received"
	StatusOnDelivery      Status = "On Delivery"
	StatusDelivered       Status = "Delivered"
)

// Statuses lists the order states in lifecycle order. Admins may set any of
// them directly; there is no enforced transition graph.
func Statuses() []Status {
	return []Status{
		StatusPending,
		StatusConfirmed,
		StatusPaymentReceived,
		StatusOnDelivery,
		StatusDelivered,
	}
}

func (s Status) Valid() bool {
	for _, known := range Statuses() {
		if s == known {
			return true
		}
	}
	return false
}

type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	UserName       string     `json:"userName"`
	UserEmail      string     `json:"userEmail"`
	UserPhone      string     `json:"userPhone"`
	UserAddress    string     `json:"userAddress"`
	Products       []LineItem `json:"products"`
	TotalAmount    float64    `json:"totalAmount"`
	Status         Status     `json:"status"`
	CourierDetails string     `json:"courierDetails"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type CheckoutInput struct {
	Name        string
	Email       string
	Phone       string
	Address     string
	Products    []LineItem
	TotalAmount float64
}

type UpdateInput struct {
	Status         *Status
	CourierDetails *string
}
