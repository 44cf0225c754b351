package user

import "time"

// User is the storefront's customer record, denormalized from checkout input.
// For authenticated checkouts its id is the identity-provider account id;
// guest checkouts get a generated id.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	OrderIDs  []string  `json:"orderIds"`
	CreatedAt time.Time `json:"createdAt"`
}
