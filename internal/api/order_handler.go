package api

import (
	"net/http"

	"github.com/thomsonxavier/kaviecommerce/internal/middleware"
	"github.com/thomsonxavier/kaviecommerce/internal/order"

	"github.com/gin-gonic/gin"
)

type checkoutItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Size      string  `json:"size" binding:"required"`
	Price     float64 `json:"price"`
}

type checkoutRequest struct {
	Name        string                `json:"name" binding:"required"`
	Email       string                `json:"email" binding:"required,email"`
	Phone       string                `json:"phone" binding:"required"`
	Address     string                `json:"address" binding:"required"`
	Products    []checkoutItemRequest `json:"products" binding:"required,min=1,dive"`
	TotalAmount float64               `json:"totalAmount" binding:"required"`
}

type orderUpdateRequest struct {
	Status         *string `json:"status" binding:"omitempty,orderstatus"`
	CourierDetails *string `json:"courierDetails"`
}

func (a *api) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid order payload")
		return
	}

	items := make([]order.LineItem, len(req.Products))
	for i, item := range req.Products {
		items[i] = order.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Price:     item.Price,
		}
	}

	o, err := a.deps.Orders.Checkout(c.Request.Context(), order.CheckoutInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Products:    items,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orderId": o.ID,
		"userId":  o.UserID,
	})
}

func (a *api) listOrders(c *gin.Context) {
	orders, err := a.deps.Orders.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (a *api) getOrder(c *gin.Context) {
	o, err := a.deps.Orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": o})
}

func (a *api) updateOrder(c *gin.Context) {
	var req orderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid order update payload")
		return
	}

	input := order.UpdateInput{CourierDetails: req.CourierDetails}
	if req.Status != nil {
		status := order.Status(*req.Status)
		input.Status = &status
	}

	o, err := a.deps.Orders.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": o})
}

// myOrders returns the authenticated customer's orders, matched on the
// email their token carries.
func (a *api) myOrders(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided"})
		return
	}

	orders, err := a.deps.Orders.ListByEmail(c.Request.Context(), ident.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
