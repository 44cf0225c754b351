package api

import (
	"net/http"

	"github.com/thomsonxavier/kaviecommerce/internal/identity"
	"github.com/thomsonxavier/kaviecommerce/internal/middleware"

	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type adminCreateRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Name        string `json:"name" binding:"required"`
	InviteToken string `json:"inviteToken" binding:"required"`
}

// accountView is the account shape exposed over the wire; the password hash
// never leaves the identity package boundary.
type accountView struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Role    string `json:"role"`
}

func viewOf(acc *identity.Account) accountView {
	return accountView{
		ID:      acc.ID,
		Email:   acc.Email,
		Name:    acc.Name,
		Phone:   acc.Phone,
		Address: acc.Address,
		Role:    string(acc.Role),
	}
}

func (a *api) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid signup payload")
		return
	}

	acc, err := a.deps.Identity.SignupCustomer(c.Request.Context(), identity.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": viewOf(acc)})
}

func (a *api) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid login payload")
		return
	}

	token, acc, err := a.deps.Identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"accessToken": token,
		"user":        viewOf(acc),
	})
}

func (a *api) createAdmin(c *gin.Context) {
	var req adminCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid admin payload")
		return
	}

	acc, err := a.deps.Identity.CreateAdmin(c.Request.Context(), identity.AdminCreateInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		InviteToken: req.InviteToken,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": viewOf(acc)})
}

func (a *api) createInvite(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided"})
		return
	}

	inv, err := a.deps.Identity.CreateInvite(c.Request.Context(), ident.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"invite": gin.H{
			"token":     inv.Token,
			"expiresAt": inv.ExpiresAt,
		},
	})
}

func (a *api) profile(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided"})
		return
	}

	acc, err := a.deps.Identity.GetAccount(c.Request.Context(), ident.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": viewOf(acc)})
}
