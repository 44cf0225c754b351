package api

import (
	"errors"
	"net/http"

	"github.com/thomsonxavier/kaviecommerce/internal/identity"
	"github.com/thomsonxavier/kaviecommerce/internal/logger"
	"github.com/thomsonxavier/kaviecommerce/internal/order"
	"github.com/thomsonxavier/kaviecommerce/internal/product"
	"github.com/thomsonxavier/kaviecommerce/internal/storage"
	"github.com/thomsonxavier/kaviecommerce/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errStatus maps service errors onto the API's error taxonomy:
// 400 validation, 401 credentials, 403 invite rejection, 404 not found,
// 500 everything else.
func errStatus(err error) int {
	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, identity.ErrAccountNotFound):
		return http.StatusNotFound

	case errors.Is(err, identity.ErrInviteInvalid):
		return http.StatusForbidden

	case errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, identity.ErrEmailExists),
		errors.Is(err, order.ErrNoLineItems),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrUnknownProduct),
		errors.Is(err, order.ErrUnknownSize),
		errors.Is(err, order.ErrTotalMismatch),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, product.ErrInvalidCategory),
		errors.Is(err, product.ErrTooManyImages),
		errors.Is(err, product.ErrNoSizes),
		errors.Is(err, storage.ErrInvalidFileType),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrInvalidURL):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// respondError writes the JSON error envelope. Internal errors are logged
// and returned with a generic message.
func respondError(c *gin.Context, err error) {
	code := errStatus(err)
	msg := err.Error()

	if code == http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		msg = "Internal server error"
	}

	c.JSON(code, gin.H{"error": msg})
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
