package api

import (
	"time"

	"github.com/thomsonxavier/kaviecommerce/internal/identity"
	"github.com/thomsonxavier/kaviecommerce/internal/logger"
	"github.com/thomsonxavier/kaviecommerce/internal/middleware"
	"github.com/thomsonxavier/kaviecommerce/internal/order"
	"github.com/thomsonxavier/kaviecommerce/internal/product"
	"github.com/thomsonxavier/kaviecommerce/internal/stats"
	"github.com/thomsonxavier/kaviecommerce/internal/storage"
	"github.com/thomsonxavier/kaviecommerce/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Deps bundles the services the HTTP layer dispatches to.
type Deps struct {
	Identity identity.Service
	Orders   order.Service
	Products product.Service
	Users    user.Service
	Stats    stats.Service
	Blobs    storage.BlobStore
}

type api struct {
	deps Deps
}

// NewRouter builds the gin engine with all middleware and routes mounted
// under basePath.
func NewRouter(deps Deps, basePath string) *gin.Engine {
	registerValidators()

	a := &api{deps: deps}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		logger.RequestIDMiddleware(),
		logger.LoggingMiddleware(),
		middleware.MetricsMiddleware(),
		middleware.RateLimitMiddleware(),
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:    []string{"Content-Type", "Authorization", "X-Request-Id"},
			ExposeHeaders:   []string{"Content-Length"},
			MaxAge:          10 * time.Minute,
		}),
	)

	router.GET("/metrics", middleware.MetricsHandler())

	base := router.Group(basePath)
	base.GET("/health", a.health)

	base.POST("/signup", a.signup)
	base.POST("/login", a.login)
	base.POST("/admin/create", a.createAdmin)
	base.POST("/orders", a.checkout)
	base.GET("/products", a.listProducts)
	base.GET("/products/:id", a.getProduct)

	authed := base.Group("", middleware.RequireAuth(deps.Identity))
	authed.GET("/profile", a.profile)
	authed.GET("/my-orders", a.myOrders)

	admin := base.Group("", middleware.RequireAuth(deps.Identity), middleware.RequireAdmin())
	admin.POST("/admin/invites", a.createInvite)
	admin.GET("/orders", a.listOrders)
	admin.GET("/orders/:id", a.getOrder)
	admin.PUT("/orders/:id", a.updateOrder)
	admin.GET("/users", a.listUsers)
	admin.GET("/stats", a.dashboardStats)
	admin.POST("/products", a.createProduct)
	admin.PUT("/products/:id", a.updateProduct)
	admin.DELETE("/products/:id", a.deleteProduct)
	admin.POST("/upload-image", a.uploadImage)
	admin.DELETE("/delete-image", a.deleteImage)

	return router
}

func (a *api) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
		return order.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("productcategory", func(fl validator.FieldLevel) bool {
		return product.Category(fl.Field().String()).Valid()
	})
}
