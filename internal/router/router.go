package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/confetti-shop/backend/internal/handler"
	"github.com/confetti-shop/backend/internal/middleware"
	"github.com/confetti-shop/backend/internal/model"
)

// Handlers bundles every handler the API mounts. The router wires them to
// paths and declares, per group, which role may call them — no handler
// re-checks roles internally.
type Handlers struct {
	Auth       *handler.AuthHandler
	Categories *handler.CategoryHandler
	Products   *handler.ProductHandler
	Expiry     *handler.ExpiryHandler
	Orders     *handler.OrderHandler
}

// RegisterRoutes mounts the full REST surface under /api.
//
// Route registration order matters for the /products subtree: the static
// expiry paths must be declared alongside /products/:id, which Echo
// resolves correctly (static segments win over the parameter).
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string) {
	api := e.Group("/api")

	// Public surface: no token required.
	api.GET("/health", handler.Health)
	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)
	api.GET("/categories", h.Categories.List)
	api.GET("/products", h.Products.List)
	api.GET("/products/expiry-statistics", h.Expiry.Statistics)
	api.GET("/products/:id", h.Products.Get)

	// Authenticated surface: any logged-in account.
	user := e.Group("/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin))
	user.POST("/orders", h.Orders.Create)
	user.GET("/orders", h.Orders.List)

	// Back-office surface: admin role only.
	admin := e.Group("/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin))
	admin.POST("/categories", h.Categories.Create)
	admin.DELETE("/categories/:id", h.Categories.Delete)
	admin.POST("/products", h.Products.Create)
	admin.PUT("/products/:id", h.Products.Update)
	admin.DELETE("/products/:id", h.Products.Delete)
	admin.GET("/products/expired", h.Expiry.Expired)
	admin.GET("/products/expiring-soon", h.Expiry.ExpiringSoon)
	admin.GET("/products/expiry-report", h.Expiry.Report)
	admin.POST("/orders/:id/status", h.Orders.UpdateStatus)
}
