package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/inventory-service/internal/api/http/handlers"
	"github.com/spec-kit/inventory-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Users    *handlers.UsersHandler
	Stores   *handlers.StoresHandler
	Products *handlers.ProductsHandler
	Gate     *auth.Gate

	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// RegisterRoutes wires HTTP routes. Every route sits behind the gate; which
// ones are public is decided by the gate's policy, not here.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.Auth.Me)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Create)
	users.Get("/:id", cfg.Users.Get)

	stores := app.Group("/stores")
	stores.Get("/", cfg.Stores.List)
	stores.Get("/:id", cfg.Stores.Get)
	stores.Post("/", cfg.Stores.Create)
	stores.Put("/:id", cfg.Stores.Update)
	stores.Delete("/:id", cfg.Stores.Delete)

	products := app.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/store/:storeId", cfg.Products.ListByStore)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", cfg.Products.Create)
	products.Put("/:id", cfg.Products.Update)
	products.Delete("/:id", cfg.Products.Delete)
}
