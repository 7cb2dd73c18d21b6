package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	VendorUC   *usecase.VendorUseCase
	ProductUC  *usecase.ProductUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
	// LoginLimit intentos de login por IP y minuto; 0 desactiva el límite.
	LoginLimit int
}

// Router registra las rutas de la API bajo /api/v1. Las lecturas son públicas;
// las escrituras requieren un token con rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	if deps.LoginLimit > 0 {
		authGroup.Post("/login", limiter.New(limiter.Config{
			Max:        deps.LoginLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "Too many login attempts, try again later")
			},
		}), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	admin := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin)}
	guarded := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, admin...), h)
	}

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.ProductUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Get("/:id/products", categoryHandler.Products)
	categories.Post("/", guarded(categoryHandler.Create)...)
	categories.Put("/:id", guarded(categoryHandler.Update)...)
	categories.Delete("/:id", guarded(categoryHandler.Delete)...)

	vendors := api.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC, deps.ProductUC)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Get("/:id/products", vendorHandler.Products)
	vendors.Post("/", guarded(vendorHandler.Create)...)
	vendors.Put("/:id", guarded(vendorHandler.Update)...)
	vendors.Delete("/:id", guarded(vendorHandler.Delete)...)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", guarded(productHandler.Create)...)
	products.Put("/:id", guarded(productHandler.Update)...)
	products.Delete("/:id", guarded(productHandler.Delete)...)
}
