// Package server assembles the Fiber application: middleware, product
// routes, health check and API documentation.
package server

import (
	"errors"

	"productos/internal/config"
	"productos/internal/docs"
	"productos/internal/handlers"
	"productos/internal/middleware"
	"productos/internal/router"
	"productos/internal/services"
	"productos/internal/validation"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// ProductsPrefix is where the product routes are mounted.
	ProductsPrefix = "/api/products"

	MessageInternal = "Error interno del servidor"
)

// New builds the application for cfg on top of service.
func New(cfg *config.Config, service *services.ProductService, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "productos",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if cfg.RequestLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	for _, h := range middleware.CORS(cfg.FrontendURL) {
		app.Use(h)
	}

	v := validation.New()
	productHandler := handlers.NewProductHandler(service)
	healthHandler := handlers.NewHealthHandler(service)

	productRoutes := productHandler.Routes()
	healthRoutes := healthHandler.Routes()
	router.Mount(app.Group(ProductsPrefix), v, productRoutes)
	router.Mount(app, v, healthRoutes)

	doc := docs.Build(&openapi3.Info{
		Title:       "Productos API",
		Version:     "1.0.0",
		Description: "API Docs for Products",
	},
		docs.Section{Prefix: ProductsPrefix, Routes: productRoutes},
		docs.Section{Routes: healthRoutes},
	)
	docs.NewHandler(doc).RegisterRoutes(app)

	return app
}

// ErrorHandler answers framework errors with their own status and message and
// every other error with a logged 500.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		log.Error().
			Err(err).
			Interface("request_id", c.Locals("requestid")).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": MessageInternal,
		})
	}
}
