package handlers

import (
	"time"

	"productos/internal/router"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping() error
}

// HealthHandler answers liveness checks.
type HealthHandler struct {
	db  Pinger
	now func() time.Time
}

// NewHealthHandler creates a HealthHandler that pings db on every request.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, now: time.Now}
}

// Routes returns the health check route.
func (h *HealthHandler) Routes() []router.Route {
	return []router.Route{
		{
			Method:  fiber.MethodGet,
			Path:    "/health",
			Summary: "Reports service health",
			Tags:    []string{"System"},
			Responses: map[int]router.Response{
				fiber.StatusOK:                 {Description: "Service healthy", Schema: "Health"},
				fiber.StatusServiceUnavailable: {Description: "Storage unreachable", Schema: "Health"},
			},
			Handler: h.HandleHealth,
		},
	}
}

// HandleHealth pings storage and reports the result.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ts := h.now().Format(time.RFC3339)
	if err := h.db.Ping(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"time":     ts,
			"database": "down",
			"error":    err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "healthy",
		"time":     ts,
		"database": "up",
	})
}
