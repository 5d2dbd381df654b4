// Package router binds route descriptors to a Fiber router. A descriptor
// carries everything needed to serve and document one endpoint.
package router

import (
	"productos/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Response documents one status code a route can answer with.
type Response struct {
	Description string
	// Schema names a component schema in the API document, empty for none.
	Schema string
	// List marks Schema as an array of that component.
	List bool
	// Data nests the payload under a "data" key.
	Data bool
}

// Route describes one endpoint: its rules run in order in front of Handler.
type Route struct {
	Method      string
	Path        string
	Summary     string
	Description string
	Tags        []string
	Rules       []validation.Rule
	Responses   map[int]Response
	Handler     fiber.Handler
}

// Mount registers every route on r. Each route gets its rule middlewares, the
// validation gate and finally its handler.
func Mount(r fiber.Router, v *validation.Validator, routes []Route) {
	for _, route := range routes {
		handlers := append(v.Chain(route.Rules), route.Handler)
		r.Add(route.Method, route.Path, handlers...)
	}
}
