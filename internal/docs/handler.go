package docs

import (
	_ "embed"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
)

//go:embed ui.html
var uiPage []byte

// Handler serves the API document and its UI.
type Handler struct {
	doc *openapi3.T
}

// NewHandler creates a Handler for doc.
func NewHandler(doc *openapi3.T) *Handler {
	return &Handler{doc: doc}
}

// RegisterRoutes mounts the UI at /docs and the document at /docs/openapi.json.
func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Get("/docs", h.ServeUI)
	r.Get("/docs/openapi.json", h.ServeDocument)
}

// ServeUI answers the interactive documentation page.
func (h *Handler) ServeUI(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Type("html", "utf-8")
	return c.Send(uiPage)
}

// ServeDocument answers the OpenAPI document as JSON.
func (h *Handler) ServeDocument(c *fiber.Ctx) error {
	return c.JSON(h.doc)
}
