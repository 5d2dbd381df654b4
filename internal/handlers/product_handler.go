package handlers

import (
	"errors"
	"strconv"
	"strings"

	"productos/internal/repositories"
	"productos/internal/router"
	"productos/internal/services"
	"productos/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
)

const (
	MessageNotFound = "Producto no encontrado"
	MessageDeleted  = "Producto eliminado"
)

// productMessages reports model constraint failures with the same messages as
// the request rules.
var productMessages = map[string]string{
	"name.required":  "El nombre del producto no puede ir vacío",
	"price.required": "El precio del producto no puede ir vacío",
	"price.gt":       "Precio no válido",
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

func idRule() validation.Rule {
	return validation.Param("id", validation.Int("Id no válido"))
}

func productRules() []validation.Rule {
	return []validation.Rule{
		validation.Body("name",
			validation.NotEmpty("El nombre del producto no puede ir vacío"),
		),
		validation.Body("price",
			validation.Numeric("Valor no válido"),
			validation.NotEmpty("El precio del producto no puede ir vacío"),
			validation.Positive("Precio no válido"),
		),
	}
}

func updateRules() []validation.Rule {
	rules := append([]validation.Rule{idRule()}, productRules()...)
	return append(rules, validation.Body("availability",
		validation.Boolean("Valor para disponibilidad no válido"),
	))
}

var (
	invalidInput = router.Response{Description: "Validation failed", Schema: "ValidationErrors"}
	notFound     = router.Response{Description: "Product not found", Schema: "Error"}
)

// Routes returns the product routes relative to the products group.
func (h *ProductHandler) Routes() []router.Route {
	tags := []string{"Products"}
	return []router.Route{
		{
			Method:  fiber.MethodPost,
			Path:    "/",
			Summary: "Creates a new product",
			Tags:    tags,
			Rules:   productRules(),
			Responses: map[int]router.Response{
				fiber.StatusCreated:    {Description: "Product created", Schema: "Product", Data: true},
				fiber.StatusBadRequest: invalidInput,
			},
			Handler: h.HandleCreateProduct,
		},
		{
			Method:      fiber.MethodGet,
			Path:        "/",
			Summary:     "Get a list of products",
			Description: "Products ordered from newest to oldest, without timestamps.",
			Tags:        tags,
			Responses: map[int]router.Response{
				fiber.StatusOK: {Description: "Successful response", Schema: "ProductSummary", List: true, Data: true},
			},
			Handler: h.HandleGetProducts,
		},
		{
			Method:  fiber.MethodGet,
			Path:    "/:id",
			Summary: "Get a product by ID",
			Tags:    tags,
			Rules:   []validation.Rule{idRule()},
			Responses: map[int]router.Response{
				fiber.StatusOK:         {Description: "Successful response", Schema: "Product", Data: true},
				fiber.StatusBadRequest: invalidInput,
				fiber.StatusNotFound:   notFound,
			},
			Handler: h.HandleGetProductByID,
		},
		{
			Method:      fiber.MethodPut,
			Path:        "/:id",
			Summary:     "Updates a product with user input",
			Description: "Replaces name, price and availability.",
			Tags:        tags,
			Rules:       updateRules(),
			Responses: map[int]router.Response{
				fiber.StatusOK:         {Description: "Product updated", Schema: "Product", Data: true},
				fiber.StatusBadRequest: invalidInput,
				fiber.StatusNotFound:   notFound,
			},
			Handler: h.HandleUpdateProduct,
		},
		{
			Method:  fiber.MethodPatch,
			Path:    "/:id",
			Summary: "Toggles the availability of a product",
			Tags:    tags,
			Rules:   []validation.Rule{idRule()},
			Responses: map[int]router.Response{
				fiber.StatusOK:         {Description: "Availability toggled", Schema: "Product", Data: true},
				fiber.StatusBadRequest: invalidInput,
				fiber.StatusNotFound:   notFound,
			},
			Handler: h.HandleToggleAvailability,
		},
		{
			Method:  fiber.MethodDelete,
			Path:    "/:id",
			Summary: "Deletes a product by ID",
			Tags:    tags,
			Rules:   []validation.Rule{idRule()},
			Responses: map[int]router.Response{
				fiber.StatusOK:         {Description: "Product deleted", Schema: "Message", Data: true},
				fiber.StatusBadRequest: invalidInput,
				fiber.StatusNotFound:   notFound,
			},
			Handler: h.HandleDeleteProduct,
		},
	}
}

// RegisterRoutes registers the product routes on router.
func (h *ProductHandler) RegisterRoutes(r fiber.Router, v *validation.Validator) {
	router.Mount(r, v, h.Routes())
}

// HandleCreateProduct creates a new product from a validated body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	body, err := validation.RequestBody(c)
	if err != nil {
		return err
	}

	name, err := cast.ToStringE(body["name"])
	if err != nil {
		return err
	}
	price, err := cast.ToFloat64E(body["price"])
	if err != nil {
		return err
	}
	product, err := h.service.CreateProduct(name, price)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return productNotFound(c)
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleUpdateProduct replaces the fields of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return productNotFound(c)
	}
	body, err := validation.RequestBody(c)
	if err != nil {
		return err
	}

	var in services.ProductInput
	if in.Name, err = cast.ToStringE(body["name"]); err != nil {
		return err
	}
	if in.Price, err = cast.ToFloat64E(body["price"]); err != nil {
		return err
	}
	if in.Availability, err = cast.ToBoolE(body["availability"]); err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(id, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleToggleAvailability flips the availability of an existing product.
func (h *ProductHandler) HandleToggleAvailability(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return productNotFound(c)
	}
	product, err := h.service.ToggleAvailability(id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDeleteProduct removes an existing product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return productNotFound(c)
	}
	if err := h.service.DeleteProduct(id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"data": MessageDeleted})
}

// fail answers 404 for missing products, 400 for products breaking the model
// constraints and hands anything else to the application error handler.
func (h *ProductHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		return productNotFound(c)
	case errors.Is(err, services.ErrInvalidProduct):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": validation.StructErrors(err, productMessages),
		})
	}
	return err
}

func productNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": MessageNotFound})
}

// productID reads the already validated id parameter. Integer literals that
// cannot name a stored row (zero, negative, out of range) report false.
func productID(c *fiber.Ctx) (uint, bool) {
	raw := strings.TrimPrefix(c.Params("id"), "+")
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
