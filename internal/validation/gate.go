package validation

import (
	"github.com/gofiber/fiber/v2"
)

type localsKey int

const (
	bodyKey localsKey = iota
	bodyErrKey
	errorsKey
)

// MessageInvalidJSON is reported when a request body cannot be decoded.
const MessageInvalidJSON = "JSON no válido"

// Middleware returns a handler that evaluates rule against the request and
// records its failures for Gate. It never ends the request itself.
func (v *Validator) Middleware(rule Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := Input{Params: c.Params}
		if rule.Location == LocationBody {
			body, err := RequestBody(c)
			if err != nil {
				if c.Locals(bodyErrKey) == nil {
					c.Locals(bodyErrKey, true)
					appendErrors(c, []FieldError{{
						Type:     "field",
						Msg:      MessageInvalidJSON,
						Location: LocationBody,
					}})
				}
				return c.Next()
			}
			in.Body = body
		}
		appendErrors(c, v.Check([]Rule{rule}, in))
		return c.Next()
	}
}

// Gate answers 400 with every error recorded by the rule middlewares before
// it, or passes the request on unchanged.
func Gate(c *fiber.Ctx) error {
	if errs := Errors(c); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": errs,
		})
	}
	return c.Next()
}

// Chain returns the rule middlewares for rules, in order, followed by Gate.
func (v *Validator) Chain(rules []Rule) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(rules)+1)
	for _, rule := range rules {
		handlers = append(handlers, v.Middleware(rule))
	}
	return append(handlers, Gate)
}

// Errors returns the failures recorded so far for the request.
func Errors(c *fiber.Ctx) []FieldError {
	errs, _ := c.Locals(errorsKey).([]FieldError)
	return errs
}

func appendErrors(c *fiber.Ctx, errs []FieldError) {
	if len(errs) == 0 {
		return
	}
	c.Locals(errorsKey, append(Errors(c), errs...))
}

// RequestBody decodes the JSON object sent with the request. Requests without
// a JSON content type or without a body yield an empty map, like a non-object
// JSON document does. The result is cached for the rest of the request.
func RequestBody(c *fiber.Ctx) (map[string]interface{}, error) {
	if body, ok := c.Locals(bodyKey).(map[string]interface{}); ok {
		return body, nil
	}

	body := map[string]interface{}{}
	raw := c.Body()
	if len(raw) > 0 && c.Is("json") {
		var decoded interface{}
		if err := c.App().Config().JSONDecoder(raw, &decoded); err != nil {
			return nil, err
		}
		if obj, ok := decoded.(map[string]interface{}); ok {
			body = obj
		}
	}
	c.Locals(bodyKey, body)
	return body, nil
}
