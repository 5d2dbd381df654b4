// Package docs builds an OpenAPI 3 document from the route tables used by the
// router and serves it with an interactive UI.
package docs

import (
	"sort"
	"strconv"
	"strings"

	"productos/internal/router"
	"productos/internal/validation"

	"github.com/getkin/kin-openapi/openapi3"
)

// Section is a set of routes mounted under a common prefix.
type Section struct {
	Prefix string
	Routes []router.Route
}

const schemaPrefix = "#/components/schemas/"

// Build returns the document describing every route of every section.
func Build(info *openapi3.Info, sections ...Section) *openapi3.T {
	components := componentSchemas()
	doc := &openapi3.T{
		OpenAPI:    "3.0.3",
		Info:       info,
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: components},
	}
	for _, section := range sections {
		for _, route := range section.Routes {
			path := openAPIPath(section.Prefix, route.Path)
			item := doc.Paths.Value(path)
			if item == nil {
				item = &openapi3.PathItem{}
				doc.Paths.Set(path, item)
			}
			item.SetOperation(route.Method, operation(route, components))
		}
	}
	return doc
}

func operation(route router.Route, components openapi3.Schemas) *openapi3.Operation {
	op := &openapi3.Operation{
		Summary:     route.Summary,
		Description: route.Description,
		Tags:        route.Tags,
		Responses:   openapi3.NewResponsesWithCapacity(len(route.Responses)),
	}

	body := openapi3.NewObjectSchema()
	for _, rule := range route.Rules {
		switch rule.Location {
		case validation.LocationParams:
			op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
				Value: openapi3.NewPathParameter(rule.Field).WithSchema(fieldSchema(rule)),
			})
		case validation.LocationBody:
			// Every check fails on a missing value, so each body field is required.
			body.WithProperty(rule.Field, fieldSchema(rule))
			body.Required = append(body.Required, rule.Field)
		}
	}
	if len(body.Properties) > 0 {
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(body),
		}
	}

	codes := make([]int, 0, len(route.Responses))
	for code := range route.Responses {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		op.Responses.Set(strconv.Itoa(code), &openapi3.ResponseRef{
			Value: response(route.Responses[code], components),
		})
	}
	return op
}

func response(r router.Response, components openapi3.Schemas) *openapi3.Response {
	out := openapi3.NewResponse().WithDescription(r.Description)
	if r.Schema == "" {
		return out
	}

	// An unknown name leaves the reference unresolved, which Validate reports.
	var target *openapi3.Schema
	if component := components[r.Schema]; component != nil {
		target = component.Value
	}
	ref := openapi3.NewSchemaRef(schemaPrefix+r.Schema, target)
	if r.List {
		list := openapi3.NewArraySchema()
		list.Items = ref
		ref = list.NewRef()
	}
	if r.Data {
		ref = openapi3.NewObjectSchema().WithPropertyRef("data", ref).NewRef()
	}
	return out.WithJSONSchemaRef(ref)
}

// fieldSchema infers a field's type from its checks.
func fieldSchema(rule validation.Rule) *openapi3.Schema {
	for _, check := range rule.Checks {
		switch check.Tag {
		case validation.TagInteger:
			return openapi3.NewIntegerSchema()
		case validation.TagDecimal, validation.TagPositive:
			return openapi3.NewFloat64Schema()
		case "boolean":
			return openapi3.NewBoolSchema()
		}
	}
	return openapi3.NewStringSchema()
}

// openAPIPath joins prefix and path and rewrites :param segments as {param}.
func openAPIPath(prefix, path string) string {
	full := strings.TrimSuffix(prefix+path, "/")
	if full == "" {
		full = "/"
	}
	segments := strings.Split(full, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[i] = "{" + strings.TrimPrefix(seg, ":") + "}"
		}
	}
	return strings.Join(segments, "/")
}

func withExample(s *openapi3.Schema, example interface{}) *openapi3.Schema {
	s.Example = example
	return s
}

func componentSchemas() openapi3.Schemas {
	summary := map[string]*openapi3.Schema{
		"id":           withExample(openapi3.NewIntegerSchema(), 1.0),
		"name":         withExample(openapi3.NewStringSchema(), "Monitor Curvo de 49 Pulgadas"),
		"price":        withExample(openapi3.NewFloat64Schema(), 300.0),
		"availability": withExample(openapi3.NewBoolSchema(), true),
	}
	product := map[string]*openapi3.Schema{
		"createdAt": openapi3.NewDateTimeSchema(),
		"updatedAt": openapi3.NewDateTimeSchema(),
	}
	for k, v := range summary {
		product[k] = v
	}

	fieldError := openapi3.NewObjectSchema().WithProperties(map[string]*openapi3.Schema{
		"type":     withExample(openapi3.NewStringSchema(), "field"),
		"value":    openapi3.NewSchema(),
		"msg":      withExample(openapi3.NewStringSchema(), "Id no válido"),
		"path":     withExample(openapi3.NewStringSchema(), "id"),
		"location": withExample(openapi3.NewStringSchema(), "params"),
	})

	return openapi3.Schemas{
		"Product":        openapi3.NewObjectSchema().WithProperties(product).NewRef(),
		"ProductSummary": openapi3.NewObjectSchema().WithProperties(summary).NewRef(),
		"Message":        withExample(openapi3.NewStringSchema(), "Producto eliminado").NewRef(),
		"Error": openapi3.NewObjectSchema().WithProperty("error",
			withExample(openapi3.NewStringSchema(), "Producto no encontrado")).NewRef(),
		"ValidationErrors": openapi3.NewObjectSchema().WithProperty("errors",
			openapi3.NewArraySchema().WithItems(fieldError)).NewRef(),
		"Health": openapi3.NewObjectSchema().WithProperties(map[string]*openapi3.Schema{
			"status":   withExample(openapi3.NewStringSchema(), "healthy"),
			"time":     openapi3.NewDateTimeSchema(),
			"database": withExample(openapi3.NewStringSchema(), "up"),
		}).NewRef(),
	}
}
