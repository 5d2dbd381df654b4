// Package validation evaluates declarative field rules against an incoming
// request and gates the request on the collected errors.
//
// Each Rule names one field in the JSON body or in the path parameters and an
// ordered list of checks. Every failing check produces one FieldError; the
// gate answers 400 with all of them, or hands the request to the next stage.
package validation

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// Location tells where a field is read from.
type Location string

const (
	LocationBody   Location = "body"
	LocationParams Location = "params"
)

// Check is a single validator tag with the message reported when it fails.
type Check struct {
	Tag     string
	Message string
}

// Rule is the ordered list of checks for one request field.
type Rule struct {
	Location Location
	Field    string
	Checks   []Check
}

// FieldError is one failed check, in the shape returned to clients.
type FieldError struct {
	Type     string      `json:"type"`
	Value    interface{} `json:"value,omitempty"`
	Msg      string      `json:"msg"`
	Path     string      `json:"path"`
	Location Location    `json:"location"`
}

// Body declares a rule on a JSON body field.
func Body(field string, checks ...Check) Rule {
	return Rule{Location: LocationBody, Field: field, Checks: checks}
}

// Param declares a rule on a path parameter.
func Param(field string, checks ...Check) Rule {
	return Rule{Location: LocationParams, Field: field, Checks: checks}
}

// NotEmpty fails when the value is missing or an empty string.
func NotEmpty(message string) Check { return Check{Tag: "required", Message: message} }

// Numeric fails unless the value is a decimal number literal. A leading
// dot (".5") is accepted, a trailing one ("5.") is not.
func Numeric(message string) Check { return Check{Tag: TagDecimal, Message: message} }

// Boolean fails unless the value parses as a boolean.
func Boolean(message string) Check { return Check{Tag: "boolean", Message: message} }

// Int fails unless the value is an integer literal.
func Int(message string) Check { return Check{Tag: TagInteger, Message: message} }

// Positive fails unless the value coerces to a number greater than zero.
func Positive(message string) Check { return Check{Tag: TagPositive, Message: message} }

const (
	TagInteger  = "integer"
	TagDecimal  = "decimal"
	TagPositive = "positive"
)

var (
	integerRegex = regexp.MustCompile(`^[-+]?(?:0|[1-9][0-9]*)$`)
	decimalRegex = regexp.MustCompile(`^[-+]?(?:[0-9]*\.)?[0-9]+$`)
)

// Validator runs rules through go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the custom integer, decimal and positive tags
// registered.
func New() *Validator {
	v := validator.New()
	mustRegister(v, TagInteger, func(fl validator.FieldLevel) bool {
		return integerRegex.MatchString(fl.Field().String())
	})
	mustRegister(v, TagDecimal, func(fl validator.FieldLevel) bool {
		return decimalRegex.MatchString(fl.Field().String())
	})
	mustRegister(v, TagPositive, func(fl validator.FieldLevel) bool {
		f, err := cast.ToFloat64E(fl.Field().String())
		return err == nil && f > 0
	})
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Input is the request data a rule reads from.
type Input struct {
	Body   map[string]interface{}
	Params func(key string, defaultValue ...string) string
}

func (in Input) value(rule Rule) interface{} {
	switch rule.Location {
	case LocationParams:
		if in.Params == nil {
			return nil
		}
		if p := in.Params(rule.Field); p != "" {
			return p
		}
		return nil
	default:
		return in.Body[rule.Field]
	}
}

// Check evaluates every check of every rule and returns all failures in
// declaration order. A nil result means the input is valid.
func (v *Validator) Check(rules []Rule, in Input) []FieldError {
	var errs []FieldError
	for _, rule := range rules {
		raw := in.value(rule)
		str := stringify(raw)
		for _, check := range rule.Checks {
			if err := v.validate.Var(str, check.Tag); err != nil {
				errs = append(errs, FieldError{
					Type:     "field",
					Value:    raw,
					Msg:      check.Message,
					Path:     rule.Field,
					Location: rule.Location,
				})
			}
		}
	}
	return errs
}

// stringify renders a decoded JSON value the way it is checked. Objects and
// arrays render empty so that no check accepts them.
func stringify(raw interface{}) string {
	switch val := raw.(type) {
	case nil, map[string]interface{}, []interface{}:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// StructErrors turns the validator.ValidationErrors wrapped in err into body
// field errors. messages maps "field.tag" to the reported message; unmapped
// failures report the validator's own text.
func StructErrors(err error, messages map[string]string) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		out = append(out, FieldError{
			Type:     "field",
			Value:    fe.Value(),
			Msg:      msg,
			Path:     fe.Field(),
			Location: LocationBody,
		})
	}
	return out
}
