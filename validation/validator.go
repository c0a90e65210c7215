package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(wireName)

	// gin binds request bodies with its own validator instance
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(wireName)
	}
}

// wireName reports the form/json name of a field rather than its Go name.
func wireName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Message }

// Struct validates data and returns the first failing field, or nil.
func Struct(data any) *FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &FieldError{Message: err.Error()}
	}
	return describe(verrs[0])
}

// Describe turns a validation error produced by gin binding into a field
// message. Errors that are not validation errors are returned as nil.
func Describe(err error) *FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return nil
	}
	return describe(verrs[0])
}

func describe(fe validator.FieldError) *FieldError {
	field := fieldName(fe)
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "numeric", "number":
		msg = fmt.Sprintf("%s must be numeric", field)
	case "oneof":
		msg = fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "latitude":
		msg = fmt.Sprintf("%s must be a latitude between -90 and 90", field)
	case "longitude":
		msg = fmt.Sprintf("%s must be a longitude between -180 and 180", field)
	case "email":
		msg = fmt.Sprintf("%s must be a valid email", field)
	case "url", "uri":
		msg = fmt.Sprintf("%s must be a valid uri", field)
	case "gt":
		msg = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "min":
		msg = fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte", "max":
		msg = fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s must satisfy %s constraint", field, fe.Tag())
	}
	return &FieldError{Field: field, Message: msg}
}

// fieldName strips slice indexes so "order[1]" reports as "order".
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i > 0 {
		name = name[:i]
	}
	return name
}
