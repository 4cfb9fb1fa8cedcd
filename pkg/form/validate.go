package form

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is returned when client-side validation rejects a submit.
var ErrInvalid = errors.New("form is invalid")

// ValidationError lists the failed requirements by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return e.First()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// First returns the message of the first failing field in name order.
func (e *ValidationError) First() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	if len(keys) == 0 {
		return ErrInvalid.Error()
	}
	return e.Fields[keys[0]]
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks v against its validate tags. Messages name fields with
// labels[field] when present.
func Validate(v any, labels map[string]string) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		out.Fields[fe.Field()] = message(fe, label(fe.Field(), labels))
	}
	return out
}

func message(fe validator.FieldError, name string) string {
	multi := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array

	switch fe.Tag() {
	case "required":
		if multi {
			return "Select at least one " + strings.ToLower(name)
		}
		return name + " is required"
	case "min", "gte":
		if multi {
			if fe.Param() == "1" {
				return "Select at least one " + strings.ToLower(name)
			}
			return fmt.Sprintf("Select at least %s %s", fe.Param(), strings.ToLower(name))
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "url", "http_url":
		return name + " must be a valid URL"
	case "email":
		return name + " must be a valid email address"
	case "datetime":
		return name + " must be a date (YYYY-MM-DD)"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return name + " is invalid"
	}
}

func label(field string, labels map[string]string) string {
	if l, ok := labels[field]; ok && l != "" {
		return l
	}
	words := strings.FieldsFunc(field, func(r rune) bool { return r == '_' || r == '-' })
	if len(words) == 0 {
		return field
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ")
}
