package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator. Field names in errors follow the json tags
// so that "faculties[1].id" points at the offending input.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		instance = v
	})
	return instance
}

// Struct validates s against its `validate` tags and converts failures into a
// ValidationError with one entry per field.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	fields := FormatValidationErrors(verrs)
	return apperrors.NewValidationError(Summary(fields), fields)
}

// FormatValidationErrors maps field paths to human-readable messages
func FormatValidationErrors(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[fieldPath(e)] = formatValidationError(e)
	}
	return fields
}

// Summary joins field messages into one line, sorted for stable output
func Summary(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// fieldPath drops the root struct name: "SchoolInput.faculties[0].id" => "faculties[0].id"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func formatValidationError(e validator.FieldError) string {
	field := fieldPath(e)
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param() + " characters"
	case "len":
		return field + " must be exactly " + e.Param() + " characters"
	case "alpha":
		return field + " must contain letters only"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "email":
		return field + " must be a valid email address"
	default:
		return field + " validation failed: " + e.Tag()
	}
}
