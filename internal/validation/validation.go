// Package validation checks form structs before anything is sent to the
// backend. Rules are struct tags (go-playground/validator); messages are
// supplied per form so each field reads the way the page expects.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"catalog-admin/internal/media"

	"github.com/go-playground/validator/v10"
)

var ErrNotStruct = errors.New("validation target must be a struct")

// Messages maps "field.tag" or "field" (json names) to the text shown when
// that rule fails. "field.tag" wins over "field".
type Messages map[string]string

// Errors is the field -> message result of a failed validation.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for name, empty when the field passed.
func (e Errors) Field(name string) string {
	return e[name]
}

var (
	yearPattern  = regexp.MustCompile(`^\d{4}$`)
	phonePattern = regexp.MustCompile(`^01[3-9]\d{8}$`)
)

// MinYear is the earliest founding year accepted by the "realyear" rule.
const MinYear = 1900

type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

type Option func(*Validator)

// WithClock replaces time.Now for the "realyear" rule.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// New builds a validator with the project rules registered:
//
//	image     media.File (or its content type) is image/*
//	year4     four digits
//	realyear  a year in [MinYear, current year]
//	bdphone   a Bangladeshi mobile number
func New(opts ...Option) *Validator {
	val := &Validator{v: validator.New(validator.WithRequiredStructEnabled()), now: time.Now}
	for _, opt := range opts {
		opt(val)
	}

	val.v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Files validate as their content type: "required" means attached,
	// "image" checks the MIME family.
	val.v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if f, ok := field.Interface().(media.File); ok {
			return f.ContentType
		}
		return nil
	}, media.File{})

	mustRegister(val.v, "image", func(fl validator.FieldLevel) bool {
		return strings.HasPrefix(fl.Field().String(), "image/")
	})
	mustRegister(val.v, "year4", func(fl validator.FieldLevel) bool {
		return yearPattern.MatchString(fl.Field().String())
	})
	mustRegister(val.v, "realyear", func(fl validator.FieldLevel) bool {
		year, err := strconv.Atoi(fl.Field().String())
		if err != nil {
			return false
		}
		return year >= MinYear && year <= val.now().Year()
	})
	mustRegister(val.v, "bdphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return val
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q: %v", tag, err))
	}
}

var std = New()

// Default is the shared validator using the wall clock.
func Default() *Validator {
	return std
}

// Struct validates s and returns Errors (one message per field) or nil.
func (v *Validator) Struct(s any, msgs Messages) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %v", ErrNotStruct, err)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fe.Field()
		if _, seen := out[name]; seen {
			continue
		}
		out[name] = message(fe, msgs)
	}
	return out
}

func message(fe validator.FieldError, msgs Messages) string {
	if m, ok := msgs[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := msgs[fe.Field()]; ok {
		return m
	}

	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_without":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "numeric":
		return field + " must be a number"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return "Enter a valid email"
	case "image":
		return "Only image files are allowed"
	case "year4":
		return "Enter a valid year"
	case "realyear":
		return "Year must be realistic"
	case "bdphone":
		return "Enter a valid phone number"
	case "eq":
		return fmt.Sprintf("%s must be %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// Number turns a form's numeric text into a value: empty is 0. Call it
// after the "numeric" rule has passed.
func Number(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}
