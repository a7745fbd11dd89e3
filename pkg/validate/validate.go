// Package validate wraps go-playground/validator with english translations
// and json-tag field names.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// FieldErrors carries translated per-field validation messages. Required is
// true when at least one failure is a missing required field, which clients
// treat differently from a present-but-invalid value.
type FieldErrors struct {
	Fields   map[string]string
	Required bool
}

func (e *FieldErrors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator validates request structs.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator with english translations registered.
func New() (*Validator, error) {
	locale := en.New()
	uni := ut.New(locale, locale)

	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, errors.New("english translator not found")
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}

	return &Validator{validate: v, trans: trans}, nil
}

// Struct validates s and returns a *FieldErrors describing every failing
// field, or nil when s is valid.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrs := &FieldErrors{Fields: make(map[string]string, len(validationErrs))}
	for _, fe := range validationErrs {
		fieldErrs.Fields[fe.Field()] = fe.Translate(v.trans)
		if fe.Tag() == "required" {
			fieldErrs.Required = true
		}
	}

	return fieldErrs
}
