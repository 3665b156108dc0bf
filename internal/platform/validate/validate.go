// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate turns request-level validation failures into a single
// [apperr.AppError] carrying per-field details.
//
// # Architecture
//
// Request DTOs declare their rules with ozzo-validation ([Check] / [FromOzzo]).
// Rules that depend on more than one field, or on domain constants, go through
// the chainable [Validator] inside the service layer.
package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/taibuivan/mangashelf/internal/platform/apperr"
)

// Message is the top-level text of every validation response.
const Message = "Dados inválidos"

// messages replaces the default ozzo texts, keyed by error code.
var messages = map[string]string{
	"validation_required":                        "Campo obrigatório",
	"validation_nil_or_not_empty_required":       "Campo obrigatório",
	"validation_not_nil_required":                "Campo obrigatório",
	"validation_length_out_of_range":             "Deve ter entre {{.min}} e {{.max}} itens ou caracteres",
	"validation_length_too_long":                 "Máximo de {{.max}} itens ou caracteres",
	"validation_length_too_short":                "Mínimo de {{.min}} itens ou caracteres",
	"validation_length_invalid":                  "Deve ter exatamente {{.min}} itens ou caracteres",
	"validation_min_greater_equal_than_required": "Deve ser no mínimo {{.threshold}}",
	"validation_min_greater_than_required":       "Deve ser maior que {{.threshold}}",
	"validation_max_less_equal_than_required":    "Deve ser no máximo {{.threshold}}",
	"validation_max_less_than_required":          "Deve ser menor que {{.threshold}}",
	"validation_length_empty_required":           "Deve estar vazio",
	"validation_in_invalid":                      "Valor não permitido",
	"validation_is_url":                          "Deve ser uma URL válida",
	"validation_is_request_url":                  "Deve ser uma URL válida",
}

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("JSON inválido", apperr.FieldError{
	Field:   apperr.RootField,
	Message: "O corpo da requisição não é um JSON válido",
})

// # Schema Validation (ozzo)

// Check runs the DTO's own rules and converts any failure with [FromOzzo].
func Check(target validation.Validatable) error {
	return FromOzzo(target.Validate())
}

// FromOzzo converts an ozzo-validation error tree into a VALIDATION_ERROR.
//
// Nested [validation.Errors] are flattened into dotted paths ("images.0.url");
// a failure not attached to a field is reported under [apperr.RootField].
// An [validation.InternalError] signals a broken rule, not bad input, and
// becomes INTERNAL_ERROR.
func FromOzzo(err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return apperr.Internal(internal.InternalError())
	}

	var details []apperr.FieldError
	flatten("", err, &details)

	return apperr.ValidationError(Message, details...)
}

func flatten(prefix string, err error, out *[]apperr.FieldError) {
	var fields validation.Errors
	if !errors.As(err, &fields) {
		field := prefix
		if field == "" {
			field = apperr.RootField
		}
		*out = append(*out, apperr.FieldError{Field: field, Message: localize(err)})
		return
	}

	// map iteration order is random; sort so responses are stable
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if fields[key] == nil {
			continue
		}
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		flatten(path, fields[key], out)
	}
}

// localize renders a rule failure in Portuguese. Errors raised by custom rules
// already carry their own text and pass through.
func localize(err error) string {
	var rule validation.Error
	if !errors.As(err, &rule) {
		return err.Error()
	}
	if message, ok := messages[rule.Code()]; ok {
		return rule.SetMessage(message).Error()
	}
	return "Valor inválido"
}

// # Chainable Validator

// Validator collects field-level validation errors via a fluent, chainable API.
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "Campo obrigatório")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Máximo de %d caracteres", max))
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Deve ser um de: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
//	v.Custom("rating", rating < 1 || rating > 10, "As notas devem estar entre 1 e 10")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a VALIDATION_ERROR if any rules failed, or nil if all passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(Message, v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
