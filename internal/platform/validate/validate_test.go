// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangashelf/internal/platform/apperr"
	"github.com/taibuivan/mangashelf/internal/platform/validate"
)

type imageInput struct {
	URL string `json:"url"`
}

func (i imageInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.URL, validation.Required),
	)
}

type wallpaperInput struct {
	Name   string       `json:"name"`
	Images []imageInput `json:"images"`
}

func (w wallpaperInput) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Name, validation.Required, validation.Length(1, 10)),
		validation.Field(&w.Images),
	)
}

/*
TestFromOzzo_NestedPaths verifies nested errors flatten into dotted, sorted paths.
*/
func TestFromOzzo_NestedPaths(t *testing.T) {
	err := validate.Check(wallpaperInput{
		Name:   "",
		Images: []imageInput{{URL: "ok"}, {URL: ""}},
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	require.Len(t, ae.Details, 2)
	assert.Equal(t, "images.1.url", ae.Details[0].Field)
	assert.Equal(t, "name", ae.Details[1].Field)
}

/*
TestFromOzzo_PortugueseMessages verifies default rule texts are translated with their parameters.
*/
func TestFromOzzo_PortugueseMessages(t *testing.T) {
	err := validate.Check(wallpaperInput{
		Name:   "muito longo demais",
		Images: []imageInput{{URL: ""}},
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 2)
	assert.Equal(t, "Campo obrigatório", ae.Details[0].Message)
	assert.Equal(t, "Deve ter entre 1 e 10 itens ou caracteres", ae.Details[1].Message)

	ids := validation.Validate([]int64{5, 0}, validation.Each(validation.Required, validation.Min(int64(1))))
	ae = apperr.As(validate.FromOzzo(ids))
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "1", ae.Details[0].Field)
	assert.Equal(t, "Campo obrigatório", ae.Details[0].Message)

	negative := validation.Validate([]int64{-2}, validation.Each(validation.Required, validation.Min(int64(1))))
	ae = apperr.As(validate.FromOzzo(negative))
	require.NotNil(t, ae)
	assert.Equal(t, "Deve ser no mínimo 1", ae.Details[0].Message)
}

/*
TestFromOzzo_Root verifies a bare error lands under the root field.
*/
func TestFromOzzo_Root(t *testing.T) {
	err := validate.FromOzzo(errors.New("must not be empty"))

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, apperr.RootField, ae.Details[0].Field)
}

/*
TestFromOzzo_Internal verifies broken rules surface as internal errors.
*/
func TestFromOzzo_Internal(t *testing.T) {
	err := validate.FromOzzo(validation.NewInternalError(errors.New("bad rule")))
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))

	assert.NoError(t, validate.FromOzzo(nil))
}

/*
TestValidator_Chain tests the chainable validator accumulation.
*/
func TestValidator_Chain(t *testing.T) {
	tests := []struct {
		name   string
		build  func(v *validate.Validator)
		fields []string
	}{
		{"all_valid", func(v *validate.Validator) {
			v.Required("name", "Leituras").MaxLen("name", "Leituras", 20).OneOf("status", "PUBLIC", "PUBLIC", "PRIVATE")
		}, nil},
		{"required_whitespace", func(v *validate.Validator) { v.Required("name", "   ") }, []string{"name"}},
		{"too_long", func(v *validate.Validator) { v.MaxLen("name", "ããããã", 4) }, []string{"name"}},
		{"one_of", func(v *validate.Validator) { v.OneOf("status", "HIDDEN", "PUBLIC", "PRIVATE") }, []string{"status"}},
		{"custom_multiple", func(v *validate.Validator) {
			v.Custom("art", true, "x").Custom("story", false, "y").Custom("pacing", true, "z")
		}, []string{"art", "pacing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.build(v)

			if tt.fields == nil {
				assert.False(t, v.HasErrors())
				assert.NoError(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			require.Len(t, ae.Details, len(tt.fields))
			for i, field := range tt.fields {
				assert.Equal(t, field, ae.Details[i].Field)
			}
		})
	}
}
