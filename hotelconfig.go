// Package hotelconfig builds the hotel configuration document
// (config_hotel.json) from partner, room type and rate plan entries.
//
// The root package re-exports the common entry points; the pkg/ tree holds
// the form model, validation, serialization, export and the terminal and
// HTTP front ends.
package hotelconfig

import (
	"context"

	"github.com/goliatone/go-hotelconfig/pkg/document"
	"github.com/goliatone/go-hotelconfig/pkg/generator"
	"github.com/goliatone/go-hotelconfig/pkg/model"
	"github.com/goliatone/go-hotelconfig/pkg/schema"
	"github.com/goliatone/go-hotelconfig/pkg/seed"
)

// Form aliases model.Form for callers that only need the facade.
type Form = model.Form

// Document aliases document.Document.
type Document = document.Document

// NewForm returns an empty form.
func NewForm(opts ...model.FormOption) *Form {
	return model.NewForm(opts...)
}

// DefaultForm returns the sample form shown on first use.
func DefaultForm(opts ...model.FormOption) *Form {
	return seed.Default(opts...)
}

// LoadForm reads a seed file or a previously exported document.
func LoadForm(path string, opts ...model.FormOption) (*Form, error) {
	return seed.Load(path, opts...)
}

// Generate validates form and returns the serialized document. Invalid forms
// return an error matching validation.ErrInvalid.
func Generate(ctx context.Context, form *Form, options ...generator.Option) ([]byte, error) {
	out, err := generator.New(options...).Generate(ctx, form)
	if err != nil {
		return nil, err
	}
	return out.JSON, nil
}

// Schema returns the JSON schema of the generated document.
func Schema() ([]byte, error) {
	return schema.JSON()
}
