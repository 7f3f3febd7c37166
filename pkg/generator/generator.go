// Package generator wires the validate → serialize → self-check pipeline
// that turns an edited form into config_hotel.json.
package generator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-hotelconfig/pkg/document"
	"github.com/goliatone/go-hotelconfig/pkg/model"
	"github.com/goliatone/go-hotelconfig/pkg/schema"
	"github.com/goliatone/go-hotelconfig/pkg/validation"
)

// Option customises the generator configuration.
type Option func(*Generator)

// WithValidationOptions forwards options to validation.Validate.
func WithValidationOptions(opts ...validation.Option) Option {
	return func(g *Generator) {
		g.validation = append(g.validation, opts...)
	}
}

// WithDuplicatePolicy is shorthand for the matching validation option.
func WithDuplicatePolicy(policy validation.DuplicatePolicy) Option {
	return WithValidationOptions(validation.WithDuplicatePolicy(policy))
}

// WithSchemaCheck toggles the post-serialization schema check (on by default).
func WithSchemaCheck(enabled bool) Option {
	return func(g *Generator) {
		g.schemaCheck = enabled
	}
}

// WithLogger attaches a logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generator validates forms and produces configuration documents. It holds no
// per-form state and can be shared.
type Generator struct {
	validation  []validation.Option
	schemaCheck bool
	logger      *zap.Logger
}

// New constructs a Generator applying any provided options.
func New(options ...Option) *Generator {
	g := &Generator{
		schemaCheck: true,
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// Output is the result of a successful (or rejected) generation.
type Output struct {
	Document   document.Document
	JSON       []byte
	Validation validation.Result
}

// Generate validates form and, only when every field passes, serializes it.
// An invalid form yields an error matching validation.ErrInvalid, no JSON and
// the validation result describing which fields to highlight.
func (g *Generator) Generate(ctx context.Context, form *model.Form) (Output, error) {
	if ctx == nil {
		return Output{}, errors.New("generator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	if form == nil {
		return Output{}, errors.New("generator: form is required")
	}

	result := validation.Validate(form, g.validation...)
	if !result.Valid {
		g.logger.Debug("form rejected", zap.Int("issues", len(result.Issues)))
		return Output{Validation: result}, result.Err()
	}

	doc := document.Build(form)
	raw, err := document.Marshal(doc)
	if err != nil {
		return Output{Validation: result}, fmt.Errorf("generator: %w", err)
	}

	if g.schemaCheck {
		if err := schema.Check(raw); err != nil {
			g.logger.Error("generated document failed schema check", zap.Error(err))
			return Output{Validation: result}, fmt.Errorf("generator: %w", err)
		}
	}

	g.logger.Debug("document generated",
		zap.Int("partners", doc.Partners.Len()),
		zap.Int("rooms", len(doc.DisplayOrder.Rooms)),
		zap.Int("plans", len(doc.DisplayOrder.Plans)),
	)

	return Output{Document: doc, JSON: raw, Validation: result}, nil
}
