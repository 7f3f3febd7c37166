// Package schema describes the configuration document as an OpenAPI 3 schema
// and checks serialized documents against it. Only structure and types are
// checked: required keys, a nullable number commission, string lists.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	docOnce   sync.Once
	docSchema *openapi3.Schema
)

// Document returns the schema of config_hotel.json. The returned value is
// shared; callers must not mutate it.
func Document() *openapi3.Schema {
	docOnce.Do(func() {
		names := openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())

		partner := openapi3.NewObjectSchema().
			WithProperty("commission", openapi3.NewFloat64Schema().WithNullable()).
			WithProperty("codes", names).
			WithoutAdditionalProperties()
		partner.Required = []string{"commission", "codes"}

		displayOrder := openapi3.NewObjectSchema().
			WithProperty("rooms", names).
			WithProperty("plans", names).
			WithoutAdditionalProperties()
		displayOrder.Required = []string{"rooms", "plans"}

		doc := openapi3.NewObjectSchema().
			WithProperty("partners", openapi3.NewObjectSchema().WithAdditionalProperties(partner)).
			WithProperty("displayOrder", displayOrder).
			WithoutAdditionalProperties()
		doc.Required = []string{"partners", "displayOrder"}
		doc.Title = "Hotel configuration"

		docSchema = doc
	})
	return docSchema
}

// JSON renders the schema with two-space indentation.
func JSON() ([]byte, error) {
	out, err := json.MarshalIndent(Document(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: encode: %w", err)
	}
	return out, nil
}

// Violation is one mismatch between a document and the schema.
type Violation struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (v Violation) Error() string {
	if v.Path == "" {
		return v.Reason
	}
	return v.Path + ": " + v.Reason
}

// CheckError collects every violation found by Check.
type CheckError struct {
	Violations []Violation
}

func (e *CheckError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Error())
	}
	return "schema: document does not match: " + strings.Join(parts, "; ")
}

// Check decodes raw JSON and visits it against Document().
func Check(raw []byte) error {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("schema: decode: %w", err)
	}

	err := Document().VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	return &CheckError{Violations: violations(err)}
}

func violations(err error) []Violation {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []Violation
		for _, item := range multi {
			out = append(out, violations(item)...)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []Violation{{
			Path:   pointer(schemaErr.JSONPointer()),
			Reason: schemaErr.Reason,
		}}
	}
	return []Violation{{Reason: err.Error()}}
}

func pointer(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	escaped := make([]string, len(segments))
	for i, s := range segments {
		s = strings.ReplaceAll(s, "~", "~0")
		escaped[i] = strings.ReplaceAll(s, "/", "~1")
	}
	return "/" + strings.Join(escaped, "/")
}
