// Package document turns a model.Form into the canonical hotel configuration
// document and back. The JSON layout is:
//
//	{
//	  "partners": { "<id>": { "commission": 15, "codes": ["A", "B"] } },
//	  "displayOrder": { "rooms": ["..."], "plans": ["..."] }
//	}
//
// Partner keys keep the order in which they were first inserted.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-hotelconfig/pkg/model"
)

const (
	// DefaultFilename is the name offered for exported documents.
	DefaultFilename = "config_hotel.json"
	// MIMEType is the content type of exported documents.
	MIMEType = "application/json"
)

// ErrInvalidCommission is returned by ParseCommission for text that is not a
// finite number.
var ErrInvalidCommission = errors.New("document: commission must be a number")

// Document is the serialized configuration.
type Document struct {
	Partners     *PartnerMap  `json:"partners"`
	DisplayOrder DisplayOrder `json:"displayOrder"`
}

// PartnerConfig is the value stored per partner identifier. A nil Commission
// serializes as null.
type PartnerConfig struct {
	Commission *float64 `json:"commission"`
	Codes      []string `json:"codes"`
}

// DisplayOrder lists room and plan names in display order.
type DisplayOrder struct {
	Rooms []string `json:"rooms"`
	Plans []string `json:"plans"`
}

// New returns an empty document whose lists serialize as [] rather than null.
func New() Document {
	return Document{
		Partners:     NewPartnerMap(),
		DisplayOrder: DisplayOrder{Rooms: []string{}, Plans: []string{}},
	}
}

// Build serializes the form. Rows with a blank identifier or value are
// skipped; callers are expected to validate first. Duplicate partner
// identifiers overwrite earlier ones in place.
func Build(form *model.Form) Document {
	doc := New()
	if form == nil {
		return doc
	}

	for _, p := range form.Partners.Items() {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		commission, err := ParseCommission(p.Commission)
		if err != nil {
			commission = nil
		}
		doc.Partners.Set(name, PartnerConfig{
			Commission: commission,
			Codes:      SplitCodes(p.Codes),
		})
	}

	doc.DisplayOrder.Rooms = appendValues(doc.DisplayOrder.Rooms, form.Rooms.Items())
	doc.DisplayOrder.Plans = appendValues(doc.DisplayOrder.Plans, form.Plans.Items())
	return doc
}

func appendValues(dst []string, entries []model.Entry) []string {
	for _, e := range entries {
		if v := strings.TrimSpace(e.Value); v != "" {
			dst = append(dst, v)
		}
	}
	return dst
}

// ParseCommission reads an optional commission. Blank text yields nil.
func ParseCommission(raw string) (*float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCommission, raw)
	}
	return &value, nil
}

// FormatCommission renders a commission back into field text.
func FormatCommission(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

// SplitCodes splits textarea content on line breaks, trimming each line and
// dropping blank ones. The result is never nil.
func SplitCodes(raw string) []string {
	codes := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if code := strings.TrimSpace(line); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// Marshal renders doc with two-space indentation and no trailing newline.
// HTML characters are left unescaped.
func Marshal(doc Document) ([]byte, error) {
	doc = normalize(doc)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("document: encode: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Parse decodes a previously exported document.
func Parse(data []byte) (Document, error) {
	doc := New()
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, errors.New("document: empty input")
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("document: decode: %w", err)
	}
	return normalize(doc), nil
}

// ToForm loads a document into a fresh, editable form.
func ToForm(doc Document, opts ...model.FormOption) *model.Form {
	form := model.NewForm(opts...)
	doc = normalize(doc)
	for _, key := range doc.Partners.Keys() {
		cfg, _ := doc.Partners.Get(key)
		form.AddPartner(key, FormatCommission(cfg.Commission), strings.Join(cfg.Codes, "\n"))
	}
	for _, room := range doc.DisplayOrder.Rooms {
		form.AddRoom(room)
	}
	for _, plan := range doc.DisplayOrder.Plans {
		form.AddPlan(plan)
	}
	return form
}

func normalize(doc Document) Document {
	if doc.Partners == nil {
		doc.Partners = NewPartnerMap()
	}
	for _, key := range doc.Partners.Keys() {
		cfg, _ := doc.Partners.Get(key)
		if cfg.Codes == nil {
			cfg.Codes = []string{}
			doc.Partners.Set(key, cfg)
		}
	}
	if doc.DisplayOrder.Rooms == nil {
		doc.DisplayOrder.Rooms = []string{}
	}
	if doc.DisplayOrder.Plans == nil {
		doc.DisplayOrder.Plans = []string{}
	}
	return doc
}
