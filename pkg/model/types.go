package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies one of the three repeatable collections held by a Form.
type Kind string

const (
	KindPartners Kind = "partners"
	KindRooms    Kind = "rooms"
	KindPlans    Kind = "plans"
)

// Kinds lists the collections in display order.
func Kinds() []Kind {
	return []Kind{KindPartners, KindRooms, KindPlans}
}

// ParseKind normalises raw input (case-insensitive, singular accepted) into a
// Kind.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "partners", "partner":
		return KindPartners, nil
	case "rooms", "room":
		return KindRooms, nil
	case "plans", "plan":
		return KindPlans, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
}

// Direction is the offset applied by Move.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// ParseDirection accepts "up"/"down" (or "-1"/"1").
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "up", "-1":
		return Up, nil
	case "down", "1", "+1":
		return Down, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, raw)
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Field names addressable through Form.SetField and validation paths.
const (
	FieldName       = "name"
	FieldCommission = "commission"
	FieldCodes      = "codes"
	FieldValue      = "value"
)

var (
	// ErrEntryNotFound is returned when an identifier is not part of a collection.
	ErrEntryNotFound = errors.New("model: entry not found")
	// ErrUnknownKind is returned for collection names outside Kinds().
	ErrUnknownKind = errors.New("model: unknown collection")
	// ErrUnknownField is returned by SetField for names the row does not carry.
	ErrUnknownField = errors.New("model: unknown field")
	// ErrUnknownDirection is returned by ParseDirection.
	ErrUnknownDirection = errors.New("model: unknown direction")
)

// Item is implemented by every row stored in a Collection.
type Item interface {
	Key() uuid.UUID
}

// Partner is an OTA or sales channel row. Fields hold raw text as entered.
type Partner struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Commission string    `json:"commission" yaml:"commission"`
	Codes      string    `json:"codes" yaml:"codes"`
}

// Key implements Item.
func (p Partner) Key() uuid.UUID { return p.ID }

// Entry is a sortable room type or rate plan row.
type Entry struct {
	ID    uuid.UUID `json:"id" yaml:"id"`
	Value string    `json:"value" yaml:"value"`
}

// Key implements Item.
func (e Entry) Key() uuid.UUID { return e.ID }

// Values pre-fills a row created through Form.Add. Keys are field names
// (FieldName, FieldCommission, FieldCodes, FieldValue); unknown keys are
// rejected.
type Values map[string]string

// Path builds the dotted field path used for validation marks, e.g.
// "partners.<id>.name".
func Path(kind Kind, id uuid.UUID, field string) string {
	return string(kind) + "." + id.String() + "." + field
}

// SplitPath reverses Path.
func SplitPath(path string) (Kind, uuid.UUID, string, error) {
	parts := strings.Split(path, ".")
	if len(parts) != 3 {
		return "", uuid.Nil, "", fmt.Errorf("model: malformed path %q", path)
	}
	kind, err := ParseKind(parts[0])
	if err != nil {
		return "", uuid.Nil, "", err
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return "", uuid.Nil, "", fmt.Errorf("model: malformed id in path %q: %w", path, err)
	}
	return kind, id, parts[2], nil
}
