package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Form is the application state edited by a session: the partner list plus
// the room and plan display orders. It is passed explicitly to validators,
// serializers and renderers; nothing in this module keeps it in globals.
type Form struct {
	Partners *Collection[Partner]
	Rooms    *Collection[Entry]
	Plans    *Collection[Entry]

	newID func() uuid.UUID
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithIDGenerator overrides how row identifiers are minted. Tests use it to
// obtain predictable identifiers.
func WithIDGenerator(fn func() uuid.UUID) FormOption {
	return func(f *Form) {
		if fn != nil {
			f.newID = fn
		}
	}
}

// NewForm returns an empty form.
func NewForm(opts ...FormOption) *Form {
	f := &Form{
		Partners: NewCollection[Partner](),
		Rooms:    NewCollection[Entry](),
		Plans:    NewCollection[Entry](),
		newID:    uuid.New,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

func (f *Form) mint() uuid.UUID {
	if f.newID == nil {
		return uuid.New()
	}
	return f.newID()
}

// AddPartner appends a partner row and returns its identifier.
func (f *Form) AddPartner(name, commission, codes string) uuid.UUID {
	p := Partner{ID: f.mint(), Name: name, Commission: commission, Codes: codes}
	// mint never repeats, Add cannot fail here
	_ = f.Partners.Add(p)
	return p.ID
}

// AddRoom appends a room type row.
func (f *Form) AddRoom(value string) uuid.UUID {
	e := Entry{ID: f.mint(), Value: value}
	_ = f.Rooms.Add(e)
	return e.ID
}

// AddPlan appends a rate plan row.
func (f *Form) AddPlan(value string) uuid.UUID {
	e := Entry{ID: f.mint(), Value: value}
	_ = f.Plans.Add(e)
	return e.ID
}

// Add appends a new row to kind, optionally pre-filled from values.
func (f *Form) Add(kind Kind, values Values) (uuid.UUID, error) {
	switch kind {
	case KindPartners:
		p := Partner{ID: f.mint()}
		for field, value := range values {
			if err := setPartnerField(&p, field, value); err != nil {
				return uuid.Nil, err
			}
		}
		if err := f.Partners.Add(p); err != nil {
			return uuid.Nil, err
		}
		return p.ID, nil
	case KindRooms, KindPlans:
		e := Entry{ID: f.mint()}
		for field, value := range values {
			if err := setEntryField(&e, field, value); err != nil {
				return uuid.Nil, err
			}
		}
		if err := f.entries(kind).Add(e); err != nil {
			return uuid.Nil, err
		}
		return e.ID, nil
	default:
		return uuid.Nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Remove deletes a row from kind.
func (f *Form) Remove(kind Kind, id uuid.UUID) error {
	switch kind {
	case KindPartners:
		return f.Partners.Remove(id)
	case KindRooms, KindPlans:
		return f.entries(kind).Remove(id)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Move swaps a row with its neighbour; false means the row was at a boundary.
func (f *Form) Move(kind Kind, id uuid.UUID, dir Direction) (bool, error) {
	switch kind {
	case KindPartners:
		return f.Partners.Move(id, dir)
	case KindRooms, KindPlans:
		return f.entries(kind).Move(id, dir)
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// SetField writes raw text into one field of an existing row.
func (f *Form) SetField(kind Kind, id uuid.UUID, field, value string) error {
	switch kind {
	case KindPartners:
		var fieldErr error
		err := f.Partners.Update(id, func(p *Partner) {
			fieldErr = setPartnerField(p, field, value)
		})
		if err != nil {
			return err
		}
		return fieldErr
	case KindRooms, KindPlans:
		var fieldErr error
		err := f.entries(kind).Update(id, func(e *Entry) {
			fieldErr = setEntryField(e, field, value)
		})
		if err != nil {
			return err
		}
		return fieldErr
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Len reports how many rows kind holds.
func (f *Form) Len(kind Kind) int {
	switch kind {
	case KindPartners:
		return f.Partners.Len()
	case KindRooms, KindPlans:
		return f.entries(kind).Len()
	default:
		return 0
	}
}

// Entries exposes the room or plan collection for kind.
func (f *Form) Entries(kind Kind) (*Collection[Entry], error) {
	switch kind {
	case KindRooms, KindPlans:
		return f.entries(kind), nil
	default:
		return nil, fmt.Errorf("%w: %q has no sortable entries", ErrUnknownKind, kind)
	}
}

func (f *Form) entries(kind Kind) *Collection[Entry] {
	if kind == KindPlans {
		return f.Plans
	}
	return f.Rooms
}

// Clone returns an independent copy of the form.
func (f *Form) Clone() *Form {
	return &Form{
		Partners: f.Partners.Clone(),
		Rooms:    f.Rooms.Clone(),
		Plans:    f.Plans.Clone(),
		newID:    f.newID,
	}
}

func setPartnerField(p *Partner, field, value string) error {
	switch field {
	case FieldName:
		p.Name = value
	case FieldCommission:
		p.Commission = value
	case FieldCodes:
		p.Codes = value
	default:
		return fmt.Errorf("%w: partner has no %q", ErrUnknownField, field)
	}
	return nil
}

func setEntryField(e *Entry, field, value string) error {
	if field != FieldValue {
		return fmt.Errorf("%w: entry has no %q", ErrUnknownField, field)
	}
	e.Value = value
	return nil
}
