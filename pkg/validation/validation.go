package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/goliatone/go-hotelconfig/pkg/document"
	"github.com/goliatone/go-hotelconfig/pkg/model"
)

// ErrInvalid is matched (errors.Is) by every error returned from Result.Err.
var ErrInvalid = errors.New("validation: form is invalid")

// Issue represents one failed field with its location metadata.
type Issue struct {
	Path    string     `json:"path"`
	Kind    model.Kind `json:"kind"`
	ID      uuid.UUID  `json:"id"`
	Field   string     `json:"field"`
	Code    Code       `json:"code"`
	Message string     `json:"message"`
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Code classifies an issue.
type Code string

const (
	CodeRequired  Code = "required"
	CodeNumber    Code = "number"
	CodeDuplicate Code = "duplicate"
)

// Result captures validation outcomes for a whole form.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// DuplicatePolicy decides what happens when two partners share an identifier.
type DuplicatePolicy int

const (
	// DuplicateReject flags every repeated identifier after the first.
	DuplicateReject DuplicatePolicy = iota
	// DuplicateLastWriteWins accepts repeats; the serializer keeps the last one.
	DuplicateLastWriteWins
)

// ParseDuplicatePolicy accepts "reject" or "last-write-wins".
func ParseDuplicatePolicy(raw string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "reject":
		return DuplicateReject, nil
	case "last-write-wins", "overwrite":
		return DuplicateLastWriteWins, nil
	default:
		return DuplicateReject, fmt.Errorf("validation: unknown duplicate policy %q", raw)
	}
}

func (p DuplicatePolicy) String() string {
	if p == DuplicateLastWriteWins {
		return "last-write-wins"
	}
	return "reject"
}

// Options configures Validate.
type Options struct {
	Duplicates DuplicatePolicy
}

// Option mutates Options.
type Option func(*Options)

// WithDuplicatePolicy selects how repeated partner identifiers are treated.
func WithDuplicatePolicy(policy DuplicatePolicy) Option {
	return func(o *Options) {
		o.Duplicates = policy
	}
}

// Validate scans every row of every collection. Validation is all-or-nothing:
// the result is valid only when no issue was found.
func Validate(form *model.Form, opts ...Option) Result {
	var cfg Options
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	result := Result{Valid: true}
	if form == nil {
		return result
	}

	seen := make(map[string]struct{}, form.Partners.Len())
	for _, p := range form.Partners.Items() {
		name := strings.TrimSpace(p.Name)
		switch {
		case name == "":
			result.add(model.KindPartners, p.ID, model.FieldName, CodeRequired, "partner identifier is required")
		case cfg.Duplicates == DuplicateReject:
			if _, dup := seen[name]; dup {
				result.add(model.KindPartners, p.ID, model.FieldName, CodeDuplicate,
					fmt.Sprintf("partner identifier %q is already used", name))
			}
			seen[name] = struct{}{}
		}

		if _, err := document.ParseCommission(p.Commission); err != nil {
			result.add(model.KindPartners, p.ID, model.FieldCommission, CodeNumber, "commission must be a number")
		}
	}

	for _, kind := range []model.Kind{model.KindRooms, model.KindPlans} {
		entries, _ := form.Entries(kind)
		for _, e := range entries.Items() {
			if strings.TrimSpace(e.Value) == "" {
				result.add(kind, e.ID, model.FieldValue, CodeRequired, requiredMessage(kind))
			}
		}
	}

	return result
}

func requiredMessage(kind model.Kind) string {
	if kind == model.KindPlans {
		return "rate plan name is required"
	}
	return "room type name is required"
}

func (r *Result) add(kind model.Kind, id uuid.UUID, field string, code Code, message string) {
	r.Valid = false
	r.Issues = append(r.Issues, Issue{
		Path:    model.Path(kind, id, field),
		Kind:    kind,
		ID:      id,
		Field:   field,
		Code:    code,
		Message: message,
	})
}

// Fields returns the messages per flagged field path. Front ends use it to
// mark invalid inputs.
func (r Result) Fields() map[string][]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r.Issues))
	for _, issue := range r.Issues {
		out[issue.Path] = append(out[issue.Path], issue.Message)
	}
	return out
}

// Flagged reports whether path carries at least one issue.
func (r Result) Flagged(path string) bool {
	for _, issue := range r.Issues {
		if issue.Path == path {
			return true
		}
	}
	return false
}

// Message is the single aggregate message shown to the user, empty when the
// form is valid.
func (r Result) Message() string {
	if r.Valid || len(r.Issues) == 0 {
		return ""
	}
	onlyRequired := true
	for _, issue := range r.Issues {
		if issue.Code != CodeRequired {
			onlyRequired = false
			break
		}
	}
	if onlyRequired {
		return "Please fill in all required fields (marked with *)."
	}
	if len(r.Issues) == 1 {
		return "Please correct the highlighted field."
	}
	return fmt.Sprintf("Please correct the %d highlighted fields.", len(r.Issues))
}

// Err returns nil for a valid result and an *Error otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	var combined error
	for _, issue := range r.Issues {
		combined = multierr.Append(combined, issue)
	}
	return &Error{Result: r, cause: combined}
}

// Error wraps an invalid Result.
type Error struct {
	Result Result
	cause  error
}

func (e *Error) Error() string {
	msg := e.Result.Message()
	if e.cause == nil {
		return "validation: " + msg
	}
	return fmt.Sprintf("validation: %s: %v", msg, e.cause)
}

// Is matches ErrInvalid.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Unwrap exposes the individual issues.
func (e *Error) Unwrap() []error {
	return multierr.Errors(e.cause)
}
