package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-hotelconfig/pkg/model"
)

// ErrBadRequest marks submissions that cannot be turned into a form.
var ErrBadRequest = errors.New("server: bad request")

// submitted is a decoded page submission.
type submitted struct {
	form *model.Form
	// markup lists the field paths whose text looks like HTML. The text is
	// kept verbatim.
	markup []string
}

// readForm rebuilds the form from a submission. Row order comes from the
// repeated "<kind>" fields, values from "<kind>.<id>.<field>".
func readForm(r *http.Request) (submitted, error) {
	if err := r.ParseForm(); err != nil {
		return submitted{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	values := r.PostForm

	sub := submitted{form: model.NewForm()}
	text := func(path string) string {
		v := normalizeText(values.Get(path))
		if containsMarkup(v) {
			sub.markup = append(sub.markup, path)
		}
		return v
	}

	form := sub.form
	for _, raw := range values[string(model.KindPartners)] {
		id, err := parseID(raw)
		if err != nil {
			return submitted{}, err
		}
		field := func(name string) string {
			return text(model.Path(model.KindPartners, id, name))
		}
		p := model.Partner{
			ID:         id,
			Name:       field(model.FieldName),
			Commission: field(model.FieldCommission),
			Codes:      field(model.FieldCodes),
		}
		if err := form.Partners.Add(p); err != nil {
			return submitted{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	}

	for _, kind := range []model.Kind{model.KindRooms, model.KindPlans} {
		entries, _ := form.Entries(kind)
		for _, raw := range values[string(kind)] {
			id, err := parseID(raw)
			if err != nil {
				return submitted{}, err
			}
			e := model.Entry{
				ID:    id,
				Value: text(model.Path(kind, id, model.FieldValue)),
			}
			if err := entries.Add(e); err != nil {
				return submitted{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
			}
		}
	}
	return sub, nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid row id %q", ErrBadRequest, raw)
	}
	return id, nil
}

// actionKind enumerates the submit buttons of the page.
type actionKind string

const (
	actionAdd      actionKind = "add"
	actionRemove   actionKind = "remove"
	actionMove     actionKind = "move"
	actionGenerate actionKind = "generate"
)

// action is a parsed "action" field: "add:<kind>", "remove:<kind>:<id>",
// "move:<kind>:<id>:<up|down>" or "generate".
type action struct {
	kind      actionKind
	list      model.Kind
	id        uuid.UUID
	direction model.Direction
}

func parseAction(raw string) (action, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	bad := fmt.Errorf("%w: unknown action %q", ErrBadRequest, raw)

	switch actionKind(parts[0]) {
	case actionGenerate:
		if len(parts) != 1 {
			return action{}, bad
		}
		return action{kind: actionGenerate}, nil
	case actionAdd:
		if len(parts) != 2 {
			return action{}, bad
		}
		list, err := model.ParseKind(parts[1])
		if err != nil {
			return action{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		return action{kind: actionAdd, list: list}, nil
	case actionRemove, actionMove:
		want := 3
		if actionKind(parts[0]) == actionMove {
			want = 4
		}
		if len(parts) != want {
			return action{}, bad
		}
		list, err := model.ParseKind(parts[1])
		if err != nil {
			return action{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		id, err := parseID(parts[2])
		if err != nil {
			return action{}, err
		}
		a := action{kind: actionKind(parts[0]), list: list, id: id}
		if a.kind == actionMove {
			dir, err := model.ParseDirection(parts[3])
			if err != nil {
				return action{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
			}
			a.direction = dir
		}
		return a, nil
	default:
		return action{}, bad
	}
}

// apply mutates form for every action except generate.
func (a action) apply(form *model.Form) error {
	var err error
	switch a.kind {
	case actionAdd:
		_, err = form.Add(a.list, nil)
	case actionRemove:
		err = form.Remove(a.list, a.id)
	case actionMove:
		_, err = form.Move(a.list, a.id, a.direction)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}
