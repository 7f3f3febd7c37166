package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-hotelconfig/pkg/model"
)

func TestForm_AddWithInitialValues(t *testing.T) {
	form := model.NewForm()

	id, err := form.Add(model.KindPartners, model.Values{
		model.FieldName:       "Agoda (6144)",
		model.FieldCommission: "14.5",
		model.FieldCodes:      "OTA-RO-FLEX",
	})
	if err != nil {
		t.Fatalf("add partner: %v", err)
	}

	got, ok := form.Partners.Get(id)
	if !ok {
		t.Fatalf("partner %s not stored", id)
	}
	want := model.Partner{ID: id, Name: "Agoda (6144)", Commission: "14.5", Codes: "OTA-RO-FLEX"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("partner mismatch (-want +got):\n%s", diff)
	}

	if _, err := form.Add(model.KindRooms, nil); err != nil {
		t.Fatalf("add blank room: %v", err)
	}
	if form.Len(model.KindRooms) != 1 {
		t.Fatalf("expected one room, got %d", form.Len(model.KindRooms))
	}
}

func TestForm_AddRejectsUnknownFieldsAndKinds(t *testing.T) {
	form := model.NewForm()

	if _, err := form.Add(model.KindRooms, model.Values{model.FieldName: "x"}); !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if form.Len(model.KindRooms) != 0 {
		t.Fatalf("rejected add must not append a row")
	}
	if _, err := form.Add(model.Kind("suites"), nil); !errors.Is(err, model.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestForm_CollectionsAreIndependent(t *testing.T) {
	form := model.NewForm()
	room := form.AddRoom("Double")
	form.AddPlan("Flex")

	if err := form.Remove(model.KindPlans, room); !errors.Is(err, model.ErrEntryNotFound) {
		t.Fatalf("room id must not resolve in plans, got %v", err)
	}
	if form.Len(model.KindRooms) != 1 || form.Len(model.KindPlans) != 1 {
		t.Fatalf("unexpected lengths rooms=%d plans=%d", form.Len(model.KindRooms), form.Len(model.KindPlans))
	}
}

func TestForm_WithIDGenerator(t *testing.T) {
	var n byte
	form := model.NewForm(model.WithIDGenerator(func() uuid.UUID {
		n++
		return uuid.UUID{15: n}
	}))

	first := form.AddRoom("a")
	second := form.AddPlan("b")

	if first != (uuid.UUID{15: 1}) || second != (uuid.UUID{15: 2}) {
		t.Fatalf("unexpected ids %s %s", first, second)
	}
}

func TestPath_RoundTrip(t *testing.T) {
	id := uuid.New()
	path := model.Path(model.KindPartners, id, model.FieldName)

	kind, gotID, field, err := model.SplitPath(path)
	if err != nil {
		t.Fatalf("split path: %v", err)
	}
	if kind != model.KindPartners || gotID != id || field != model.FieldName {
		t.Fatalf("unexpected split: %s %s %s", kind, gotID, field)
	}

	if _, _, _, err := model.SplitPath("partners.not-a-uuid.name"); err == nil {
		t.Fatalf("expected malformed id error")
	}
}

func TestParseDirectionAndKind(t *testing.T) {
	if d, err := model.ParseDirection("UP"); err != nil || d != model.Up {
		t.Fatalf("parse up: %v %v", d, err)
	}
	if d, err := model.ParseDirection("down"); err != nil || d != model.Down {
		t.Fatalf("parse down: %v %v", d, err)
	}
	if _, err := model.ParseDirection("left"); !errors.Is(err, model.ErrUnknownDirection) {
		t.Fatalf("expected ErrUnknownDirection, got %v", err)
	}
	if k, err := model.ParseKind("Plan"); err != nil || k != model.KindPlans {
		t.Fatalf("parse kind: %v %v", k, err)
	}
}
