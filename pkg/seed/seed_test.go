package seed_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hotelconfig/pkg/model"
	"github.com/goliatone/go-hotelconfig/pkg/seed"
)

type snapshot struct {
	Partners [][3]string
	Rooms    []string
	Plans    []string
}

func snapshotOf(form *model.Form) snapshot {
	var s snapshot
	for _, p := range form.Partners.Items() {
		s.Partners = append(s.Partners, [3]string{p.Name, p.Commission, p.Codes})
	}
	for _, r := range form.Rooms.Items() {
		s.Rooms = append(s.Rooms, r.Value)
	}
	for _, p := range form.Plans.Items() {
		s.Plans = append(s.Plans, p.Value)
	}
	return s
}

func TestDefault(t *testing.T) {
	want := snapshot{
		Partners: [][3]string{
			{"Booking.com (1234)", "15", "OTA-RO-FLEX\nOTA-RO-NANR"},
			{"", "", ""},
		},
		Rooms: []string{"Chambre Double Classique", ""},
		Plans: []string{"OTA-RO-FLEX - OTA RO FLEX", ""},
	}
	if diff := cmp.Diff(want, snapshotOf(seed.Default())); diff != "" {
		t.Fatalf("default seed mismatch (-want +got):\n%s", diff)
	}
}

func TestEmpty(t *testing.T) {
	form := seed.Empty()
	for _, kind := range model.Kinds() {
		if got := form.Len(kind); got != 1 {
			t.Fatalf("%s: expected one blank row, got %d", kind, got)
		}
	}
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
partners:
  - name: Expedia
    commission: 18.5
    codes: [EXP-1, EXP-2]
rooms:
  - Suite
plans:
  - BAR
  - NANR
`)
	form, err := seed.Parse(data, "seed.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := snapshot{
		Partners: [][3]string{{"Expedia", "18.5", "EXP-1\nEXP-2"}},
		Rooms:    []string{"Suite"},
		Plans:    []string{"BAR", "NANR"},
	}
	if diff := cmp.Diff(want, snapshotOf(form)); diff != "" {
		t.Fatalf("yaml seed mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSON(t *testing.T) {
	data := []byte(`{"partners":[{"name":"Agoda","commission":"","codes":[]}],"rooms":["Twin"],"plans":[]}`)
	form, err := seed.Parse(data, "seed.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := snapshot{
		Partners: [][3]string{{"Agoda", "", ""}},
		Rooms:    []string{"Twin"},
	}
	if diff := cmp.Diff(want, snapshotOf(form)); diff != "" {
		t.Fatalf("json seed mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ExportedDocument(t *testing.T) {
	data := []byte(`{
  "partners": {
    "Booking.com (1234)": {"commission": 15, "codes": ["OTA-RO-FLEX"]},
    "Direct": {"commission": null, "codes": []}
  },
  "displayOrder": {"rooms": ["Double"], "plans": ["Flex"]}
}`)
	form, err := seed.Parse(data, "config_hotel.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := snapshot{
		Partners: [][3]string{
			{"Booking.com (1234)", "15", "OTA-RO-FLEX"},
			{"Direct", "", ""},
		},
		Rooms: []string{"Double"},
		Plans: []string{"Flex"},
	}
	if diff := cmp.Diff(want, snapshotOf(form)); diff != "" {
		t.Fatalf("document seed mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":   "   ",
		"garbage": "partners: [unterminated",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := seed.Parse([]byte(input), name); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte("rooms: [Loft]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	form, err := seed.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"Loft"}, snapshotOf(form).Rooms); diff != "" {
		t.Fatalf("rooms mismatch (-want +got):\n%s", diff)
	}

	if _, err := seed.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}
