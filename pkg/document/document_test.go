package document_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hotelconfig/pkg/document"
	"github.com/goliatone/go-hotelconfig/pkg/model"
)

func ptr(f float64) *float64 { return &f }

func TestBuild_BookingExample(t *testing.T) {
	form := model.NewForm()
	form.AddPartner("Booking.com (1234)", "15", "OTA-RO-FLEX\nOTA-RO-NANR")

	doc := document.Build(form)

	got, ok := doc.Partners.Get("Booking.com (1234)")
	if !ok {
		t.Fatalf("partner missing from document")
	}
	want := document.PartnerConfig{Commission: ptr(15), Codes: []string{"OTA-RO-FLEX", "OTA-RO-NANR"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("partner mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_CanonicalLayout(t *testing.T) {
	form := model.NewForm()
	form.AddPartner("Booking.com (1234)", "15", "OTA-RO-FLEX\nOTA-RO-NANR")
	form.AddPartner("Agoda <6144>", "", "")
	form.AddRoom("Chambre Double Classique")
	form.AddPlan("OTA-RO-FLEX - OTA RO FLEX")

	out, err := document.Marshal(document.Build(form))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{
  "partners": {
    "Booking.com (1234)": {
      "commission": 15,
      "codes": [
        "OTA-RO-FLEX",
        "OTA-RO-NANR"
      ]
    },
    "Agoda <6144>": {
      "commission": null,
      "codes": []
    }
  },
  "displayOrder": {
    "rooms": [
      "Chambre Double Classique"
    ],
    "plans": [
      "OTA-RO-FLEX - OTA RO FLEX"
    ]
  }
}`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_EmptyForm(t *testing.T) {
	out, err := document.Marshal(document.Build(model.NewForm()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{
  "partners": {},
  "displayOrder": {
    "rooms": [],
    "plans": []
  }
}`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_EmptyCommissionIsNull(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		form := model.NewForm()
		form.AddPartner("Expedia", raw, "")
		out, err := document.Marshal(document.Build(form))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(out, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		partner := decoded["partners"].(map[string]any)["Expedia"].(map[string]any)
		value, present := partner["commission"]
		if !present {
			t.Fatalf("commission key must be present")
		}
		if value != nil {
			t.Fatalf("expected null commission for %q, got %v", raw, value)
		}
	}
}

func TestSplitCodes_DropsBlankLines(t *testing.T) {
	got := document.SplitCodes("\n  A  \n\n\t\nB\r\n   \nC\n")
	if diff := cmp.Diff([]string{"A", "B", "C"}, got); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if got := document.SplitCodes(""); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestParseCommission(t *testing.T) {
	cases := []struct {
		raw     string
		want    *float64
		wantErr bool
	}{
		{raw: "", want: nil},
		{raw: "15", want: ptr(15)},
		{raw: " 14.5 ", want: ptr(14.5)},
		{raw: "0", want: ptr(0)},
		{raw: "abc", wantErr: true},
		{raw: "NaN", wantErr: true},
		{raw: "Inf", wantErr: true},
	}
	for _, tc := range cases {
		got, err := document.ParseCommission(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, document.ErrInvalidCommission) {
				t.Fatalf("%q: expected ErrInvalidCommission, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.raw, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("%q: mismatch (-want +got):\n%s", tc.raw, diff)
		}
	}
}

func TestBuild_DuplicateIdentifierOverwritesInPlace(t *testing.T) {
	form := model.NewForm()
	form.AddPartner("A", "1", "")
	form.AddPartner("B", "2", "")
	form.AddPartner(" A ", "3", "X")

	doc := document.Build(form)

	if diff := cmp.Diff([]string{"A", "B"}, doc.Partners.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	got, _ := doc.Partners.Get("A")
	if diff := cmp.Diff(document.PartnerConfig{Commission: ptr(3), Codes: []string{"X"}}, got); diff != "" {
		t.Fatalf("last write should win (-want +got):\n%s", diff)
	}
}

func TestMarshal_Idempotent(t *testing.T) {
	form := model.NewForm()
	form.AddPartner("Booking.com (1234)", "15", "OTA-RO-FLEX")
	form.AddRoom("Suite")

	first, err := document.Marshal(document.Build(form))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := document.Marshal(document.Build(form))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("serialization is not stable:\n%s\n---\n%s", first, second)
	}
}

func TestRoundTrip_ParseMatchesForm(t *testing.T) {
	form := model.NewForm()
	form.AddPartner("Zeta", "9.75", "Z1\nZ2")
	form.AddPartner("Alpha", "", "A1")
	form.AddRoom("Double")
	form.AddRoom("Single")
	form.AddPlan("Flex")

	out, err := document.Marshal(document.Build(form))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, err := document.Parse(out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if diff := cmp.Diff([]string{"Zeta", "Alpha"}, parsed.Partners.Keys()); diff != "" {
		t.Fatalf("partner order mismatch (-want +got):\n%s", diff)
	}
	zeta, _ := parsed.Partners.Get("Zeta")
	if diff := cmp.Diff(document.PartnerConfig{Commission: ptr(9.75), Codes: []string{"Z1", "Z2"}}, zeta); diff != "" {
		t.Fatalf("zeta mismatch (-want +got):\n%s", diff)
	}
	alpha, _ := parsed.Partners.Get("Alpha")
	if diff := cmp.Diff(document.PartnerConfig{Codes: []string{"A1"}}, alpha); diff != "" {
		t.Fatalf("alpha mismatch (-want +got):\n%s", diff)
	}
	want := document.DisplayOrder{Rooms: []string{"Double", "Single"}, Plans: []string{"Flex"}}
	if diff := cmp.Diff(want, parsed.DisplayOrder); diff != "" {
		t.Fatalf("display order mismatch (-want +got):\n%s", diff)
	}

	reloaded, err := document.Marshal(document.Build(document.ToForm(parsed)))
	if err != nil {
		t.Fatalf("marshal reloaded: %v", err)
	}
	if diff := cmp.Diff(string(out), string(reloaded)); diff != "" {
		t.Fatalf("reloaded form serializes differently (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := document.Parse([]byte("  ")); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := document.Parse([]byte(`{"partners": []}`)); err == nil {
		t.Fatalf("expected error for array partners")
	}
}
