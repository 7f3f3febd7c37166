package vanilla_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-hotelconfig/pkg/model"
	"github.com/goliatone/go-hotelconfig/pkg/renderers/vanilla"
	"github.com/goliatone/go-hotelconfig/pkg/validation"
)

func sequentialIDs() model.FormOption {
	n := 0
	return model.WithIDGenerator(func() uuid.UUID {
		n++
		var id uuid.UUID
		id[15] = byte(n)
		return id
	})
}

func sampleForm() *model.Form {
	form := model.NewForm(sequentialIDs())
	form.AddPartner("Booking.com (1234)", "15", "OTA-RO-FLEX\nOTA-RO-NANR")
	form.AddPartner("<b>Expedia</b>", "abc", "")
	form.AddRoom("Chambre Double Classique")
	form.AddRoom("")
	form.AddPlan("OTA-RO-FLEX - OTA RO FLEX")
	return form
}

func render(t *testing.T, r *vanilla.Renderer, view vanilla.View) string {
	t.Helper()
	out, err := r.Render(context.Background(), view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected output to contain %q", fragment)
		}
	}
}

func TestNewView_MarksInvalidFields(t *testing.T) {
	form := sampleForm()
	result := validation.Validate(form)
	view := vanilla.NewView(form, result)

	if view.Message == "" {
		t.Fatalf("expected aggregate message")
	}

	var flagged []string
	for _, row := range view.Partners {
		if row.Invalid {
			flagged = append(flagged, row.CommissionField)
		}
	}
	for _, row := range view.Rooms {
		if row.Invalid {
			flagged = append(flagged, row.ValueField)
		}
	}
	want := []string{
		"partners." + view.Partners[1].ID + ".commission",
		"rooms." + view.Rooms[1].ID + ".value",
	}
	if diff := cmp.Diff(want, flagged); diff != "" {
		t.Fatalf("flagged rows mismatch (-want +got):\n%s", diff)
	}

	if !view.Partners[0].First || view.Partners[0].Last || !view.Partners[1].Last {
		t.Fatalf("unexpected boundary flags: %+v", view.Partners)
	}
}

func TestRender_Page(t *testing.T) {
	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := sampleForm()
	view := vanilla.NewView(form, validation.Validate(form))
	html := render(t, r, view)

	assertContains(t, html,
		"<title>Hotel configuration</title>",
		"--hc-accent: #0b6bcb;",
		`data-theme="hotelconfig"`,
		`value="Booking.com (1234)"`,
		"OTA-RO-FLEX\nOTA-RO-NANR</textarea>",
		"&lt;b&gt;Expedia&lt;/b&gt;",
		`value="add:rooms"`,
		`value="remove:partners:`+view.Partners[0].ID+`"`,
		"Please correct the 2 highlighted fields.",
		`aria-invalid="true"`,
	)
	if strings.Contains(html, "<b>Expedia</b>") {
		t.Fatalf("partner name rendered without escaping")
	}
	if strings.Contains(html, `id="hc-output"`) {
		t.Fatalf("output section rendered without generated text")
	}
}

func TestRender_Output(t *testing.T) {
	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	view := vanilla.NewView(model.NewForm(), validation.Result{Valid: true})
	view.Output = "{\n  \"partners\": {}\n}"
	html := render(t, r, view)

	assertContains(t, html,
		`id="hc-output"`,
		"&quot;partners&quot;",
		`formaction="/download"`,
		`name="output"`,
		`id="hc-stale"`,
		"showSaveFilePicker",
	)
}

func TestRender_DarkVariant(t *testing.T) {
	r, err := vanilla.New(vanilla.WithTheme("", "dark"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	html := render(t, r, vanilla.NewView(model.NewForm(), validation.Result{Valid: true}))
	assertContains(t, html, `data-variant="dark"`, "--hc-surface: #1b1f24;", "--hc-accent: #0b6bcb;")
}

func TestNew_UnknownTheme(t *testing.T) {
	if _, err := vanilla.New(vanilla.WithTheme("missing", "")); !errors.Is(err, vanilla.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
}

func TestRender_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"templates/page.html": {Data: []byte(`{{ title }}|{% for row in view.Rooms %}{{ row.Value }};{% endfor %}`)},
	}
	r, err := vanilla.New(vanilla.WithTemplatesFS(files), vanilla.WithTitle("Rooms"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := model.NewForm()
	form.AddRoom("Twin")
	form.AddRoom("Suite")
	got := render(t, r, vanilla.NewView(form, validation.Result{Valid: true}))
	if got != "Rooms|Twin;Suite;" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRender_CancelledContext(t *testing.T) {
	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, vanilla.View{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestThemeSelector(t *testing.T) {
	custom := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"accent": "#123456"},
	}
	selector, err := vanilla.NewThemeSelector(custom, vanilla.DefaultManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	sel, err := selector.Select("", "nope")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Theme != "acme" || sel.Variant != "" {
		t.Fatalf("unexpected selection %+v", sel)
	}

	r, err := vanilla.New(vanilla.WithThemeSelector(selector), vanilla.WithTheme("acme", ""))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	html := render(t, r, vanilla.NewView(model.NewForm(), validation.Result{Valid: true}))
	assertContains(t, html, "--hc-accent: #123456;", `data-theme="acme"`)
}

func TestThemeSelector_UsesRegistry(t *testing.T) {
	selector, err := vanilla.NewThemeSelector()
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	refs := selector.Registry().Themes()
	if len(refs) != 1 || refs[0].Name != vanilla.DefaultThemeName {
		t.Fatalf("unexpected registered themes %+v", refs)
	}

	sel, err := selector.Select("", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if diff := cmp.Diff("#1b1f24", sel.Tokens()["surface"]); diff != "" {
		t.Fatalf("variant token mismatch (-want +got):\n%s", diff)
	}
	if got := sel.CSSVariables("--hc-")["--hc-accent"]; got != "#0b6bcb" {
		t.Fatalf("base token not merged, got %q", got)
	}

	if _, err := selector.Select("missing", ""); !errors.Is(err, vanilla.ErrThemeNotFound) || !errors.Is(err, theme.ErrThemeNotFound) {
		t.Fatalf("expected theme not found, got %v", err)
	}
}
