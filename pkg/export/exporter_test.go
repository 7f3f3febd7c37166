package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hotelconfig/pkg/export"
)

type stubClipboard struct {
	text string
	err  error
}

func (s *stubClipboard) WriteAll(text string) error {
	if s.err != nil {
		return s.err
	}
	s.text = text
	return nil
}

type stubDialog struct {
	path      string
	err       error
	suggested string
	calls     int
}

func (s *stubDialog) Ask(_ context.Context, suggested, _ string) (string, error) {
	s.calls++
	s.suggested = suggested
	return s.path, s.err
}

const payloadText = "{\n  \"partners\": {}\n}"

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestCopyToClipboard(t *testing.T) {
	clip := &stubClipboard{}
	e := export.New(export.WithClipboard(clip))

	if err := e.CopyToClipboard(context.Background(), export.NewPayload(payloadText)); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if clip.text != payloadText {
		t.Fatalf("clipboard text mismatch: %q", clip.text)
	}
}

func TestCopyToClipboard_FailureIsReported(t *testing.T) {
	clip := &stubClipboard{err: errors.New("not allowed")}
	e := export.New(export.WithClipboard(clip))

	err := e.CopyToClipboard(context.Background(), export.NewPayload(payloadText))
	if !errors.Is(err, export.ErrClipboardUnavailable) {
		t.Fatalf("expected ErrClipboardUnavailable, got %v", err)
	}
}

func TestDownload_WritesFileAndReleasesBlob(t *testing.T) {
	dir := t.TempDir()
	e := export.New(export.WithDownloadDir(dir))

	res, err := e.Download(context.Background(), export.NewPayload(payloadText))
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if res.Outcome != export.OutcomeDownloaded {
		t.Fatalf("unexpected outcome %s", res.Outcome)
	}
	if res.Path != filepath.Join(dir, "config_hotel.json") {
		t.Fatalf("unexpected path %s", res.Path)
	}

	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != payloadText {
		t.Fatalf("file content mismatch: %q", data)
	}
	if diff := cmp.Diff([]string{"config_hotel.json"}, listDir(t, dir)); diff != "" {
		t.Fatalf("temporary blob left behind (-want +got):\n%s", diff)
	}
}

func TestDownload_RepeatedCallsNeverOverwrite(t *testing.T) {
	dir := t.TempDir()
	e := export.New(export.WithDownloadDir(dir))

	for i := 0; i < 3; i++ {
		if _, err := e.Download(context.Background(), export.NewPayload(payloadText)); err != nil {
			t.Fatalf("download %d: %v", i, err)
		}
	}

	want := []string{"config_hotel (1).json", "config_hotel (2).json", "config_hotel.json"}
	if diff := cmp.Diff(want, listDir(t, dir)); diff != "" {
		t.Fatalf("download names mismatch (-want +got):\n%s", diff)
	}
}

func TestDownload_AddsExtensionFromMIMEType(t *testing.T) {
	dir := t.TempDir()
	e := export.New(export.WithDownloadDir(dir))

	res, err := e.Download(context.Background(), export.Payload{
		Text:     payloadText,
		Filename: "../escape/hotel",
		MIMEType: "application/json",
	})
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if res.Path != filepath.Join(dir, "hotel.json") {
		t.Fatalf("unexpected path %s", res.Path)
	}
}

func TestSaveAs_WritesChosenPath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "custom.json")
	dialog := &stubDialog{path: target}
	e := export.New(export.WithSaveDialog(dialog), export.WithDownloadDir(t.TempDir()))

	res := e.SaveAs(context.Background(), export.NewPayload(payloadText))
	if res.Outcome != export.OutcomeSaved || res.Path != target || res.Fallback {
		t.Fatalf("unexpected result %+v", res)
	}
	if dialog.suggested != "config_hotel.json" {
		t.Fatalf("unexpected suggested name %q", dialog.suggested)
	}
	data, err := os.ReadFile(target)
	if err != nil || string(data) != payloadText {
		t.Fatalf("saved file mismatch: %q %v", data, err)
	}
}

func TestSaveAs_OverwritesChosenPath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config_hotel.json")
	if err := os.WriteFile(target, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	e := export.New(export.WithSaveDialog(&stubDialog{path: target}))

	if res := e.SaveAs(context.Background(), export.NewPayload(payloadText)); res.Outcome != export.OutcomeSaved {
		t.Fatalf("unexpected result %+v", res)
	}
	data, _ := os.ReadFile(target)
	if string(data) != payloadText {
		t.Fatalf("expected overwrite, got %q", data)
	}
}

func TestSaveAs_CancellationIsSilentNoOp(t *testing.T) {
	downloads := t.TempDir()
	e := export.New(
		export.WithSaveDialog(&stubDialog{err: export.ErrDialogCancelled}),
		export.WithDownloadDir(downloads),
	)

	res := e.SaveAs(context.Background(), export.NewPayload(payloadText))
	if res.Outcome != export.OutcomeCancelled || res.Err != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := listDir(t, downloads); len(got) != 0 {
		t.Fatalf("cancellation must not fall back to download, found %v", got)
	}
}

func TestSaveAs_UnsupportedFallsBackToDownload(t *testing.T) {
	downloads := t.TempDir()
	e := export.New(
		export.WithSaveDialog(&stubDialog{err: export.ErrDialogUnsupported}),
		export.WithDownloadDir(downloads),
	)

	res := e.SaveAs(context.Background(), export.NewPayload(payloadText))
	if res.Outcome != export.OutcomeDownloaded || !res.Fallback {
		t.Fatalf("unexpected result %+v", res)
	}
	if diff := cmp.Diff([]string{"config_hotel.json"}, listDir(t, downloads)); diff != "" {
		t.Fatalf("fallback download mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAs_WithoutDialogFallsBack(t *testing.T) {
	downloads := t.TempDir()
	e := export.New(export.WithDownloadDir(downloads))

	res := e.SaveAs(context.Background(), export.NewPayload(payloadText))
	if res.Outcome != export.OutcomeDownloaded || !res.Fallback {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSaveAs_DialogFailureIsSwallowed(t *testing.T) {
	boom := errors.New("boom")
	e := export.New(export.WithSaveDialog(&stubDialog{err: boom}), export.WithDownloadDir(t.TempDir()))

	res := e.SaveAs(context.Background(), export.NewPayload(payloadText))
	if res.Outcome != export.OutcomeFailed || !errors.Is(res.Err, boom) {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRegistry_DispatchesBuiltInTargets(t *testing.T) {
	clip := &stubClipboard{}
	e := export.New(export.WithClipboard(clip), export.WithDownloadDir(t.TempDir()))
	targets := e.Targets()

	if diff := cmp.Diff([]string{"clipboard", "download", "save-as"}, targets.List()); diff != "" {
		t.Fatalf("targets mismatch (-want +got):\n%s", diff)
	}

	res, err := targets.Export(context.Background(), export.TargetClipboard, export.NewPayload(payloadText))
	if err != nil || res.Outcome != export.OutcomeCopied {
		t.Fatalf("clipboard target: %+v %v", res, err)
	}
	if _, err := targets.Export(context.Background(), "printer", export.NewPayload(payloadText)); err == nil {
		t.Fatalf("expected unknown target error")
	}
	if err := targets.Register(export.TargetFunc{ID: export.TargetDownload}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
