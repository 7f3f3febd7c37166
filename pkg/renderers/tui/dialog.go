package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/goliatone/go-hotelconfig/pkg/export"
)

// SaveDialog asks for a destination path through the prompt driver. It
// implements export.SaveDialog.
type SaveDialog struct {
	driver      PromptDriver
	dir         string
	interactive func() bool
}

// DialogOption configures a SaveDialog.
type DialogOption func(*SaveDialog)

// WithDialogDir sets the directory the suggested path starts in.
func WithDialogDir(dir string) DialogOption {
	return func(d *SaveDialog) {
		d.dir = dir
	}
}

// WithInteractive overrides terminal detection.
func WithInteractive(fn func() bool) DialogOption {
	return func(d *SaveDialog) {
		if fn != nil {
			d.interactive = fn
		}
	}
}

// NewSaveDialog builds a dialog backed by driver. A nil driver uses survey.
func NewSaveDialog(driver PromptDriver, opts ...DialogOption) *SaveDialog {
	if driver == nil {
		driver = newSurveyDriver(nil)
	}
	d := &SaveDialog{
		driver:      driver,
		interactive: stdinIsTerminal,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Ask implements export.SaveDialog. Ctrl+C, an empty answer or a declined
// overwrite report export.ErrDialogCancelled; a non-interactive stdin reports
// export.ErrDialogUnsupported.
func (d *SaveDialog) Ask(ctx context.Context, suggestedName, mimeType string) (string, error) {
	if !d.interactive() {
		return "", export.ErrDialogUnsupported
	}

	suggested := suggestedName
	if d.dir != "" {
		suggested = filepath.Join(d.dir, suggestedName)
	}

	path, err := d.driver.Input(ctx, InputConfig{
		Message: "Save as",
		Suggest: []string{suggested},
		Help:    fmt.Sprintf("Destination file (%s). Tab fills in %s. Leave empty to cancel.", mimeType, suggested),
	})
	if err != nil {
		if errors.Is(err, ErrAborted) {
			return "", export.ErrDialogCancelled
		}
		return "", err
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return "", export.ErrDialogCancelled
	}

	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, suggestedName)
	}

	if info, statErr := os.Stat(path); statErr == nil {
		if info.IsDir() {
			return "", fmt.Errorf("tui: %s is a directory", path)
		}
		overwrite, err := d.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("%s already exists. Replace it?", path),
		})
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return "", export.ErrDialogCancelled
			}
			return "", err
		}
		if !overwrite {
			return "", export.ErrDialogCancelled
		}
	}
	return path, nil
}
