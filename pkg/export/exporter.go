package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// SaveDialog asks the user where to save a file. Implementations return
// ErrDialogCancelled when dismissed and ErrDialogUnsupported when no dialog
// can be shown.
type SaveDialog interface {
	Ask(ctx context.Context, suggestedName, mimeType string) (string, error)
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClipboard overrides the clipboard backend.
func WithClipboard(c Clipboard) Option {
	return func(e *Exporter) {
		if c != nil {
			e.clipboard = c
		}
	}
}

// WithSaveDialog sets the dialog used by SaveAs. Without one SaveAs always
// falls back to Download.
func WithSaveDialog(d SaveDialog) Option {
	return func(e *Exporter) {
		e.dialog = d
	}
}

// WithDownloadDir sets the directory receiving direct downloads.
func WithDownloadDir(dir string) Option {
	return func(e *Exporter) {
		if strings.TrimSpace(dir) != "" {
			e.downloadDir = dir
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Exporter implements the three export operations.
type Exporter struct {
	clipboard   Clipboard
	dialog      SaveDialog
	downloadDir string
	logger      *zap.Logger
}

// New constructs an Exporter. Defaults: system clipboard, no dialog, the
// current directory for downloads.
func New(options ...Option) *Exporter {
	e := &Exporter{
		clipboard:   SystemClipboard{},
		downloadDir: ".",
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// DownloadDir reports where Download writes files.
func (e *Exporter) DownloadDir() string {
	return e.downloadDir
}

// CopyToClipboard writes the payload text to the clipboard. Failures wrap
// ErrClipboardUnavailable and are meant to be shown to the user.
func (e *Exporter) CopyToClipboard(ctx context.Context, p Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.Text == "" {
		return ErrEmptyPayload
	}
	if err := e.clipboard.WriteAll(p.Text); err != nil {
		e.logger.Warn("clipboard copy failed", zap.Error(err))
		if errors.Is(err, ErrClipboardUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	e.logger.Info("copied document to clipboard", zap.Int("bytes", len(p.Text)))
	return nil
}

// SaveAs asks the dialog for a destination and writes the payload there. A
// missing or unsupported dialog falls back to Download. Cancellation and
// dialog or write failures are logged and reported through the Result only;
// SaveAs never returns an error.
func (e *Exporter) SaveAs(ctx context.Context, p Payload) Result {
	p = p.Normalize()

	if e.dialog == nil {
		return e.fallback(ctx, p, "no save dialog configured")
	}

	path, err := e.dialog.Ask(ctx, p.Filename, p.MIMEType)
	switch {
	case errors.Is(err, ErrDialogUnsupported):
		return e.fallback(ctx, p, "save dialog unsupported")
	case errors.Is(err, ErrDialogCancelled):
		e.logger.Info("save dialog cancelled")
		return Result{Outcome: OutcomeCancelled}
	case err != nil:
		e.logger.Warn("save dialog failed", zap.Error(err))
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	path = strings.TrimSpace(path)
	if path == "" {
		e.logger.Info("save dialog returned no path")
		return Result{Outcome: OutcomeCancelled}
	}

	if err := writeBlob(filepath.Dir(path), path, p.Text, true); err != nil {
		e.logger.Warn("save failed", zap.String("path", path), zap.Error(err))
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	e.logger.Info("saved document", zap.String("path", path))
	return Result{Outcome: OutcomeSaved, Path: path}
}

func (e *Exporter) fallback(ctx context.Context, p Payload, reason string) Result {
	e.logger.Info("falling back to direct download", zap.String("reason", reason))
	res, err := e.Download(ctx, p)
	if err != nil {
		return Result{Outcome: OutcomeFailed, Err: err, Fallback: true}
	}
	res.Fallback = true
	return res
}

// Download writes the payload into the download directory. An existing file
// is never overwritten; the name gets a " (n)" suffix instead.
func (e *Exporter) Download(ctx context.Context, p Payload) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	p = p.Normalize()

	if err := os.MkdirAll(e.downloadDir, 0o755); err != nil {
		return Result{Outcome: OutcomeFailed, Err: err}, fmt.Errorf("export: ensure download dir: %w", err)
	}

	target, err := availablePath(e.downloadDir, p.Filename)
	if err != nil {
		return Result{Outcome: OutcomeFailed, Err: err}, err
	}
	if err := writeBlob(e.downloadDir, target, p.Text, false); err != nil {
		e.logger.Warn("download failed", zap.String("path", target), zap.Error(err))
		return Result{Outcome: OutcomeFailed, Err: err}, err
	}

	e.logger.Info("downloaded document", zap.String("path", target))
	return Result{Outcome: OutcomeDownloaded, Path: target}, nil
}
