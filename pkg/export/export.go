// Package export delivers generated documents to the user: the system
// clipboard, an interactive save dialog with a download fallback, or a direct
// download into a directory. An Exporter keeps no state between calls; every
// call writes a fresh copy of the payload.
package export

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/goliatone/go-hotelconfig/pkg/document"
)

var (
	// ErrClipboardUnavailable signals the clipboard cannot be reached (no
	// clipboard utility, headless session, access denied).
	ErrClipboardUnavailable = errors.New("export: clipboard unavailable")
	// ErrDialogCancelled is returned by a SaveDialog when the user dismisses it.
	ErrDialogCancelled = errors.New("export: save dialog cancelled")
	// ErrDialogUnsupported is returned by a SaveDialog that cannot run in the
	// current environment.
	ErrDialogUnsupported = errors.New("export: save dialog unsupported")
	// ErrEmptyPayload is returned when there is nothing to export.
	ErrEmptyPayload = errors.New("export: payload is empty")
)

// Payload is the text handed to an export target.
type Payload struct {
	Text     string
	Filename string
	MIMEType string
}

// NewPayload builds a payload for a serialized configuration document.
func NewPayload(text string) Payload {
	return Payload{
		Text:     text,
		Filename: document.DefaultFilename,
		MIMEType: document.MIMEType,
	}
}

// Normalize fills defaults, strips directories from the filename and appends
// the MIME type's extension when the name has none.
func (p Payload) Normalize() Payload {
	if strings.TrimSpace(p.MIMEType) == "" {
		p.MIMEType = document.MIMEType
	}
	name := strings.TrimSpace(p.Filename)
	if name != "" {
		name = filepath.Base(filepath.Clean(name))
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = document.DefaultFilename
	}
	if filepath.Ext(name) == "" {
		name += extensionFor(p.MIMEType)
	}
	p.Filename = name
	return p
}

func extensionFor(mimeType string) string {
	if m := mimetype.Lookup(strings.TrimSpace(mimeType)); m != nil {
		return m.Extension()
	}
	return ""
}

// Outcome reports what an export call did.
type Outcome string

const (
	OutcomeCopied     Outcome = "copied"
	OutcomeSaved      Outcome = "saved"
	OutcomeDownloaded Outcome = "downloaded"
	OutcomeCancelled  Outcome = "cancelled"
	OutcomeFailed     Outcome = "failed"
)

// Result describes a finished export.
type Result struct {
	Outcome Outcome
	// Path is the written file for saved and downloaded outcomes.
	Path string
	// Fallback is set when SaveAs fell back to a direct download.
	Fallback bool
	// Err holds the swallowed failure for OutcomeFailed.
	Err error
}
