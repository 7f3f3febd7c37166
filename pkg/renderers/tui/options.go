package tui

import (
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-hotelconfig/pkg/export"
	"github.com/goliatone/go-hotelconfig/pkg/generator"
)

// Theme captures optional formatting hints the session applies when printing
// messages. Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
	// Marker flags rows holding a field rejected by the last generate.
	Marker string
}

// DefaultTheme is applied when WithTheme is not used.
var DefaultTheme = Theme{
	InfoPrefix:  "",
	ErrorPrefix: "! ",
	Marker:      "*",
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints messages.
func WithOutput(out io.Writer) Option {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// WithExporter sets the exporter behind the copy, save-as and download
// actions.
func WithExporter(exporter *export.Exporter) Option {
	return func(s *Session) {
		if exporter != nil {
			s.exporter = exporter
		}
	}
}

// WithGenerator sets the pipeline used by the generate action.
func WithGenerator(gen *generator.Generator) Option {
	return func(s *Session) {
		if gen != nil {
			s.generator = gen
		}
	}
}

// WithFilename overrides the file name offered by the export actions.
func WithFilename(name string) Option {
	return func(s *Session) {
		if name != "" {
			s.filename = name
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
