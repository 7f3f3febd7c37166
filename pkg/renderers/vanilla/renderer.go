// Package vanilla renders the hotel configuration form as a single HTML page
// using embedded pongo2 templates and go-theme tokens.
package vanilla

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-hotelconfig/pkg/model"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

const pageTemplate = "templates/page.html"

// DefaultTitle is the page heading.
const DefaultTitle = "Hotel configuration"

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	selector   theme.ThemeSelector
	themeName  string
	variant    string
	title      string
	logger     *zap.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. It must
// hold templates/page.html.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithThemeSelector overrides where theme manifests come from.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(cfg *config) {
		if selector != nil {
			cfg.selector = selector
		}
	}
}

// WithTheme picks the theme and variant passed to the selector.
func WithTheme(name, variant string) Option {
	return func(cfg *config) {
		cfg.themeName = name
		cfg.variant = variant
	}
}

// WithTitle overrides the page heading.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.title = title
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer turns a View into an HTML page.
type Renderer struct {
	engine *engine
	theme  *theme.RendererConfig
	title  string
	logger *zap.Logger
}

type group struct {
	Kind        string
	Title       string
	Placeholder string
	Rows        []EntryRow
}

// New constructs the renderer applying any provided options. The theme is
// resolved once here.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		title:      DefaultTitle,
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.selector == nil {
		selector, err := NewThemeSelector()
		if err != nil {
			return nil, err
		}
		cfg.selector = selector
	}

	selection, err := cfg.selector.Select(cfg.themeName, cfg.variant)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: select theme: %w", err)
	}

	eng, err := newEngine(cfg.templateFS)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure template engine: %w", err)
	}

	return &Renderer{
		engine: eng,
		theme:  rendererConfig(selection),
		title:  cfg.title,
		logger: cfg.logger,
	}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "vanilla"
}

// ContentType reports the media type produced by Render.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the page template for view.
func (r *Renderer) Render(ctx context.Context, view View) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("vanilla renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.engine == nil {
		return nil, errors.New("vanilla renderer: template engine is nil")
	}

	data := pongo2.Context{
		"title":   r.title,
		"view":    view,
		"classes": classNames(),
		"groups": []group{
			{Kind: string(model.KindRooms), Title: "Room types", Placeholder: "Room type name", Rows: view.Rooms},
			{Kind: string(model.KindPlans), Title: "Rate plans", Placeholder: "Rate plan name", Rows: view.Plans},
		},
		"theme_name":    "",
		"theme_variant": "",
		"theme_css":     "",
	}
	if r.theme != nil {
		data["theme_name"] = r.theme.Theme
		data["theme_variant"] = r.theme.Variant
		data["theme_css"] = cssVarsStyle(r.theme.CSSVars)
	}

	var buf bytes.Buffer
	if err := r.engine.render(pageTemplate, data, &buf); err != nil {
		r.logger.Error("render page failed", zap.Error(err))
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	return buf.Bytes(), nil
}
