package vanilla

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName is the built-in theme.
const DefaultThemeName = "hotelconfig"

// DefaultManifest returns the built-in theme with a "dark" variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"font":          "system-ui, -apple-system, Segoe UI, sans-serif",
			"surface":       "#ffffff",
			"text":          "#1f2933",
			"muted":         "#616e7c",
			"border":        "#cbd2d9",
			"accent":        "#0b6bcb",
			"accent-text":   "#ffffff",
			"danger":        "#c62828",
			"danger-bg":     "#fdecea",
			"radius":        "6px",
			"output-bg":     "#f5f7fa",
			"output-font":   "ui-monospace, SFMono-Regular, Menlo, monospace",
			"section-space": "1.5rem",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface":   "#1b1f24",
					"text":      "#e4e7eb",
					"muted":     "#9aa5b1",
					"border":    "#3e4c59",
					"danger-bg": "#3b1f1f",
					"output-bg": "#111418",
				},
			},
		},
	}
}

// ErrThemeNotFound is returned by ThemeSelector.Select for unknown names.
var ErrThemeNotFound = errors.New("vanilla: theme not found")

// cssVarPrefix namespaces the custom properties emitted for theme tokens.
const cssVarPrefix = "--hc-"

// ThemeSelector wraps theme.Selector over a go-theme memory registry. Unlike
// the plain selector it rejects unknown theme names instead of falling back,
// and drops variants the manifest does not declare.
type ThemeSelector struct {
	registry *theme.MemoryRegistry
	selector theme.Selector
}

var _ theme.ThemeSelector = (*ThemeSelector)(nil)

// NewThemeSelector registers manifests in a go-theme registry. The first
// manifest is the default for empty names.
func NewThemeSelector(manifests ...*theme.Manifest) (*ThemeSelector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}

	registry := theme.NewRegistry()
	fallback := ""
	for _, m := range manifests {
		if m == nil {
			continue
		}
		if err := registry.Register(m); err != nil {
			return nil, fmt.Errorf("vanilla: register theme %q: %w", m.Name, err)
		}
		if fallback == "" {
			fallback = m.Name
		}
	}
	if fallback == "" {
		return nil, errors.New("vanilla: no theme manifests")
	}

	return &ThemeSelector{
		registry: registry,
		selector: theme.Selector{Registry: registry, DefaultTheme: fallback},
	}, nil
}

// Registry exposes the registered manifests.
func (s *ThemeSelector) Registry() theme.ThemeProvider {
	return s.registry
}

// Select implements theme.ThemeSelector.
func (s *ThemeSelector) Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		if _, err := s.registry.Theme(name, opts...); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrThemeNotFound, name, err)
		}
	}

	sel, err := s.selector.Select(name, strings.TrimSpace(variant), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThemeNotFound, err)
	}
	if _, ok := sel.Manifest.Variants[sel.Variant]; !ok {
		sel.Variant = ""
	}
	return sel, nil
}

// rendererConfig resolves the selection into tokens and "--hc-" prefixed CSS
// custom properties.
func rendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	cfg := sel.RendererTheme(nil)
	cfg.CSSVars = sel.CSSVariables(cssVarPrefix)
	return &cfg
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
