package vanilla

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// engine renders pongo2 templates from an fs.FS, caching parsed templates.
type engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
}

func newEngine(files fs.FS) (*engine, error) {
	if files == nil {
		return nil, errors.New("vanilla: template fs is required")
	}
	return &engine{
		templateSet: pongo2.NewSet("hotelconfig", pongo2.NewFSLoader(files)),
		templates:   make(map[string]*pongo2.Template),
	}, nil
}

func (e *engine) render(name string, data pongo2.Context, out io.Writer) error {
	tmpl, err := e.getTemplate(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	e.mu.RLock()
	err = tmpl.ExecuteWriter(data, &buf)
	e.mu.RUnlock()

	if err != nil {
		return fmt.Errorf("vanilla: execute template %q: %w", name, err)
	}
	_, err = buf.WriteTo(out)
	return err
}

func (e *engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("vanilla: load template %q: %w", path, err)
	}

	e.templates[path] = tmpl
	return tmpl, nil
}
