package pongo

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-contactform/pkg/render/template"
)

const templateExt = ".tpl"

// Option configures the engine before construction.
type Option func(*Engine)

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// Engine is a pongo2 backed template.TemplateRenderer. Parsed templates are
// cached by name.
type Engine struct {
	files fs.FS
	set   *pongo2.TemplateSet

	mu    sync.Mutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. A template filesystem is required.
func New(options ...Option) (*Engine, error) {
	engine := &Engine{cache: make(map[string]*pongo2.Template)}
	for _, opt := range options {
		if opt != nil {
			opt(engine)
		}
	}
	if engine.files == nil {
		return nil, errors.New("pongo: template filesystem required")
	}

	engine.set = pongo2.NewSet("contactform", pongo2.NewFSLoader(engine.files))
	registerFilters()
	return engine, nil
}

// RenderTemplate renders the template stored at name. The ".tpl" extension is
// optional.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}
	if !strings.HasSuffix(name, templateExt) {
		name += templateExt
	}

	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pongo2.Context(data), &buf); err != nil {
		return "", fmt.Errorf("pongo: execute template %q: %w", name, err)
	}
	return buf.String(), nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("pongo: load template %q: %w", name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}
