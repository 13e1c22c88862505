package render

import (
	"context"
	"fmt"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/render/template"
	"github.com/goliatone/go-contactform/pkg/render/template/pongo"
)

const pageTemplate = "page"

// Page renders the contact page as HTML.
type Page struct {
	opts   PageOptions
	engine template.TemplateRenderer
	theme  ThemeContext
}

var _ Renderer = (*Page)(nil)

// NewPage builds a Page with default options plus overrides.
func NewPage(fns ...PageOption) (*Page, error) {
	opts := NewPageOptions(fns...)

	if err := RegisterManifest(opts.Manifest); err != nil {
		return nil, err
	}

	engine := opts.Engine
	if engine == nil {
		built, err := pongo.New(pongo.WithFS(opts.Templates))
		if err != nil {
			return nil, fmt.Errorf("render: template engine: %w", err)
		}
		engine = built
	}

	return &Page{
		opts:   opts,
		engine: engine,
		theme:  ResolveTheme(opts.Manifest, opts.Variant),
	}, nil
}

func (p *Page) Name() string {
	return "html"
}

func (p *Page) ContentType() string {
	return "text/html; charset=utf-8"
}

// Theme returns the resolved theme.
func (p *Page) Theme() ThemeContext {
	return p.theme
}

// Build assembles PageData for state and fields using the page settings.
func (p *Page) Build(state contact.ViewState, fields []form.FieldState) PageData {
	return BuildPage(p.opts.Title, p.theme, p.opts.Paths, state, fields)
}

// Render executes the page template.
func (p *Page) Render(ctx context.Context, data PageData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := p.engine.RenderTemplate(pageTemplate, map[string]any{"page": data})
	if err != nil {
		return nil, fmt.Errorf("render: page: %w", err)
	}
	return []byte(out), nil
}

// RenderController builds and renders the current state of c.
func (p *Page) RenderController(ctx context.Context, c *contact.Controller) ([]byte, error) {
	return p.Render(ctx, p.Build(c.State(), c.Form().States()))
}
