package render

import (
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/render/template"
)

const DefaultTitle = "Contact"

// PageOptions configure a Page.
type PageOptions struct {
	Title     string
	Manifest  *theme.Manifest
	Variant   string
	Paths     Paths
	Templates fs.FS
	Engine    template.TemplateRenderer
}

// PageOption mutates PageOptions.
type PageOption func(*PageOptions)

// DefaultPaths are the actions used when the page is mounted at the root.
func DefaultPaths() Paths {
	return Paths{
		Submit:  "/contact",
		Select:  "/users/select",
		Refresh: "/refresh",
	}
}

// NewPageOptions applies fns over the defaults.
func NewPageOptions(fns ...PageOption) PageOptions {
	opts := PageOptions{
		Title: DefaultTitle,
		Paths: DefaultPaths(),
	}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	opts.Title = strings.TrimSpace(opts.Title)
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Manifest == nil {
		opts.Manifest = DefaultManifest()
	}
	defaults := DefaultPaths()
	if opts.Paths.Submit == "" {
		opts.Paths.Submit = defaults.Submit
	}
	if opts.Paths.Select == "" {
		opts.Paths.Select = defaults.Select
	}
	if opts.Paths.Refresh == "" {
		opts.Paths.Refresh = defaults.Refresh
	}
	if opts.Templates == nil {
		opts.Templates = Templates()
	}
	return opts
}

// WithTitle sets the page heading and document title.
func WithTitle(title string) PageOption {
	return func(o *PageOptions) {
		o.Title = title
	}
}

// WithTheme selects a go-theme manifest and variant.
func WithTheme(manifest *theme.Manifest, variant string) PageOption {
	return func(o *PageOptions) {
		o.Manifest = manifest
		o.Variant = variant
	}
}

// WithPaths overrides the form actions. Empty entries keep their defaults.
func WithPaths(paths Paths) PageOption {
	return func(o *PageOptions) {
		o.Paths = paths
	}
}

// WithTemplates replaces the embedded templates. The FS must provide
// page.tpl and the partials it includes.
func WithTemplates(files fs.FS) PageOption {
	return func(o *PageOptions) {
		o.Templates = files
	}
}

// WithEngine supplies a pre-built template engine; WithTemplates is ignored.
func WithEngine(engine template.TemplateRenderer) PageOption {
	return func(o *PageOptions) {
		o.Engine = engine
	}
}
