package contactpage

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/apidoc"
	"github.com/goliatone/go-contactform/pkg/render"
)

const (
	DefaultPagePath     = "/"
	DefaultSubmitPath   = "/contact"
	DefaultSelectPath   = "/users/select"
	DefaultRefreshPath  = "/refresh"
	DefaultStatePath    = "/api/state"
	DefaultOpenAPIPath  = "/openapi.json"
	DefaultMaxBodyBytes = 64 << 10
)

// GuardFunc can reject a request before it reaches a route handler. Errors
// implementing HTTPError choose the response status.
type GuardFunc func(r *http.Request) error

type Options struct {
	PagePath     string
	SubmitPath   string
	SelectPath   string
	RefreshPath  string
	StatePath    string
	OpenAPIPath  string
	MaxBodyBytes int64
	Guard        GuardFunc
	Logger       *zap.Logger

	Document    *apidoc.Document
	PageOptions []render.PageOption
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		PagePath:     DefaultPagePath,
		SubmitPath:   DefaultSubmitPath,
		SelectPath:   DefaultSelectPath,
		RefreshPath:  DefaultRefreshPath,
		StatePath:    DefaultStatePath,
		OpenAPIPath:  DefaultOpenAPIPath,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.PagePath == "" {
		opts.PagePath = DefaultPagePath
	}
	if opts.SubmitPath == "" {
		opts.SubmitPath = DefaultSubmitPath
	}
	if opts.SelectPath == "" {
		opts.SelectPath = DefaultSelectPath
	}
	if opts.RefreshPath == "" {
		opts.RefreshPath = DefaultRefreshPath
	}
	if opts.StatePath == "" {
		opts.StatePath = DefaultStatePath
	}
	if opts.OpenAPIPath == "" {
		opts.OpenAPIPath = DefaultOpenAPIPath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.PageOptions != nil {
		opts.PageOptions = append([]render.PageOption{}, opts.PageOptions...)
	}
	return opts
}

func WithPagePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PagePath = path
	}
}

func WithSubmitPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SubmitPath = path
	}
}

func WithSelectPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SelectPath = path
	}
}

func WithRefreshPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RefreshPath = path
	}
}

func WithStatePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.StatePath = path
	}
}

func WithOpenAPIPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OpenAPIPath = path
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithDocument serves doc instead of the embedded description.
func WithDocument(doc *apidoc.Document) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Document = doc
	}
}

// WithPageOptions forwards options to the page renderer. Form action paths
// are always derived from the mounted routes.
func WithPageOptions(fns ...render.PageOption) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PageOptions = append(o.PageOptions, fns...)
	}
}
