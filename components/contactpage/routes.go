package contactpage

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-contactform/internal/apidoc"
	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

type routes struct {
	page    string
	submit  string
	sel     string
	refresh string
	state   string
	openapi string
}

func resolveRoutes(basePath string, opts Options) routes {
	return routes{
		page:    mountPath(basePath, opts.PagePath),
		submit:  mountPath(basePath, opts.SubmitPath),
		sel:     mountPath(basePath, opts.SelectPath),
		refresh: mountPath(basePath, opts.RefreshPath),
		state:   mountPath(basePath, opts.StatePath),
		openapi: mountPath(basePath, opts.OpenAPIPath),
	}
}

// MountPath returns the full path of the page route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.PagePath)
}

// RegisterRoutes registers every component route under basePath on mux and
// returns the registered patterns.
func RegisterRoutes(mux Mux, basePath string, controller *contact.Controller, fns ...OptionFn) ([]string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, controller, opts)
}

// RegisterRoutesWithOptions registers the routes using a pre-built Options value.
// Callers are expected to pass an Options value produced by NewOptions (or equivalent) so defaults apply.
func RegisterRoutesWithOptions(mux Mux, basePath string, controller *contact.Controller, opts Options) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("contactpage: missing mux")
	}
	if controller == nil {
		return nil, fmt.Errorf("contactpage: missing controller")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	r := resolveRoutes(basePath, opts)

	doc := opts.Document
	if doc == nil {
		loaded, err := apidoc.Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("contactpage: %w", err)
		}
		doc = loaded
	}

	pageOpts := append(append([]render.PageOption{}, opts.PageOptions...), render.WithPaths(render.Paths{
		Submit:  r.submit,
		Select:  r.sel,
		Refresh: r.refresh,
	}))
	page, err := render.NewPage(pageOpts...)
	if err != nil {
		return nil, fmt.Errorf("contactpage: %w", err)
	}

	h := &handlers{
		controller: controller,
		page:       page,
		doc:        doc,
		routes:     r,
		opts:       opts,
		logger:     opts.Logger,
	}

	entries := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{r.page, h.servePage},
		{r.submit, h.submit},
		{r.sel, h.selectUser},
		{r.refresh, h.refresh},
		{r.state, h.serveState},
		{r.openapi, h.serveOpenAPI},
	}

	patterns := make([]string, 0, len(entries))
	for _, entry := range entries {
		mux.Handle(entry.pattern, h.guard(entry.handler))
		patterns = append(patterns, entry.pattern)
	}
	return patterns, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
