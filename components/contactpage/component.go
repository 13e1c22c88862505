package contactpage

import (
	"net/http"

	"github.com/goliatone/go-contactform/pkg/contact"
)

// Component bundles a contact controller with its routing configuration.
type Component struct {
	controller *contact.Controller
	opts       Options
}

// New constructs a new component with default options plus any overrides.
func New(controller *contact.Controller, fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{controller: controller, opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Controller returns the controller backing the page.
func (c *Component) Controller() *contact.Controller {
	if c == nil {
		return nil
	}
	return c.controller
}

// RegisterRoutes registers the component routes under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) ([]string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath, nil)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.controller, c.opts)
}

// Handler returns a mux serving the component at the root path.
func (c *Component) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if _, err := c.RegisterRoutes(mux, ""); err != nil {
		return nil, err
	}
	return mux, nil
}
