// Package apidoc embeds the OpenAPI description of the contact page routes.
package apidoc

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

// Document is a loaded and validated OpenAPI document.
type Document struct {
	spec *openapi3.T
	json []byte
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Document, error) {
	return LoadFromData(ctx, rawSpec)
}

// LoadFromData parses and validates raw as an OpenAPI 3 document.
func LoadFromData(ctx context.Context, raw []byte) (*Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(raw) == 0 {
		return nil, errors.New("apidoc: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("apidoc: load document: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apidoc: validate document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("apidoc: document does not contain any paths")
	}

	encoded, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("apidoc: encode document: %w", err)
	}
	return &Document{spec: spec, json: encoded}, nil
}

// Spec returns the parsed document.
func (d *Document) Spec() *openapi3.T {
	return d.spec
}

// JSON returns the document encoded as JSON.
func (d *Document) JSON() []byte {
	return append([]byte{}, d.json...)
}

// Operations lists "METHOD /path" entries sorted for stable output.
func (d *Document) Operations() []string {
	var out []string
	for path, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method := range item.Operations() {
			out = append(out, strings.ToUpper(method)+" "+path)
		}
	}
	sort.Strings(out)
	return out
}

// HasOperation reports whether method and path are described.
func (d *Document) HasOperation(method, path string) bool {
	item := d.spec.Paths.Value(path)
	if item == nil {
		return false
	}
	return item.GetOperation(strings.ToUpper(method)) != nil
}

// Handler serves the document as JSON.
func (d *Document) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(d.json)
	})
}
