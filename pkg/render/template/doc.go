// Package template defines the template engine contract the page renderer
// depends on. Engines live in sub-packages so the renderer never imports a
// concrete template language.
package template
