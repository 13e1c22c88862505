// Package render turns the contact view state into HTML.
//
// BuildPage flattens a contact.ViewState and the form field states into a
// PageData view model with flags precomputed, so templates only test
// booleans. Field errors are present only when the field should show them.
// Page renders that model through a
// template.TemplateRenderer using the embedded templates under templates/.
//
// Theme tokens come from a go-theme Manifest and are exposed to templates as
// CSS custom properties.
package render
